package cmd

import (
	"github.com/getlawrence/techprofile/internal/diagram"
	"github.com/spf13/cobra"
)

var diagramCmd = &cobra.Command{
	Use:   "diagram [path]",
	Short: "Print a Mermaid flow diagram for a codebase",
	Long: `Diagram analyzes the codebase and prints a User -> Frontend -> Backend ->
Database flow as Mermaid. JSON and YAML output include the node and edge lists.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiagram,
}

func init() {
	rootCmd.AddCommand(diagramCmd)
}

func runDiagram(cmd *cobra.Command, args []string) error {
	app, err := appConfig(cmd)
	if err != nil {
		return err
	}
	files, res, err := app.loadAndAnalyze(cmd.Context(), targetPath(args, 0), nil)
	if err != nil {
		return err
	}
	d := diagram.Generate(res, files)
	return writeOutput(cmd.OutOrStdout(), app.Config.Output.Format, d, func() string {
		return d.Mermaid + "\n"
	})
}
