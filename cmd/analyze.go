package cmd

import (
	"fmt"

	"github.com/getlawrence/techprofile/internal/artifact"
	"github.com/getlawrence/techprofile/internal/diagram"
	"github.com/getlawrence/techprofile/internal/domain"
	"github.com/getlawrence/techprofile/internal/source"
	"github.com/getlawrence/techprofile/internal/ui"
	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Build a technology profile for a codebase",
	Long: `Analyze reads the specified codebase (or current directory) and reports:
- Programming languages in use and the main language
- Detected frameworks and databases
- Architecture type and complexity score
- A per-aspect breakdown with --detailed

Example usage:
  techprofile analyze                      # Analyze current directory
  techprofile analyze /path/to/project     # Analyze specific directory
  techprofile analyze --output json        # Output results as JSON
  techprofile analyze --export --run-id v1 # Also write the result to the artifact store`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolP("detailed", "d", false, "Show the per-aspect breakdown")
	analyzeCmd.Flags().Bool("export", false, "Write the result, summary and diagram to the artifact store")
	analyzeCmd.Flags().String("run-id", "", "Artifact run id (generated when empty)")
	analyzeCmd.Flags().String("repo-url", "", "Repository URL to attach as metadata")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	app, err := appConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	detailed, _ := cmd.Flags().GetBool("detailed")
	if !cmd.Flags().Changed("detailed") {
		detailed = app.Config.Output.Detailed
	}
	export, _ := cmd.Flags().GetBool("export")
	runID, _ := cmd.Flags().GetString("run-id")
	repoURL, _ := cmd.Flags().GetString("repo-url")

	var repo *domain.RepositoryInfo
	if repoURL != "" {
		if repo, err = source.RepositoryInfo(repoURL); err != nil {
			return err
		}
	}

	files, res, err := app.loadAndAnalyze(ctx, targetPath(args, 0), repo)
	if err != nil {
		return err
	}

	if export {
		store, err := app.newArtifactStore()
		if err != nil {
			return fmt.Errorf("artifact store: %w", err)
		}
		id, err := artifact.Export(ctx, store, runID, res, diagram.Generate(res, files))
		if err != nil {
			return err
		}
		app.Logger.Logf("Exported analysis to %s\n", store.Location(id))
	}

	return writeOutput(cmd.OutOrStdout(), app.Config.Output.Format, res, func() string {
		return ui.RenderAnalysis(res, detailed)
	})
}
