package cmd

import (
	"strings"

	"github.com/getlawrence/techprofile/internal/domain"
	"github.com/getlawrence/techprofile/internal/retrieval"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <route> [path]",
	Short: "Describe one aspect of a codebase, or answer a question about it",
	Long: `Ask analyzes the codebase and asks the configured assistant about one
aspect: overview, frontend, backend, database, architecture or flow.
With --question the assistant answers a free-form question instead, using
the most relevant stored files as context.

Without a configured model the answer is rendered from the analysis itself.

Example usage:
  techprofile ask overview
  techprofile ask backend ./service -q "Which endpoints exist?"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringP("question", "q", "", "Free-form question about the project")
	askCmd.ValidArgsFunction = completeRoute
}

func runAsk(cmd *cobra.Command, args []string) error {
	app, err := appConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	route := strings.ToLower(strings.TrimSpace(args[0]))
	question, _ := cmd.Flags().GetString("question")

	if !isKnownRoute(route) {
		app.Logger.Warnf("unknown route %q, answering generically\n", route)
	}

	files, res, err := app.loadAndAnalyze(ctx, targetPath(args, 1), nil)
	if err != nil {
		return err
	}
	svc := app.newAssistant(ctx)
	app.Logger.Debugf("assistant backend: %s\n", svc.Backend())

	var answer string
	if strings.TrimSpace(question) == "" {
		answer = svc.RouteInfo(ctx, route, res)
	} else {
		store := retrieval.NewMemoryStore()
		if err := store.Put(ctx, retrieval.BuildRecords(res, files)...); err != nil {
			return err
		}
		pc, err := retrieval.GatherContext(ctx, store, question)
		if err != nil {
			return err
		}
		answer = svc.Query(ctx, question, res, route, pc.RelevantFiles, pc.Known()...)
	}

	return writeOutput(cmd.OutOrStdout(), app.Config.Output.Format, map[string]string{
		"route":  route,
		"answer": answer,
	}, func() string { return answer + "\n" })
}

func isKnownRoute(route string) bool {
	for _, a := range domain.Aspects {
		if string(a) == route {
			return true
		}
	}
	return false
}

func completeRoute(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	out := make([]string, 0, len(domain.Aspects))
	for _, a := range domain.Aspects {
		out = append(out, string(a))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
