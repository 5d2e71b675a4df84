package cmd

import (
	"fmt"
	"strings"

	"github.com/getlawrence/techprofile/internal/retrieval"
	"github.com/spf13/cobra"
)

var recordsCmd = &cobra.Command{
	Use:   "records [path]",
	Short: "Index a codebase into the retrieval store",
	Long: `Records analyzes the codebase and writes its summary, technology,
structure and file-content records to the configured store (memory or
postgres), then prints per-type counts. With --search it also prints the
stored documents that best match a query.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecords,
}

func init() {
	rootCmd.AddCommand(recordsCmd)
	recordsCmd.Flags().Bool("clear", false, "Remove existing records before writing")
	recordsCmd.Flags().String("search", "", "Print the records matching this query")
	recordsCmd.Flags().Int("limit", 5, "Maximum search results")
}

type recordsReport struct {
	Stored int                          `json:"stored" yaml:"stored"`
	Counts map[retrieval.RecordType]int `json:"counts" yaml:"counts"`
	Hits   []retrieval.Record           `json:"hits,omitempty" yaml:"hits,omitempty"`
}

func runRecords(cmd *cobra.Command, args []string) error {
	app, err := appConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	clearFirst, _ := cmd.Flags().GetBool("clear")
	query, _ := cmd.Flags().GetString("search")
	limit, _ := cmd.Flags().GetInt("limit")

	files, res, err := app.loadAndAnalyze(ctx, targetPath(args, 0), nil)
	if err != nil {
		return err
	}

	store, err := app.newStore(ctx)
	if err != nil {
		return err
	}
	if c, ok := store.(interface{ Close() error }); ok {
		defer c.Close()
	}
	if clearFirst {
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("clear records: %w", err)
		}
	}

	recs := retrieval.BuildRecords(res, files)
	if err := store.Put(ctx, recs...); err != nil {
		return fmt.Errorf("store records: %w", err)
	}
	counts, err := retrieval.Stats(ctx, store)
	if err != nil {
		return err
	}
	report := recordsReport{Stored: len(recs), Counts: counts}
	if strings.TrimSpace(query) != "" {
		if report.Hits, err = store.Search(ctx, query, limit); err != nil {
			return err
		}
	}

	return writeOutput(cmd.OutOrStdout(), app.Config.Output.Format, report, func() string {
		var b strings.Builder
		fmt.Fprintf(&b, "Stored %d records (%s backend)\n", report.Stored, app.Config.Store.Backend)
		for _, t := range []retrieval.RecordType{retrieval.TypeSummary, retrieval.TypeTechnologies, retrieval.TypeStructure, retrieval.TypeFileContent} {
			fmt.Fprintf(&b, "  %-13s %d\n", t, counts[t])
		}
		for _, h := range report.Hits {
			first, _, _ := strings.Cut(h.Document, "\n")
			fmt.Fprintf(&b, "  • [%s] %s\n", h.Type, first)
		}
		return b.String()
	})
}
