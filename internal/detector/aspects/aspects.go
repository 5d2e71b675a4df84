// Package aspects derives the per-aspect breakdown of an analysis. Every
// analyzer is a read-only pass over the input files and never fails on
// malformed content: a missing signal is an empty list or zero.
package aspects

import (
	"context"

	"github.com/getlawrence/techprofile/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Input is the shared, read-only view handed to every analyzer.
type Input struct {
	Files      []domain.FileRecord
	Partition  Partition
	Languages  domain.LanguageHistogram
	Frameworks domain.TechnologySet
	Databases  domain.TechnologySet
}

// NewInput partitions files and bundles the aggregate signals.
func NewInput(files []domain.FileRecord, languages domain.LanguageHistogram, frameworks, databases domain.TechnologySet) *Input {
	return &Input{
		Files:      files,
		Partition:  PartitionFiles(files),
		Languages:  languages,
		Frameworks: frameworks,
		Databases:  databases,
	}
}

// Analyze runs the six analyzers concurrently. Each goroutine writes only
// its own field of the result.
func Analyze(ctx context.Context, in *Input) (domain.DetailedAnalysis, error) {
	var out domain.DetailedAnalysis
	g, ctx := errgroup.WithContext(ctx)

	run := func(fn func()) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}

	run(func() { out.Overview = AnalyzeOverview(in) })
	run(func() { out.Frontend = AnalyzeFrontend(in) })
	run(func() { out.Backend = AnalyzeBackend(in) })
	run(func() { out.Database = AnalyzeDatabase(in) })
	run(func() { out.Architecture = AnalyzeArchitecture(in) })
	run(func() { out.Flow = AnalyzeFlow(in) })

	if err := g.Wait(); err != nil {
		return domain.DetailedAnalysis{}, err
	}
	return out, nil
}
