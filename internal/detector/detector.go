// Package detector turns a list of source files into a technology profile:
// languages, frameworks, databases, architecture, complexity and a summary.
package detector

import (
	"context"
	"fmt"
	"runtime"

	"github.com/getlawrence/techprofile/internal/catalog"
	"github.com/getlawrence/techprofile/internal/detector/aspects"
	"github.com/getlawrence/techprofile/internal/domain"
	"github.com/getlawrence/techprofile/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Analyzer runs the classification pipeline. It keeps no per-call state and
// may be shared across goroutines.
type Analyzer struct {
	classifier *Classifier
	workers    int
	logger     logger.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCatalog replaces the built-in signature catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(a *Analyzer) { a.classifier = NewClassifier(c) }
}

// WithWorkers bounds per-file classification parallelism. Values below one
// are ignored.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l logger.Logger) Option {
	return func(a *Analyzer) { a.logger = logger.OrNop(l) }
}

// NewAnalyzer creates an analyzer over the built-in catalog.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		classifier: NewClassifier(nil),
		workers:    runtime.GOMAXPROCS(0),
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze classifies files and assembles the result. An empty file list is
// rejected with domain.ErrInvalidInput.
func (a *Analyzer) Analyze(ctx context.Context, files []domain.FileRecord) (*domain.AnalysisResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("analyze: no files provided: %w", domain.ErrInvalidInput)
	}

	classified, err := a.classifyAll(ctx, files)
	if err != nil {
		return nil, err
	}

	var agg Aggregate
	for _, c := range classified {
		agg.Fold(c)
	}

	arch := InferArchitecture(agg.Frameworks, agg.Languages)
	score := ComplexityScore(agg.TotalLines)
	technologies := agg.Technologies()
	mainLanguage := agg.MainLanguage()
	framework := agg.PrimaryFramework()

	detailed, err := aspects.Analyze(ctx, aspects.NewInput(files, agg.Languages, agg.Frameworks, agg.Databases))
	if err != nil {
		return nil, fmt.Errorf("analyze aspects: %w", err)
	}

	a.logger.Debugf("analyzed %d files: main=%s framework=%s architecture=%s lines=%d\n",
		agg.FileCount, mainLanguage, framework, arch, agg.TotalLines)

	return &domain.AnalysisResult{
		Summary: ComposeSummary(SummaryInput{
			Architecture: arch,
			MainLanguage: mainLanguage,
			Framework:    framework,
			FileCount:    agg.FileCount,
			Technologies: technologies,
			Complexity:   score,
		}),
		Technologies:     technologies,
		Structure:        agg.Structure(),
		FilesAnalyzed:    agg.FileCount,
		MainLanguage:     mainLanguage,
		Framework:        framework,
		ArchitectureType: arch,
		ComplexityScore:  score,
		Context: domain.AnalysisContext{
			Languages:  agg.Languages,
			Frameworks: agg.Frameworks,
			Databases:  agg.Databases,
			TotalLines: agg.TotalLines,
			FileCount:  agg.FileCount,
		},
		Detailed: detailed,
	}, nil
}

// AnalyzeRepository is Analyze with repository metadata attached to the context.
func (a *Analyzer) AnalyzeRepository(ctx context.Context, files []domain.FileRecord, repo *domain.RepositoryInfo) (*domain.AnalysisResult, error) {
	res, err := a.Analyze(ctx, files)
	if err != nil {
		return nil, err
	}
	res.Context.Repository = repo
	return res, nil
}

// classifyAll fans classification out over a bounded pool. Each result lands
// in its input slot so the reduce that follows sees input order.
func (a *Analyzer) classifyAll(ctx context.Context, files []domain.FileRecord) ([]FileClassification, error) {
	out := make([]FileClassification, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = a.classifier.Classify(files[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("classify files: %w", err)
	}
	return out, nil
}
