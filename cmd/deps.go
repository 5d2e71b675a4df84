package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/getlawrence/techprofile/internal/artifact"
	"github.com/getlawrence/techprofile/internal/assistant"
	"github.com/getlawrence/techprofile/internal/detector"
	"github.com/getlawrence/techprofile/internal/domain"
	"github.com/getlawrence/techprofile/internal/retrieval"
	"github.com/getlawrence/techprofile/internal/source"
	"github.com/getlawrence/techprofile/internal/ui"
)

// newAnalyzer builds the analyzer from config, behind the result cache when
// one is configured.
func (a *AppConfig) newAnalyzer() (detector.Service, error) {
	cat, err := a.Config.Catalog()
	if err != nil {
		return nil, err
	}
	base := detector.NewAnalyzer(
		detector.WithCatalog(cat),
		detector.WithWorkers(a.Config.Analysis.Workers),
		detector.WithLogger(a.Logger),
	)
	if a.Config.Cache.Size == 0 {
		return base, nil
	}
	cached, err := detector.NewCachedAnalyzer(base, a.Config.Cache.Size)
	if err != nil {
		return nil, err
	}
	return cached, nil
}

func (a *AppConfig) newStore(ctx context.Context) (retrieval.Store, error) {
	return retrieval.Open(ctx, a.Config.Store.Backend, a.Config.Store.DSN)
}

// newAssistant returns a service backed by Gemini, or the templated fallback
// when no provider or key is configured.
func (a *AppConfig) newAssistant(ctx context.Context) *assistant.Service {
	cfg := a.Config.Assistant
	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Provider != "gemini" || cfg.APIKey == "" {
		return assistant.NewService(nil, timeout, a.Logger)
	}
	gen, err := assistant.NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		a.Logger.Warnf("gemini unavailable, using fallback answers: %v\n", err)
		return assistant.NewService(nil, timeout, a.Logger)
	}
	return assistant.NewService(gen, timeout, a.Logger)
}

func (a *AppConfig) newArtifactStore() (artifact.Store, error) {
	c := a.Config.Artifacts
	if a.Config.S3Enabled() {
		return artifact.NewS3Store(artifact.S3Config{
			Endpoint:  c.Endpoint,
			Region:    c.Region,
			AccessKey: c.AccessKey,
			SecretKey: c.SecretKey,
			Bucket:    c.Bucket,
			UseSSL:    c.UseSSL,
		})
	}
	return artifact.NewFileStore(c.Dir), nil
}

// loadAndAnalyze reads the tree at path and analyzes it under a spinner.
func (a *AppConfig) loadAndAnalyze(ctx context.Context, path string, repo *domain.RepositoryInfo) ([]domain.FileRecord, *domain.AnalysisResult, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, statErr := os.Stat(absPath); os.IsNotExist(statErr) {
		return nil, nil, fmt.Errorf("path does not exist: %s", absPath)
	}

	analyzer, err := a.newAnalyzer()
	if err != nil {
		return nil, nil, err
	}

	a.Logger.Debugf("Analyzing codebase at: %s\n", absPath)

	var (
		files []domain.FileRecord
		res   *domain.AnalysisResult
	)
	runErr := ui.RunSpinner(ctx, "Analyzing codebase...", func() error {
		var stats source.Stats
		var e error
		files, stats, e = source.LoadDir(ctx, absPath, a.Config.Limits())
		if e != nil {
			return e
		}
		a.Logger.Debugf("loaded %d files (%d bytes), skipped %d, truncated=%t\n",
			stats.Files, stats.TotalBytes, stats.Skipped, stats.Truncated)
		if repo != nil {
			res, e = analyzer.AnalyzeRepository(ctx, files, repo)
		} else {
			res, e = analyzer.Analyze(ctx, files)
		}
		return e
	})
	if runErr != nil {
		return nil, nil, runErr
	}
	return files, res, nil
}

func targetPath(args []string, idx int) string {
	if len(args) > idx {
		return args[idx]
	}
	return "."
}
