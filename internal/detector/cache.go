package detector

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/getlawrence/techprofile/internal/domain"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Service is the analysis surface used by the CLI and the HTTP server.
type Service interface {
	Analyze(ctx context.Context, files []domain.FileRecord) (*domain.AnalysisResult, error)
	AnalyzeRepository(ctx context.Context, files []domain.FileRecord, repo *domain.RepositoryInfo) (*domain.AnalysisResult, error)
}

var (
	_ Service = (*Analyzer)(nil)
	_ Service = (*CachedAnalyzer)(nil)
)

// CachedAnalyzer memoizes results by a digest of the file list. Results are
// treated as immutable; callers must not modify what they get back.
type CachedAnalyzer struct {
	next  *Analyzer
	cache *lru.Cache[string, *domain.AnalysisResult]
}

// NewCachedAnalyzer wraps next with an LRU of the given size.
func NewCachedAnalyzer(next *Analyzer, size int) (*CachedAnalyzer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", size)
	}
	c, err := lru.New[string, *domain.AnalysisResult](size)
	if err != nil {
		return nil, fmt.Errorf("create analysis cache: %w", err)
	}
	return &CachedAnalyzer{next: next, cache: c}, nil
}

func (c *CachedAnalyzer) Analyze(ctx context.Context, files []domain.FileRecord) (*domain.AnalysisResult, error) {
	key := Digest(files)
	if res, ok := c.cache.Get(key); ok {
		return res, nil
	}
	res, err := c.next.Analyze(ctx, files)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, res)
	return res, nil
}

// AnalyzeRepository returns a copy of the cached result carrying repo.
func (c *CachedAnalyzer) AnalyzeRepository(ctx context.Context, files []domain.FileRecord, repo *domain.RepositoryInfo) (*domain.AnalysisResult, error) {
	res, err := c.Analyze(ctx, files)
	if err != nil {
		return nil, err
	}
	cp := *res
	cp.Context.Repository = repo
	return &cp, nil
}

// Len reports the number of cached results.
func (c *CachedAnalyzer) Len() int { return c.cache.Len() }

// Digest identifies a file list by names and contents, in order.
func Digest(files []domain.FileRecord) string {
	h := sha256.New()
	var n [8]byte
	for _, f := range files {
		for _, s := range []string{f.Name, f.Content} {
			binary.BigEndian.PutUint64(n[:], uint64(len(s)))
			h.Write(n[:])
			h.Write([]byte(s))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
