// Package assistant answers questions about an analyzed project. A language
// model is used when one is configured; otherwise answers are rendered from
// the analysis itself.
package assistant

import (
	"context"
	"time"

	"github.com/getlawrence/techprofile/internal/domain"
	"github.com/getlawrence/techprofile/internal/logger"
)

// Request is one generation call.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int32
	Temperature float32
}

// Generator produces text for a prompt.
type Generator interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// Service routes questions to a Generator and falls back to templated
// answers when it is missing or fails.
type Service struct {
	gen     Generator
	timeout time.Duration
	logger  logger.Logger
}

// NewService returns a service. gen may be nil.
func NewService(gen Generator, timeout time.Duration, l logger.Logger) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{gen: gen, timeout: timeout, logger: logger.OrNop(l)}
}

// Available reports whether a model is configured.
func (s *Service) Available() bool { return s.gen != nil }

// Backend names the model in use, or "fallback".
func (s *Service) Backend() string {
	if s.gen == nil {
		return "fallback"
	}
	return s.gen.Name()
}

// RouteInfo describes one aspect of the project.
func (s *Service) RouteInfo(ctx context.Context, route string, res *domain.AnalysisResult) string {
	if s.gen == nil {
		return FallbackRouteInfo(route, res)
	}
	text, err := s.generate(ctx, Request{
		System:      routeSystemPrompt,
		Prompt:      RoutePrompt(route, res),
		MaxTokens:   1000,
		Temperature: 0.3,
	})
	if err != nil {
		s.logger.Warnf("route info for %s: %v; using fallback\n", route, err)
		return FallbackRouteInfo(route, res)
	}
	return text
}

// Query answers a free-form question with optional retrieved context.
func (s *Service) Query(ctx context.Context, question string, res *domain.AnalysisResult, route string, relevant []string, known ...string) string {
	if s.gen == nil {
		return FallbackQuery(question, res, route)
	}
	text, err := s.generate(ctx, Request{
		System:      querySystemPrompt,
		Prompt:      QueryPrompt(question, res, route, relevant, known...),
		MaxTokens:   1500,
		Temperature: 0.2,
	})
	if err != nil {
		s.logger.Warnf("query: %v; using fallback\n", err)
		return FallbackQuery(question, res, route)
	}
	return text
}

func (s *Service) generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.gen.Generate(ctx, req)
}
