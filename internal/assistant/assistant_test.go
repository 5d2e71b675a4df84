package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/getlawrence/techprofile/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	reply string
	err   error
	last  Request
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(ctx context.Context, req Request) (string, error) {
	f.last = req
	return f.reply, f.err
}

func result() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Technologies:     []string{"Python", "JavaScript", "React", "Flask", "PostgreSQL", "MongoDB"},
		FilesAnalyzed:    7,
		MainLanguage:     "Python",
		Framework:        "React",
		ArchitectureType: domain.ArchitectureFullStack,
	}
}

func TestRoutePrompt(t *testing.T) {
	p := RoutePrompt("backend", result())
	assert.Contains(t, p, "- Main Language: Python")
	assert.Contains(t, p, "- Technologies: Python, JavaScript, React, Flask, PostgreSQL, MongoDB")
	assert.Contains(t, p, "1. Backend framework and server architecture")
	assert.Contains(t, p, "6. Error handling and logging strategies")

	p = RoutePrompt("testing", &domain.AnalysisResult{})
	assert.Contains(t, p, "- Framework: Not specified")
	assert.True(t, strings.HasSuffix(p, "Provide detailed information about the testing aspect of this project."))
}

func TestQueryPrompt(t *testing.T) {
	p := QueryPrompt("how is auth done?", result(), "backend", []string{"a", "b", "c", "d"})
	assert.Contains(t, p, "Relevant Code Context:\na\nb\nc\n")
	assert.NotContains(t, p, "\nd\n")
	assert.Contains(t, p, "User Question: how is auth done?")

	assert.NotContains(t, p, "Stored Project Knowledge")

	p = QueryPrompt("q", result(), "overview", nil)
	assert.Contains(t, p, "No specific code context available")

	p = QueryPrompt("q", result(), "overview", []string{"file"}, "summary line", "Project structure:\napp.py")
	assert.Contains(t, p, "Stored Project Knowledge:\nsummary line\nProject structure:\napp.py\n\nRelevant Code Context:\nfile\n")
}

func TestFallbackRouteInfo(t *testing.T) {
	res := result()
	assert.Contains(t, FallbackRouteInfo("overview", res), "uses the <strong>React</strong> framework")
	assert.Contains(t, FallbackRouteInfo("overview", res), "with 7 files analyzed")

	fe := FallbackRouteInfo("frontend", res)
	assert.Contains(t, fe, "<li>JavaScript</li><li>React</li>")
	assert.NotContains(t, fe, "<li>Python</li>")

	be := FallbackRouteInfo("backend", res)
	assert.Contains(t, be, "<li>Python</li><li>Flask</li>")

	db := FallbackRouteInfo("database", res)
	assert.Contains(t, db, "<li>PostgreSQL</li><li>MongoDB</li>")

	arch := FallbackRouteInfo("architecture", res)
	assert.Contains(t, arch, "<strong>Full-stack</strong>")
	assert.Contains(t, arch, "<li>Primary Framework: React</li>")

	flow := FallbackRouteInfo("flow", res)
	assert.Contains(t, flow, "(Python, JavaScript, React, Flask, PostgreSQL)")

	other := FallbackRouteInfo("<ops>", &domain.AnalysisResult{})
	assert.Equal(t, "<p>Information about &lt;ops&gt; aspect of the project using Unknown and related technologies.</p>", other)
}

func TestFallbackRouteInfo_NoFramework(t *testing.T) {
	res := result()
	res.Framework = ""
	assert.NotContains(t, FallbackRouteInfo("overview", res), "framework as its main foundation")
	assert.NotContains(t, FallbackRouteInfo("architecture", res), "Primary Framework")
}

func TestFallbackQuery(t *testing.T) {
	out := FallbackQuery("what db?", result(), "database")
	assert.Contains(t, out, `asking about: "what db?"`)
	assert.Contains(t, out, "uses Python, JavaScript, React technologies")
	assert.Contains(t, out, "- Current Focus: database")
}

func TestService_NoGenerator(t *testing.T) {
	s := NewService(nil, 0, nil)
	assert.False(t, s.Available())
	assert.Equal(t, "fallback", s.Backend())
	assert.Equal(t, FallbackRouteInfo("flow", result()), s.RouteInfo(context.Background(), "flow", result()))
	assert.Equal(t, FallbackQuery("q", result(), "flow"), s.Query(context.Background(), "q", result(), "flow", nil))
}

func TestService_UsesGenerator(t *testing.T) {
	gen := &fakeGenerator{reply: "model says hi"}
	s := NewService(gen, time.Second, nil)
	require.True(t, s.Available())

	assert.Equal(t, "model says hi", s.RouteInfo(context.Background(), "overview", result()))
	assert.Equal(t, routeSystemPrompt, gen.last.System)
	assert.Equal(t, int32(1000), gen.last.MaxTokens)
	assert.Equal(t, float32(0.3), gen.last.Temperature)

	assert.Equal(t, "model says hi", s.Query(context.Background(), "why?", result(), "overview", []string{"ctx"}))
	assert.Equal(t, querySystemPrompt, gen.last.System)
	assert.Equal(t, int32(1500), gen.last.MaxTokens)
	assert.Contains(t, gen.last.Prompt, "ctx")
}

func TestService_FallsBackOnError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	s := NewService(gen, time.Second, nil)
	assert.Equal(t, FallbackRouteInfo("backend", result()), s.RouteInfo(context.Background(), "backend", result()))
	assert.Equal(t, FallbackQuery("q", result(), "backend"), s.Query(context.Background(), "q", result(), "backend", nil))
}
