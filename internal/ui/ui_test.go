package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/getlawrence/techprofile/internal/domain"
	"github.com/getlawrence/techprofile/internal/logger"
	"github.com/stretchr/testify/assert"
)

func sampleResult() *domain.AnalysisResult {
	var langs domain.LanguageHistogram
	langs.Add("Python")
	langs.Add("Python")
	langs.Add("JavaScript")
	return &domain.AnalysisResult{
		Summary:          "This is a Full-stack Web Application project primarily written in Python.",
		Technologies:     []string{"Python", "JavaScript", "React", "Flask"},
		Structure:        "app.py (Python, 12 lines)\nsrc/App.jsx (JavaScript, 30 lines)",
		FilesAnalyzed:    3,
		MainLanguage:     "Python",
		Framework:        "React",
		ArchitectureType: domain.ArchitectureFullStack,
		ComplexityScore:  0.1,
		Context: domain.AnalysisContext{
			Languages:  langs,
			Frameworks: domain.NewTechnologySet("React", "Flask"),
			TotalLines: 100,
			FileCount:  3,
		},
		Detailed: domain.DetailedAnalysis{
			Overview: domain.OverviewAnalysis{
				ProjectType: "Web Application",
				KeyFiles: []domain.KeyFile{
					{Name: "app.py", Purpose: "Main application file", Lines: 12, Dependencies: []string{"flask", "sqlalchemy"}},
					{Name: "package.json", Purpose: "Node.js package configuration", Lines: 20},
				},
			},
			Backend: domain.BackendAnalysis{
				APIFiles: []domain.APIFile{{File: "app.py", Endpoints: []domain.Endpoint{{Method: "GET", Path: "/users"}}}},
			},
		},
	}
}

func TestRenderAnalysis_Nil(t *testing.T) {
	assert.Equal(t, "", RenderAnalysis(nil, true))
}

func TestRenderAnalysis_Summary(t *testing.T) {
	out := RenderAnalysis(sampleResult(), false)
	assert.Contains(t, out, "Technology Profile")
	assert.Contains(t, out, "Main Language: Python")
	assert.Contains(t, out, "Framework: React")
	assert.Contains(t, out, "Full-stack Web Application")
	assert.Contains(t, out, "• Flask")
	assert.Contains(t, out, "Python: 2 file(s)")
	assert.NotContains(t, out, "GET /users")
}

func TestRenderAnalysis_Detailed(t *testing.T) {
	out := RenderAnalysis(sampleResult(), true)
	assert.Contains(t, out, "src/App.jsx (JavaScript, 30 lines)")
	assert.Contains(t, out, "Project Type: Web Application")
	assert.Contains(t, out, "GET /users")
	assert.Contains(t, out, "Separation of Concerns: false")
	assert.Contains(t, out, "app.py (Main application file, 12 lines)\n     imports: flask, sqlalchemy\n")
	assert.Equal(t, 1, strings.Count(out, "imports:"))
}

func TestSetColor(t *testing.T) {
	t.Cleanup(func() { SetColor(true) })

	SetColor(false)
	assert.False(t, titleStyle.GetBold())
	assert.False(t, sectionStyle.GetBold())
	assert.Equal(t, lipgloss.NoColor{}, titleStyle.GetForeground())

	SetColor(true)
	assert.True(t, titleStyle.GetBold())
	assert.Equal(t, lipgloss.Color("205"), titleStyle.GetForeground())
}

func TestRenderAnalysis_NoFramework(t *testing.T) {
	res := sampleResult()
	res.Framework = ""
	assert.Contains(t, RenderAnalysis(res, false), "Framework: none")
}

func TestUILogger(t *testing.T) {
	var buf bytes.Buffer
	var l logger.Logger = &UILogger{Out: &buf}
	l.Logf("loaded %d files\n", 3)
	l.Debugf("hidden\n")
	l.Warnf("slow\n")
	assert.Equal(t, "loaded 3 files\nwarning: slow\n", buf.String())

	buf.Reset()
	l = &UILogger{Out: &buf, Verbose: true}
	l.Debugf("shown\n")
	assert.Equal(t, "shown\n", buf.String())
}

func TestUILogger_MirrorsToSpinner(t *testing.T) {
	ch := make(chan logEntry, 1)
	setActiveLogChannel(ch)
	defer clearActiveLogChannel()

	var buf bytes.Buffer
	(&UILogger{Out: &buf}).Log("step one")
	e := <-ch
	assert.Equal(t, "step one", e.message)
	assert.Equal(t, "info", e.level)
}

func TestSpinnerModel_Update(t *testing.T) {
	m := newSpinnerModel(t.Context(), "Analyzing", make(chan logEntry), func() error { return nil })
	_, _ = m.Update(logMsg{level: "info", message: "classifying"})
	assert.Contains(t, m.View(), "classifying")

	_, _ = m.Update(actionDoneMsg{})
	assert.True(t, m.done)
	assert.Contains(t, m.View(), "✓ Analyzing")
}
