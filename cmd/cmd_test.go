package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/getlawrence/techprofile/internal/artifact"
	"github.com/getlawrence/techprofile/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// project writes a small full-stack tree and isolates the process from any
// user config, .env file or API key.
func project(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("TECHPROFILE_DATABASE_URL", "")
	t.Setenv("TECHPROFILE_S3_ENDPOINT", "")
	t.Chdir(t.TempDir())

	dir := t.TempDir()
	files := map[string]string{
		"src/App.jsx":   "import React from 'react'\nexport default function App() { return null }\n",
		"api/server.py": "from flask import Flask\napp = Flask(__name__)\n\n@app.route('/users')\ndef users():\n    return []\n",
	}
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	project(t)
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "techprofile dev")
}

func TestAnalyze_JSON(t *testing.T) {
	dir := project(t)
	out, err := run(t, "analyze", dir, "-o", "json", "--export=false")
	require.NoError(t, err)

	var res domain.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, domain.ArchitectureFullStack, res.ArchitectureType)
	assert.Equal(t, 2, res.FilesAnalyzed)
	assert.Contains(t, res.Technologies, "Flask")
}

func TestAnalyze_TextWithRepository(t *testing.T) {
	dir := project(t)
	out, err := run(t, "analyze", dir, "-o", "text", "--export=false", "--repo-url", "https://github.com/acme/shop")
	require.NoError(t, err)
	assert.Contains(t, out, "Technology Profile")
	assert.Contains(t, out, "Repository: shop")

	_, err = run(t, "analyze", dir, "-o", "text", "--repo-url", "not a url")
	assert.Error(t, err)
	_, _ = run(t, "analyze", dir, "--repo-url", "")
}

func TestAnalyze_MissingPath(t *testing.T) {
	project(t)
	_, err := run(t, "analyze", filepath.Join(t.TempDir(), "missing"), "-o", "text")
	assert.Error(t, err)
}

func TestAnalyze_Export(t *testing.T) {
	dir := project(t)
	artifacts := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "techprofile.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("artifacts:\n  dir: "+artifacts+"\n"), 0o644))

	_, err := run(t, "--config", cfgPath, "analyze", dir, "-o", "json", "--export", "--run-id", "run1")
	require.NoError(t, err)

	store := artifact.NewFileStore(artifacts)
	names, err := store.List(t.Context(), "run1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{artifact.ResultFile, artifact.SummaryFile, artifact.DiagramFile}, names)

	_, _ = run(t, "analyze", dir, "--export=false", "--run-id", "")
}

func TestDiagram(t *testing.T) {
	dir := project(t)
	out, err := run(t, "diagram", dir, "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, "frontend -->|HTTP/REST| backend")
}

func TestAsk_Fallback(t *testing.T) {
	dir := project(t)
	out, err := run(t, "ask", "overview", dir, "-o", "text", "-q", "")
	require.NoError(t, err)
	assert.Contains(t, out, "<h3>Project Overview</h3>")

	out, err = run(t, "ask", "backend", dir, "-o", "json", "-q", "where are users handled")
	require.NoError(t, err)
	var answer map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &answer))
	assert.Equal(t, "backend", answer["route"])
	assert.Contains(t, answer["answer"], "where are users handled")
	_, _ = run(t, "ask", "overview", dir, "-q", "")
}

func TestRecords(t *testing.T) {
	dir := project(t)
	out, err := run(t, "records", dir, "-o", "json", "--search", "flask")
	require.NoError(t, err)

	var report struct {
		Stored int            `json:"stored"`
		Counts map[string]int `json:"counts"`
		Hits   []struct {
			Type string `json:"type"`
		} `json:"hits"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 5, report.Stored)
	assert.Equal(t, 2, report.Counts["file_content"])
	assert.NotEmpty(t, report.Hits)
	_, _ = run(t, "records", dir, "--search", "")
}

func TestConfigInitAndShow(t *testing.T) {
	project(t)
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	out, err := run(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	_, err = run(t, "--config", path, "config", "init")
	assert.Error(t, err)

	out, err = run(t, "--config", path, "config", "show", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "max_files: 200")
	_, _ = run(t, "--config", "", "version")
}

func TestInvalidOutputFormat(t *testing.T) {
	project(t)
	_, err := run(t, "version", "-o", "xml")
	assert.Error(t, err)
	_, _ = run(t, "version", "-o", "text")
}
