package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/getlawrence/techprofile/internal/assistant"
	"github.com/getlawrence/techprofile/internal/detector"
	"github.com/getlawrence/techprofile/internal/domain"
	"github.com/getlawrence/techprofile/internal/retrieval"
	"github.com/getlawrence/techprofile/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingGenerator struct {
	prompts []string
}

func (g *recordingGenerator) Name() string { return "fake" }

func (g *recordingGenerator) Generate(_ context.Context, req assistant.Request) (string, error) {
	g.prompts = append(g.prompts, req.Prompt)
	return "generated answer", nil
}

func newTestMux(t *testing.T, gen assistant.Generator) (http.Handler, *retrieval.MemoryStore) {
	t.Helper()
	return newRootedMux(t, gen, "")
}

func newRootedMux(t *testing.T, gen assistant.Generator, root string) (http.Handler, *retrieval.MemoryStore) {
	t.Helper()
	cached, err := detector.NewCachedAnalyzer(detector.NewAnalyzer(), 8)
	require.NoError(t, err)
	store := retrieval.NewMemoryStore()
	var svc *assistant.Service
	if gen != nil {
		svc = assistant.NewService(gen, 0, nil)
	}
	return NewMux(Deps{
		Analyzer:      cached,
		Store:         store,
		Assistant:     svc,
		Limits:        source.DefaultLimits(),
		AllowedOrigin: "http://localhost:3000",
		Root:          root,
	}), store
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var fullStack = map[string]interface{}{
	"files": []map[string]string{
		{"name": "App.jsx", "content": "import React from 'react'\nexport default function App() {}"},
		{"name": "server.py", "content": "from flask import Flask\napp = Flask(__name__)\n@app.route('/users')\ndef users():\n    return []"},
	},
}

func TestRoot(t *testing.T) {
	h, _ := newTestMux(t, nil)
	rec := do(t, h, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Project Analyzer API is running")
}

func TestAnalyzeFiles(t *testing.T) {
	h, store := newTestMux(t, nil)
	rec := do(t, h, http.MethodPost, "/api/analyze-files", fullStack)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res domain.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, domain.ArchitectureFullStack, res.ArchitectureType)
	assert.Contains(t, res.Technologies, "React")
	assert.Contains(t, res.Technologies, "Flask")
	assert.Equal(t, 2, res.FilesAnalyzed)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	// summary, technologies, structure and both files
	assert.Equal(t, 5, n)
}

func TestAnalyzeFiles_Multipart(t *testing.T) {
	h, _ := newTestMux(t, nil)
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("files", "main.go")
	require.NoError(t, err)
	_, err = part.Write([]byte("package main\n\nfunc main() {}\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-files", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res domain.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Go", res.MainLanguage)
}

func TestAnalyzeFiles_Empty(t *testing.T) {
	h, _ := newTestMux(t, nil)
	rec := do(t, h, http.MethodPost, "/api/analyze-files", map[string]interface{}{"files": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "detail")
}

func TestAnalyzeFiles_Malformed(t *testing.T) {
	h, _ := newTestMux(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-files", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.py"), []byte("from fastapi import FastAPI\n"), 0o644))
	h, _ := newRootedMux(t, nil, dir)

	rec := do(t, h, http.MethodPost, "/api/analyze-path", map[string]string{"path": dir})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res domain.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "FastAPI", res.Framework)

	rec = do(t, h, http.MethodPost, "/api/analyze-path", map[string]string{"path": filepath.Join(dir, "app.py")})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/analyze-path", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzePath_OutsideRoot(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secrets.py"), []byte("class Secret:\n    pass\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "project"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "project", "app.py"), []byte("from flask import Flask\n"), 0o644))
	h, store := newRootedMux(t, nil, root)

	for _, p := range []string{outside, filepath.Join(root, "..", filepath.Base(outside)), "../" + filepath.Base(outside)} {
		rec := do(t, h, http.MethodPost, "/api/analyze-path", map[string]string{"path": p})
		assert.Equal(t, http.StatusBadRequest, rec.Code, p)
		assert.NotContains(t, rec.Body.String(), "Secret")
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	}
	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	// Relative paths resolve against the root.
	rec := do(t, h, http.MethodPost, "/api/analyze-path", map[string]string{"path": "project"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Flask")
}

func TestAnalyzePath_SymlinkEscape(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secrets.py"), []byte("x = 1\n"), 0o644))
	link := filepath.Join(root, "link")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	h, _ := newRootedMux(t, nil, root)
	rec := do(t, h, http.MethodPost, "/api/analyze-path", map[string]string{"path": link})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouteInfo_Fallback(t *testing.T) {
	h, _ := newTestMux(t, nil)
	rec := do(t, h, http.MethodPost, "/api/get-route-info", map[string]interface{}{
		"route": "overview",
		"project_context": map[string]interface{}{
			"main_language": "Python",
			"framework":     "Flask",
			"technologies":  []string{"Python", "Flask"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Contains(t, out["content"], "<strong>Python</strong>")
	assert.Contains(t, out["content"], "<li>Flask</li>")
}

func TestQuery_UsesStoredRecords(t *testing.T) {
	gen := &recordingGenerator{}
	h, _ := newTestMux(t, gen)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/analyze-files", fullStack).Code)

	rec := do(t, h, http.MethodPost, "/api/query", map[string]interface{}{
		"query":   "where are the flask users routes",
		"context": map[string]interface{}{"main_language": "Python"},
		"route":   "backend",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "generated answer", out["response"])
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "server.py")
	assert.Contains(t, gen.prompts[0], "Stored Project Knowledge:\nThis is a ")
	assert.Contains(t, gen.prompts[0], "Project structure:")
}

func TestQuery_Empty(t *testing.T) {
	h, _ := newTestMux(t, nil)
	rec := do(t, h, http.MethodPost, "/api/query", map[string]string{"query": " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFlowDiagram(t *testing.T) {
	h, _ := newTestMux(t, nil)
	rec := do(t, h, http.MethodPost, "/api/flow-diagram", map[string]interface{}{
		"project_context": map[string]interface{}{
			"frameworks":    []string{"React", "Express"},
			"databases":     []string{"MongoDB"},
			"main_language": "JavaScript",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Mermaid string `json:"mermaid"`
		Nodes   []struct {
			ID string `json:"id"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, strings.HasPrefix(out.Mermaid, "graph LR"))
	assert.Contains(t, out.Mermaid, "backend -->|CRUD| db")
	assert.Len(t, out.Nodes, 4)
}

func TestHealth(t *testing.T) {
	h, _ := newTestMux(t, nil)
	rec := do(t, h, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Status   string          `json:"status"`
		Services map[string]bool `json:"services"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "healthy", out.Status)
	assert.True(t, out.Services["vector_store"])
	assert.False(t, out.Services["assistant"])
	assert.Len(t, out.Services, 2)
}

func TestCORS(t *testing.T) {
	h, _ := newTestMux(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/query", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestMux(t, nil)
	rec := do(t, h, http.MethodGet, "/api/query", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
