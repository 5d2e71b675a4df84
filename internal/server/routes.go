package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/getlawrence/techprofile/internal/assistant"
	"github.com/getlawrence/techprofile/internal/detector"
	"github.com/getlawrence/techprofile/internal/diagram"
	"github.com/getlawrence/techprofile/internal/domain"
	"github.com/getlawrence/techprofile/internal/logger"
	"github.com/getlawrence/techprofile/internal/retrieval"
	"github.com/getlawrence/techprofile/internal/source"
)

const maxUploadBytes = 32 << 20

// Deps are the services the handlers call into.
type Deps struct {
	Analyzer      detector.Service
	Store         retrieval.Store
	Assistant     *assistant.Service
	Limits        source.Limits
	AllowedOrigin string
	Logger        logger.Logger

	// Root bounds the directories /api/analyze-path may read; empty means the
	// working directory.
	Root string
}

type handler struct {
	Deps
}

// NewMux registers every route and wraps the mux in CORS and request logging.
func NewMux(d Deps) http.Handler {
	d.Logger = logger.OrNop(d.Logger)
	if d.Store == nil {
		d.Store = retrieval.NewMemoryStore()
	}
	if d.Assistant == nil {
		d.Assistant = assistant.NewService(nil, 0, d.Logger)
	}
	d.Root = resolveRoot(d.Root, d.Logger)
	h := &handler{Deps: d}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.root)
	mux.HandleFunc("POST /api/analyze-files", h.analyzeFiles)
	mux.HandleFunc("POST /api/analyze-path", h.analyzePath)
	mux.HandleFunc("POST /api/get-route-info", h.routeInfo)
	mux.HandleFunc("POST /api/query", h.query)
	mux.HandleFunc("POST /api/flow-diagram", h.flowDiagram)
	mux.HandleFunc("GET /api/health", h.health)

	return CORS(d.AllowedOrigin, Logging(d.Logger, mux))
}

type analyzeFilesRequest struct {
	Files []domain.FileRecord `json:"files"`
}

type analyzePathRequest struct {
	Path string `json:"path"`
}

// projectContext is the analysis result echoed back by clients, optionally with
// the files it was computed from and top-level framework/database lists.
type projectContext struct {
	domain.AnalysisResult
	Files      []domain.FileRecord `json:"files"`
	Frameworks []string            `json:"frameworks"`
	Databases  []string            `json:"databases"`
}

func (p *projectContext) result() *domain.AnalysisResult {
	res := p.AnalysisResult
	if res.Context.Frameworks.Len() == 0 && len(p.Frameworks) > 0 {
		res.Context.Frameworks = domain.NewTechnologySet(p.Frameworks...)
	}
	if res.Context.Databases.Len() == 0 && len(p.Databases) > 0 {
		res.Context.Databases = domain.NewTechnologySet(p.Databases...)
	}
	return &res
}

type routeInfoRequest struct {
	Route          string         `json:"route"`
	ProjectContext projectContext `json:"project_context"`
}

type queryRequest struct {
	Query   string         `json:"query"`
	Context projectContext `json:"context"`
	Route   string         `json:"route"`
}

func (h *handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Project Analyzer API is running"})
}

func (h *handler) analyzeFiles(w http.ResponseWriter, r *http.Request) {
	files, err := readUpload(w, r)
	if err != nil {
		h.fail(w, "analysis failed", err)
		return
	}
	h.analyzeAndStore(w, r.Context(), files)
}

func (h *handler) analyzePath(w http.ResponseWriter, r *http.Request) {
	var req analyzePathRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, "analysis failed", err)
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		h.fail(w, "analysis failed", fmt.Errorf("path is required: %w", domain.ErrInvalidInput))
		return
	}
	dir, err := h.confine(req.Path)
	if err != nil {
		h.fail(w, "analysis failed", err)
		return
	}
	files, stats, err := source.LoadDir(r.Context(), dir, h.Limits)
	if err != nil {
		h.fail(w, "analysis failed", err)
		return
	}
	h.Logger.Debugf("loaded %d files (%d bytes, %d skipped) from %s\n", stats.Files, stats.TotalBytes, stats.Skipped, dir)
	h.analyzeAndStore(w, r.Context(), files)
}

// confine resolves p against the root and rejects anything that lands outside it,
// following symlinks where the path exists.
func (h *handler) confine(p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(h.Root, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %v: %w", p, err, domain.ErrInvalidInput)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	rel, err := filepath.Rel(h.Root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside the served root: %w", p, domain.ErrInvalidInput)
	}
	return abs, nil
}

func resolveRoot(root string, l logger.Logger) string {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			l.Warnf("working directory: %v\n", err)
			wd = "."
		}
		root = wd
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return root
}

func (h *handler) analyzeAndStore(w http.ResponseWriter, ctx context.Context, files []domain.FileRecord) {
	res, err := h.Analyzer.Analyze(ctx, files)
	if err != nil {
		h.fail(w, "analysis failed", err)
		return
	}
	if err := h.Store.Put(ctx, retrieval.BuildRecords(res, files)...); err != nil {
		// The result is still useful without retrieval records.
		h.Logger.Warnf("store retrieval records: %v\n", err)
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) routeInfo(w http.ResponseWriter, r *http.Request) {
	var req routeInfoRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, "failed to get route info", err)
		return
	}
	content := h.Assistant.RouteInfo(r.Context(), req.Route, req.ProjectContext.result())
	writeJSON(w, http.StatusOK, map[string]string{"content": content})
}

func (h *handler) query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, "query failed", err)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		h.fail(w, "query failed", fmt.Errorf("query is required: %w", domain.ErrInvalidInput))
		return
	}
	pc, err := retrieval.GatherContext(r.Context(), h.Store, req.Query)
	if err != nil {
		h.Logger.Warnf("gather retrieval context: %v\n", err)
	}
	resp := h.Assistant.Query(r.Context(), req.Query, req.Context.result(), req.Route, pc.RelevantFiles, pc.Known()...)
	writeJSON(w, http.StatusOK, map[string]string{"response": resp})
}

func (h *handler) flowDiagram(w http.ResponseWriter, r *http.Request) {
	var req routeInfoRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, "failed to generate flow diagram", err)
		return
	}
	writeJSON(w, http.StatusOK, diagram.Generate(req.ProjectContext.result(), req.ProjectContext.Files))
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"services": map[string]bool{
			"vector_store": h.Store.Health(r.Context()) == nil,
			"assistant":    h.Assistant.Available(),
		},
	})
}

// readUpload accepts either a JSON body or a multipart form with "files" parts.
func readUpload(w http.ResponseWriter, r *http.Request) ([]domain.FileRecord, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, fmt.Errorf("parse upload: %v: %w", err, domain.ErrInvalidInput)
		}
		var files []domain.FileRecord
		for _, fh := range r.MultipartForm.File["files"] {
			f, err := fh.Open()
			if err != nil {
				return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
			}
			content, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
			}
			files = append(files, domain.FileRecord{
				Name:         fh.Filename,
				Content:      strings.ToValidUTF8(string(content), ""),
				DeclaredType: fh.Header.Get("Content-Type"),
			})
		}
		return files, nil
	}
	var req analyzeFilesRequest
	if err := decode(w, r, &req); err != nil {
		return nil, err
	}
	return req.Files, nil
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode request: %v: %w", err, domain.ErrInvalidInput)
	}
	return nil
}

func (h *handler) fail(w http.ResponseWriter, prefix string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrInvalidInput) {
		status = http.StatusBadRequest
	} else {
		h.Logger.Warnf("%s: %v\n", prefix, err)
	}
	writeJSON(w, status, map[string]string{"detail": fmt.Sprintf("%s: %v", prefix, err)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
