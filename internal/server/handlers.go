package server

import (
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/algexeno/cistercian/pkg/buildinfo"
	"github.com/algexeno/cistercian/pkg/cache"
	"github.com/algexeno/cistercian/pkg/errors"
	"github.com/algexeno/cistercian/pkg/pipeline"
	"github.com/algexeno/cistercian/pkg/render/treeview"
)

// maxBodyBytes bounds POST bodies. Expressions are limited far below this.
const maxBodyBytes = 64 << 10

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error   errors.Code `json:"error"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// writeError maps error codes to HTTP statuses. Internal errors are logged
// and answered without their details.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	switch {
	case errors.IsClientError(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{code, errors.UserMessage(err)})
	case code == errors.ErrCodeNotFound:
		writeJSON(w, http.StatusNotFound, errorResponse{code, errors.UserMessage(err)})
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{errors.ErrCodeInternal, "internal error"})
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	info := buildinfo.Get()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "ok",
		"version":    info.Version,
		"commit":     info.Commit,
		"go_version": info.GoVersion,
	})
}

func (s *Server) handleStrokes(w http.ResponseWriter, r *http.Request) {
	opts, err := s.optionsFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}
	s.render(w, r, opts)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.optionsFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{pipeline.NormalizeFormat(chi.URLParam(r, "format"))}
	s.render(w, r, opts)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := pipeline.NormalizeFormat(opts.Formats[0])
	artifact, ok := result.Artifacts[format]
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeInternal, "no %s output produced", format))
		return
	}
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	writeBytes(w, pipeline.ContentTypes[format], artifact)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("expr")
	if err := errors.ValidateExpressionText(text); err != nil {
		s.writeError(w, r, err)
		return
	}
	var collapse bool
	if err := boolParam(q, "collapse", &collapse); err != nil {
		s.writeError(w, r, err)
		return
	}

	e, d, _, err := s.runner.Build(r.Context(), text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	dot := treeview.ToDOT(d, treeview.Options{Title: e.String(), Collapse: collapse})

	switch q.Get("format") {
	case "", "dot":
		writeBytes(w, "text/vnd.graphviz", []byte(dot))
	case pipeline.FormatSVG:
		data, err := treeview.RenderSVG(r.Context(), dot)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeBytes(w, pipeline.ContentTypes[pipeline.FormatSVG], data)
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "invalid tree format: %q (must be 'dot' or 'svg')", q.Get("format")))
	}
}

// =============================================================================
// Stored Renders
// =============================================================================

// storedRender is the cache record behind POST /v1/renders.
type storedRender struct {
	ID         string            `json:"id"`
	Expression string            `json:"expression"`
	Formats    []string          `json:"formats"`
	Artifacts  map[string][]byte `json:"artifacts"`
	CreatedAt  time.Time         `json:"created_at"`
}

type storeResponse struct {
	ID         string            `json:"id"`
	Expression string            `json:"expression"`
	Formats    []string          `json:"formats"`
	URLs       map[string]string `json:"urls"`
	ExpiresAt  time.Time         `json:"expires_at"`
}

func (s *Server) handleStore(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	if len(body) > maxBodyBytes {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request body too large"))
		return
	}

	opts := s.defaults
	opts.Formats = nil
	if err := json.Unmarshal(body, &opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode body"))
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := storedRender{
		ID:         uuid.NewString(),
		Expression: result.Text,
		Artifacts:  result.Artifacts,
		CreatedAt:  time.Now().UTC(),
	}
	for f := range result.Artifacts {
		rec.Formats = append(rec.Formats, f)
	}
	sortFormats(rec.Formats)

	data, err := json.Marshal(rec)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, keyer := s.cacheOf()
	if err := c.Set(r.Context(), keyer.StoredRenderKey(rec.ID), data, cache.TTLStoredRender); err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := storeResponse{
		ID:         rec.ID,
		Expression: rec.Expression,
		Formats:    rec.Formats,
		URLs:       make(map[string]string, len(rec.Formats)),
		ExpiresAt:  rec.CreatedAt.Add(cache.TTLStoredRender),
	}
	for _, f := range rec.Formats {
		resp.URLs[f] = "/v1/renders/" + rec.ID + "?format=" + f
	}
	w.Header().Set("Location", "/v1/renders/"+rec.ID)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "render %q not found", id))
		return
	}

	c, keyer := s.cacheOf()
	data, ok, err := c.Get(r.Context(), keyer.StoredRenderKey(id))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "render %q not found", id))
		return
	}

	var rec storedRender
	if err := json.Unmarshal(data, &rec); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "decode stored render"))
		return
	}

	format := pipeline.NormalizeFormat(r.URL.Query().Get("format"))
	if format == "" && len(rec.Formats) > 0 {
		format = rec.Formats[0]
	}
	artifact, ok := rec.Artifacts[format]
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "render %q has no %s output", id, format))
		return
	}
	writeBytes(w, pipeline.ContentTypes[format], artifact)
}

// sortFormats puts formats in the order of the pipeline format list.
func sortFormats(formats []string) {
	rank := map[string]int{
		pipeline.FormatSVG:  0,
		pipeline.FormatPNG:  1,
		pipeline.FormatGIF:  2,
		pipeline.FormatPDF:  3,
		pipeline.FormatJSON: 4,
	}
	slices.SortFunc(formats, func(a, b string) int { return rank[a] - rank[b] })
}
