package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/crossflow/pkg/crossflow"
	"github.com/matzehuels/crossflow/pkg/errors"
	cfio "github.com/matzehuels/crossflow/pkg/io"
	"github.com/matzehuels/crossflow/pkg/pipeline"
)

// headerCache reports whether the option came from cache ("hit" or "miss").
const headerCache = "X-Crossflow-Cache"

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleOption(w http.ResponseWriter, r *http.Request) {
	opts, err := s.readOptions(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Refresh = boolParam(r, "refresh")

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set(headerCache, hitOrMiss(result.CacheInfo.BuildHit))
	writeRaw(w, http.StatusOK, "application/json", result.Artifacts[pipeline.FormatJSON])
}

type summaryResponse struct {
	Flows []crossflow.Flow `json:"flows"`
	Max   float64          `json:"max"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	opts, err := s.readOptions(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := opts.ValidateForBuild(); err != nil {
		writeError(w, err)
		return
	}
	totals := crossflow.ComputeTotals(opts.Counts, opts.Config.Resolve().MaxWidth)
	writeJSON(w, http.StatusOK, summaryResponse{Flows: totals.Flows(), Max: totals.Max})
}

type layoutResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.readOptions(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	opt, err := s.runner.Build(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := json.Marshal(opt)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidCounts, err, "option is not representable as JSON"))
		return
	}

	id := uuid.NewString()
	if err := s.runner.Cache.Set(r.Context(), s.runner.Keyer.LayoutKey(id), data, s.cfg.LayoutTTL); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store layout"))
		return
	}
	w.Header().Set("Location", "/api/layouts/"+id)
	writeJSON(w, http.StatusCreated, layoutResponse{ID: id})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	data, err := s.loadLayout(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, "application/json", data)
}

func (s *Server) handleGetLayoutDOT(w http.ResponseWriter, r *http.Request) {
	data, err := s.loadLayout(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var opt crossflow.Option
	if err := json.Unmarshal(data, &opt); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "decode stored layout"))
		return
	}

	artifacts, err := s.runner.Export(r.Context(), opt, pipeline.Options{
		Formats:   []string{pipeline.FormatDOT},
		DOTLabels: boolParam(r, "labels"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, "text/vnd.graphviz", artifacts[pipeline.FormatDOT])
}

// =============================================================================
// Request Helpers
// =============================================================================

// readOptions decodes a JSON counts document into pipeline options. The
// document's config table is applied on top of the server style.
func (s *Server) readOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	doc, err := cfio.ReadDocument(body, cfio.FormatJSON)
	if err != nil {
		return pipeline.Options{}, err
	}
	style := s.cfg.Style
	if doc.Config != nil {
		style = style.Merge(*doc.Config)
	}
	return pipeline.Options{
		Counts: doc.Crossroad(),
		Config: style,
		Strict: boolParam(r, "strict"),
		Logger: s.logger,
	}, nil
}

func (s *Server) loadLayout(r *http.Request) ([]byte, error) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid layout id %q", id)
	}
	data, hit, err := s.runner.Cache.Get(r.Context(), s.runner.Keyer.LayoutKey(id))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load layout")
	}
	if !hit {
		return nil, errors.New(errors.ErrCodeNotFound, "layout %s not found", id)
	}
	return data, nil
}

func boolParam(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

func hitOrMiss(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// =============================================================================
// Response Helpers
// =============================================================================

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(err), errorBody{Error: errorDetail{Code: code, Message: errors.UserMessage(err)}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, status int, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	w.Write(data)
}
