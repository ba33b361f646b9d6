// Package api exposes the resolution engine to external collaborators (the
// editor layer and user-triggered commands) over HTTP. It is a thin boundary:
// every operation maps 1:1 onto an Engine method and inherits its
// total-function semantics.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/packsmith/langres"
	"github.com/packsmith/langres/pkg/langfile"
)

// defaultSearchLimit applies when the limit query parameter is absent.
const defaultSearchLimit = 20

// Handler serves the engine API.
type Handler struct {
	engine *langres.Engine
	log    *slog.Logger
}

// New builds the API router around an engine.
func New(engine *langres.Engine, log *slog.Logger) http.Handler {
	h := &Handler{engine: engine, log: log}

	r := chi.NewRouter()
	r.Get("/healthz", h.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/entries/{key}", h.lookup)
		r.Get("/search", h.search)
		r.Get("/locales", h.locales)
		r.Put("/locale", h.setLocale)
		r.Post("/refresh", h.refresh)
		r.Delete("/cache", h.clearCache)
	})
	return r
}

// entryResponse is the wire shape of one resolved entry.
type entryResponse struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
	Line   int    `json:"line"`
}

func toEntryResponse(e langfile.Entry) entryResponse {
	return entryResponse{Key: e.Key, Value: e.Value, Source: e.Source, Line: e.Line}
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	entry, ok := h.engine.Lookup(key)
	if !ok {
		writeError(w, http.StatusNotFound, "key not found")
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			// Caller misuse is not an error: it narrows to an empty result.
			parsed = 0
		}
		limit = parsed
	}

	matches := h.engine.Search(query, limit)
	results := make([]entryResponse, 0, len(matches))
	for _, entry := range matches {
		results = append(results, toEntryResponse(entry))
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *Handler) locales(w http.ResponseWriter, r *http.Request) {
	available := h.engine.Locales()

	resp := map[string]any{
		"current":   h.engine.Locale(),
		"available": available,
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		if suggested := negotiate(header, available); suggested != "" {
			resp["suggested"] = suggested
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) setLocale(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Locale string `json:"locale"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Locale == "" {
		writeError(w, http.StatusBadRequest, "body must be a JSON object with a locale field")
		return
	}

	if err := h.engine.SetLocale(r.Context(), req.Locale); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"locale": h.engine.Locale(),
		"keys":   len(h.engine.Table()),
	})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Refresh(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"locale": h.engine.Locale(),
		"keys":   len(h.engine.Table()),
	})
}

func (h *Handler) clearCache(w http.ResponseWriter, r *http.Request) {
	locales := r.URL.Query()["locale"]

	if err := h.engine.ClearBaselineCache(locales...); err != nil {
		h.log.Error("cache clear failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "cache clear failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
