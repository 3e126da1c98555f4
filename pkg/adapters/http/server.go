package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/schema"
)

// Engine defines the interface for the form engine core.
type Engine interface {
	Definitions(ctx context.Context) ([]string, error)
	Definition(ctx context.Context, name string) (schema.Form, error)
	Bind(ctx context.Context, name string, initial, submission domain.Value) (*espalier.Report, error)
	Watch(ctx context.Context) (<-chan string, error)
}

// Server exposes the engine over HTTP.
type Server struct {
	Engine Engine
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine) http.Handler {
	server := &Server{Engine: engine}
	r := chi.NewRouter()

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/forms", server.ListForms)
	r.Get("/forms/{name}", server.GetForm)
	r.Post("/forms/{name}/bind", server.BindForm)
	r.Get("/events", server.SubscribeEvents)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"app":     "espalier-http",
		"version": strings.TrimSpace(espalier.Version),
	})
}

// ListForms handles the GET /forms request.
func (s *Server) ListForms(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.Definitions(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		slog.Error("ListForms failed", "error", err)
		return
	}
	writeJSON(w, map[string][]string{"forms": names})
}

// GetForm handles the GET /forms/{name} request.
func (s *Server) GetForm(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	def, err := s.Engine.Definition(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrDefinitionNotFound) {
			http.Error(w, fmt.Sprintf("Unknown form: %s", name), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Definition error: %v", err), http.StatusInternalServerError)
		slog.Error("GetForm failed", "form", name, "error", err)
		return
	}
	writeJSON(w, def)
}

// BindForm handles the POST /forms/{name}/bind request. The submission is
// taken from the request body (JSON, form-encoded or multipart) and the
// flattened bind report is returned regardless of validity; clients inspect
// the "valid" flag.
func (s *Server) BindForm(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	submission, err := ExtractSubmission(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		slog.Warn("BindForm: invalid request body", "form", name, "error", err)
		return
	}

	report, err := s.Engine.Bind(r.Context(), name, domain.Null(), submission)
	if err != nil {
		if errors.Is(err, domain.ErrDefinitionNotFound) {
			http.Error(w, fmt.Sprintf("Unknown form: %s", name), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Bind error: %v", err), http.StatusInternalServerError)
		slog.Error("BindForm failed", "form", name, "error", err)
		return
	}

	writeJSON(w, report)
}

// SubscribeEvents handles the GET /events request (SSE). It streams the name
// of each definition that changes; an optional "form" query parameter narrows
// the stream to a single definition.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		slog.Error("SubscribeEvents: streaming not supported")
		return
	}

	var only *string
	if err := runtime.BindQueryParameter("form", true, false, "form", r.URL.Query(), &only); err != nil {
		http.Error(w, fmt.Sprintf("Invalid form parameter: %v", err), http.StatusBadRequest)
		return
	}

	events, err := s.Engine.Watch(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Watch error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			slog.Info("SSE client disconnected")
			return
		case name, ok := <-events:
			if !ok {
				return
			}
			if only != nil && name != *only {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", name)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
