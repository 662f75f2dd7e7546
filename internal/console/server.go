// Package console serves the browser-facing admin page: the schema-driven
// table and form rendered server-side, plus the live-refresh websocket and
// operational endpoints.
package console

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/urmhq/urm/internal/form"
	"github.com/urmhq/urm/internal/live"
	"github.com/urmhq/urm/internal/manager"
	"github.com/urmhq/urm/internal/schema"
	"github.com/urmhq/urm/internal/table"
)

// Server renders the console and maps HTTP actions onto the manager.
type Server struct {
	schema  schema.Schema
	manager *manager.Manager
	hub     *live.Hub
	tmpl    *template.Template
	metrics http.Handler

	// Single-session UI state: the open form and the pending delete
	// confirmation. Requests run on separate goroutines, so every access
	// goes through mu.
	mu      sync.Mutex
	form    *form.Form
	confirm table.DeleteConfirm
}

// NewServer wires the console. hub may be nil to disable /live; gatherer may
// be nil to disable /metrics.
func NewServer(s schema.Schema, m *manager.Manager, hub *live.Hub, gatherer prometheus.Gatherer) *Server {
	srv := &Server{
		schema:  s,
		manager: m,
		hub:     hub,
		tmpl:    parseTemplates(),
		form:    form.New(s),
	}
	if gatherer != nil {
		srv.metrics = promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	}
	return srv
}

// Routes registers all console routes.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	if s.hub != nil {
		r.Method(http.MethodGet, "/live", s.hub)
	}

	r.Get("/", s.handleIndex)
	r.Get("/users/new", s.handleNew)
	r.Get("/users/{id}/edit", s.handleEdit)
	r.Post("/users", s.handleCreate)
	r.Post("/users/{id}", s.handleUpdate)
	r.Post("/users/cancel", s.handleCancel)
	r.Post("/users/{id}/delete", s.handleDeleteRequest)
	r.Post("/users/{id}/delete/confirm", s.handleDeleteConfirm)
	r.Post("/users/{id}/delete/cancel", s.handleDeleteCancel)

	return r
}

// Run serves the console until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	handler := Recovery(Logging(s.Routes()))

	server := &http.Server{Addr: addr, Handler: handler}
	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	log.Printf("console: listening on %s", addr)
	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
