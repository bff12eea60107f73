// Package httpapi exposes context and calendar generation over HTTP. The
// routes are stateless: every call goes straight to the model.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/calplan/internal/domain"
	"github.com/alexanderramin/calplan/internal/planning"
)

// maxBodyBytes bounds POST bodies.
const maxBodyBytes = 1 << 20

// ModelChecker reports whether the model endpoint answers.
type ModelChecker interface {
	Available(ctx context.Context) bool
}

// Config wires the generators into the server. Model is optional; when set,
// /health reports whether the model endpoint is reachable.
type Config struct {
	Contexts  planning.ContextGenerator
	Calendars planning.CalendarGenerator
	Model     ModelChecker
	Logger    *slog.Logger
}

// Server routes the generation endpoints.
type Server struct {
	contexts  planning.ContextGenerator
	calendars planning.CalendarGenerator
	model     ModelChecker
	logger    *slog.Logger
	responder responder
	mux       *http.ServeMux
}

// NewServer builds the route table.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		contexts:  cfg.Contexts,
		calendars: cfg.Calendars,
		model:     cfg.Model,
		logger:    logger,
		responder: newResponder(logger),
		mux:       http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /api/mock-context", s.handleContext)
	s.mux.HandleFunc("POST /api/calendar", s.handleCalendar)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	return s
}

// Handler returns the routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return RequestLogger(s.logger)(s.mux)
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	pc, err := s.contexts.Generate(r.Context())
	if err != nil {
		s.responder.writeError(r.Context(), w, http.StatusInternalServerError, errContextFailed, err)
		return
	}
	s.responder.writeJSON(r.Context(), w, http.StatusOK, pc)
}

type calendarResponse struct {
	Events []domain.CalendarEvent `json:"events"`
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	var req domain.CalendarRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody, err)
		return
	}

	batch, err := s.calendars.Generate(r.Context(), req)
	if err != nil {
		s.responder.writeError(r.Context(), w, http.StatusInternalServerError, errCalendarFailed, err)
		return
	}
	s.responder.writeJSON(r.Context(), w, http.StatusOK, calendarResponse{Events: batch.Events})
}

// handleHealth always answers 200: the server is up even when the model
// is not, and generation calls report that failure themselves.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{"status": "ok"}
	if s.model != nil {
		body["llm"] = "unreachable"
		if s.model.Available(r.Context()) {
			body["llm"] = "reachable"
		}
	}
	s.responder.writeJSON(r.Context(), w, http.StatusOK, body)
}

// Run serves handler on addr until ctx ends, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- server.Shutdown(shutdownCtx)
	}()

	logger.Info("calplan API listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve %s: %w", addr, err)
	}
	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
