package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

var (
	errBadRequestBody = errors.New("Requête invalide")
	errContextFailed  = errors.New("Échec de la génération du contexte professionnel")
	errCalendarFailed = errors.New("Échec de la génération du planning de calendrier")
)

type errorResponse struct {
	Error string `json:"error"`
}

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError sends public as the body and logs cause, which never reaches
// the client.
func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, public, cause error) {
	if cause != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", cause)
	}
	r.writeJSON(ctx, w, status, errorResponse{Error: public.Error()})
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := loggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}
