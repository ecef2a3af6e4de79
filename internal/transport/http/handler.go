package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/healthcareplus/consult-service/internal/domain"
	"github.com/healthcareplus/consult-service/internal/service"
	httpmw "github.com/healthcareplus/consult-service/internal/transport/http/middleware"
	"github.com/healthcareplus/consult-service/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	sessionSvc *service.SessionService
}

func NewHandler(session *service.SessionService) *Handler {
	return &Handler{sessionSvc: session}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logError пишет ошибку с trace-атрибутами запроса, если спан активен.
func logError(ctx context.Context, msg string, err error) {
	attrs := append([]slog.Attr{slog.Any("err", err)}, logger.AttrsFromCtx(ctx)...)
	slog.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

// POST /sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	userID := httpmw.UserIDFromCtx(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "missing user id"})
		return
	}

	sess, err := h.sessionSvc.CreateSession(r.Context(), userID)
	if err != nil {
		logError(r.Context(), "handler.CreateSession:", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, CreateSessionResponse{SessionID: sess.ID})
}

// GET /sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := h.sessionSvc.GetSession(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "session not found"})
			return
		}
		logError(r.Context(), "handler.GetSession:", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, SessionItem{
		ID:           sess.ID,
		CreatedBy:    sess.CreatedBy,
		CreatedAt:    sess.CreatedAt,
		Participants: sess.Participants,
	})
}
