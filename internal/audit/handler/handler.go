package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pezkuwi/internal/audit"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/platform/httputil"
	"pezkuwi/pkg/requestcontext"
)

// HistoryLimit caps one page of a user's audit history.
const HistoryLimit = 50

type History interface {
	List(ctx context.Context, userID id.UserID, limit int) ([]audit.Event, error)
}

type Handler struct {
	history History
	logger  *slog.Logger
}

func New(history History, logger *slog.Logger) *Handler {
	return &Handler{history: history, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/audit/{user_id}", h.HandleHistory)
}

// HistoryResponse lists a user's audit events, newest first.
type HistoryResponse struct {
	Events []audit.Event `json:"events"`
}

// HandleHistory handles GET /audit/{user_id}.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := httputil.UserIDParam(r, "user_id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	events, err := h.history.List(ctx, userID, HistoryLimit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list audit events",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	httputil.WriteJSON(w, http.StatusOK, HistoryResponse{Events: events})
}
