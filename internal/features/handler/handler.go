package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pezkuwi/internal/features"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
	"pezkuwi/pkg/platform/httputil"
	"pezkuwi/pkg/requestcontext"
)

type Service interface {
	CheckAccess(ctx context.Context, userID id.UserID, feature string) (*features.Decision, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/features/check/{user_id}", h.HandleCheck)
}

// HandleCheck handles GET /features/check/{user_id}?feature=<name>.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := httputil.UserIDParam(r, "user_id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	feature := strings.TrimSpace(r.URL.Query().Get("feature"))
	if feature == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "feature is required"))
		return
	}

	decision, err := h.service.CheckAccess(ctx, userID, feature)
	if err != nil {
		h.logger.WarnContext(ctx, "feature check failed",
			"request_id", requestcontext.RequestID(ctx),
			"feature", feature,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, decision)
}
