package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pezkuwi/internal/verification/models"
	"pezkuwi/internal/verification/service"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/platform/httputil"
	"pezkuwi/pkg/requestcontext"
)

type Service interface {
	SubmitVerification(ctx context.Context, userID id.UserID, claim models.Claim) (*service.Result, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/kyc/submit/{user_id}", h.HandleSubmit)
}

// SubmitRequest carries the claim fields. Unknown fields are ignored.
type SubmitRequest struct {
	models.Claim
}

func (r *SubmitRequest) Validate() error {
	r.Normalize()
	return r.Claim.Validate()
}

type SubmitResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	KYCHash       string `json:"kyc_hash"`
	NewTrustScore int    `json:"new_trust_score"`
}

// HandleSubmit handles POST /kyc/submit/{user_id}.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID, err := httputil.UserIDParam(r, "user_id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[SubmitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.SubmitVerification(ctx, userID, req.Claim)
	if err != nil {
		h.logger.WarnContext(ctx, "verification failed",
			"request_id", requestID,
			"user_id", userID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "citizenship approved",
		"request_id", requestID,
		"user_id", userID.String(),
	)
	httputil.WriteJSON(w, http.StatusOK, SubmitResponse{
		Success:       true,
		Message:       "Citizenship approved",
		KYCHash:       res.Fingerprint,
		NewTrustScore: res.NewTrustScore,
	})
}
