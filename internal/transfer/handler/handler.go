package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pezkuwi/internal/transfer/models"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/platform/httputil"
	"pezkuwi/pkg/requestcontext"
)

type Service interface {
	Transfer(ctx context.Context, fromUserID id.UserID, toAddress string, amount id.Amount, token id.TokenType) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID id.UserID) ([]models.Transaction, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/transactions/{user_id}", h.HandleTransfer)
	r.Get("/transactions/{user_id}", h.HandleListTransactions)
}

// HandleTransfer handles POST /transactions/{user_id}.
func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID, err := httputil.UserIDParam(r, "user_id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[TransferRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	txn, err := h.service.Transfer(ctx, userID, req.ToAddress, req.amount, req.token)
	if err != nil {
		h.logger.WarnContext(ctx, "transfer rejected",
			"request_id", requestID,
			"user_id", userID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "transfer completed",
		"request_id", requestID,
		"transaction_id", txn.ID.String(),
		"token_type", string(txn.TokenType),
	)
	httputil.WriteJSON(w, http.StatusOK, TransferResponse{Success: true, Transaction: txn})
}

// HandleListTransactions handles GET /transactions/{user_id}.
func (h *Handler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, err := httputil.UserIDParam(r, "user_id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	txns, err := h.service.ListTransactions(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, txns)
}
