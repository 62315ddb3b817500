package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pezkuwi/internal/account/models"
	"pezkuwi/internal/account/service"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/platform/httputil"
	"pezkuwi/pkg/requestcontext"
)

// Service defines the account operations the handler depends on.
type Service interface {
	CreateAccount(ctx context.Context, email *string, language string) (*models.User, error)
	Login(ctx context.Context, wallet id.WalletAddress) (*models.User, error)
	GetAccount(ctx context.Context, userID id.UserID) (*models.User, error)
	GetBalances(ctx context.Context, userID id.UserID) (*service.Wallet, error)
}

// Handler wires signup, login and account lookups.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts account endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/signup", h.HandleSignup)
	r.Post("/auth/login", h.HandleLogin)
	r.Get("/user/{user_id}", h.HandleGetUser)
	r.Get("/user/{user_id}/wallet", h.HandleGetWallet)
}

// HandleSignup handles POST /auth/signup.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeOptionalAndPrepare[SignupRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	user, err := h.service.CreateAccount(ctx, req.Email, req.PreferredLanguage)
	if err != nil {
		h.logger.ErrorContext(ctx, "signup failed", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "account created",
		"request_id", requestID,
		"user_id", user.ID.String(),
	)
	httputil.WriteJSON(w, http.StatusOK, SignupResponse{
		Success:       true,
		UserID:        user.ID,
		WalletAddress: user.WalletAddress,
		Message:       "Account created successfully",
	})
}

// HandleLogin handles POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	user, err := h.service.Login(ctx, req.Wallet())
	if err != nil {
		h.logger.WarnContext(ctx, "login failed", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LoginResponse{Success: true, User: user})
}

// HandleGetUser handles GET /user/{user_id}.
func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := httputil.UserIDParam(r, "user_id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	user, err := h.service.GetAccount(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

// HandleGetWallet handles GET /user/{user_id}/wallet.
func (h *Handler) HandleGetWallet(w http.ResponseWriter, r *http.Request) {
	userID, err := httputil.UserIDParam(r, "user_id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	wallet, err := h.service.GetBalances(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toWalletResponse(wallet))
}
