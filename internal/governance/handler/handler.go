package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pezkuwi/internal/governance/models"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/platform/httputil"
	"pezkuwi/pkg/requestcontext"
)

type Service interface {
	ListActiveProposals(ctx context.Context) ([]models.Proposal, error)
	CastVote(ctx context.Context, userID id.UserID, proposalID id.ProposalID, direction string) (*models.Vote, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/governance/proposals", h.HandleListProposals)
	r.Post("/governance/vote/{user_id}", h.HandleVote)
}

// HandleListProposals handles GET /governance/proposals.
func (h *Handler) HandleListProposals(w http.ResponseWriter, r *http.Request) {
	proposals, err := h.service.ListActiveProposals(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, proposals)
}

// HandleVote handles POST /governance/vote/{user_id}. proposal_id and
// vote_type come from the query string or, failing that, a JSON body.
func (h *Handler) HandleVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID, err := httputil.UserIDParam(r, "user_id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req *VoteRequest
	if q := r.URL.Query(); q.Has("proposal_id") {
		req = &VoteRequest{ProposalID: q.Get("proposal_id"), VoteType: q.Get("vote_type")}
		if err := req.Validate(); err != nil {
			httputil.WriteError(w, err)
			return
		}
	} else {
		var ok bool
		req, ok = httputil.DecodeOptionalAndPrepare[VoteRequest](w, r, h.logger, ctx, requestID)
		if !ok {
			return
		}
	}

	vote, err := h.service.CastVote(ctx, userID, req.proposalID, req.VoteType)
	if err != nil {
		h.logger.WarnContext(ctx, "vote rejected",
			"request_id", requestID,
			"user_id", userID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "vote cast",
		"request_id", requestID,
		"vote_id", vote.ID.String(),
		"proposal_id", vote.ProposalID.String(),
	)
	httputil.WriteJSON(w, http.StatusOK, VoteResponse{Success: true, Vote: vote})
}
