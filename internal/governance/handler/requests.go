package handler

import (
	"strings"

	"pezkuwi/internal/governance/models"
	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
)

type VoteRequest struct {
	ProposalID string `json:"proposal_id"`
	VoteType   string `json:"vote_type"`

	proposalID id.ProposalID
}

// Validate requires a proposal id. A malformed id cannot name a proposal, so
// it is passed on as the nil id and reported as not found by the service,
// after the voter checks.
func (r *VoteRequest) Validate() error {
	r.ProposalID = strings.TrimSpace(r.ProposalID)
	if r.ProposalID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "proposal_id is required")
	}
	if parsed, err := id.ParseProposalID(r.ProposalID); err == nil {
		r.proposalID = parsed
	}
	return nil
}

type VoteResponse struct {
	Success bool         `json:"success"`
	Vote    *models.Vote `json:"vote"`
}
