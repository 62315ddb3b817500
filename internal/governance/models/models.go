package models

import (
	"strings"
	"time"

	id "pezkuwi/pkg/domain"
	dErrors "pezkuwi/pkg/domain-errors"
)

type Category string

const (
	CategoryGovernance Category = "governance"
	CategoryTreasury   Category = "treasury"
	CategoryTechnical  Category = "technical"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusPassed   Status = "passed"
	StatusRejected Status = "rejected"
)

type VoteType string

const (
	VoteFor     VoteType = "for"
	VoteAgainst VoteType = "against"
)

// ListLimit caps proposal listings.
const ListLimit = 100

func ParseVoteType(s string) (VoteType, error) {
	switch VoteType(strings.ToLower(strings.TrimSpace(s))) {
	case VoteFor:
		return VoteFor, nil
	case VoteAgainst:
		return VoteAgainst, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "Invalid vote type")
}

// Proposal is a motion citizens vote on. Vote totals are sums of voting
// power and only ever grow.
type Proposal struct {
	ID           id.ProposalID `json:"proposal_id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Category     Category      `json:"category"`
	VotesFor     int64         `json:"votes_for"`
	VotesAgainst int64         `json:"votes_against"`
	Status       Status        `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	EndsAt       time.Time     `json:"ends_at"`
}

// OpenAt reports whether the proposal still accepts votes at t.
func (p *Proposal) OpenAt(t time.Time) bool {
	return p.Status == StatusActive && t.Before(p.EndsAt)
}

// Tally adds power to the side named by vote.
func (p *Proposal) Tally(vote VoteType, power int) {
	if vote == VoteFor {
		p.VotesFor += int64(power)
	} else {
		p.VotesAgainst += int64(power)
	}
}

// Outcome is the status a closed proposal resolves to. Ties reject.
func (p *Proposal) Outcome() Status {
	if p.VotesFor > p.VotesAgainst {
		return StatusPassed
	}
	return StatusRejected
}

// Vote is one citizen's ballot. VotingPower is the trust score at cast time.
type Vote struct {
	ID          id.VoteID     `json:"vote_id"`
	ProposalID  id.ProposalID `json:"proposal_id"`
	UserID      id.UserID     `json:"user_id"`
	VoteType    VoteType      `json:"vote_type"`
	VotingPower int           `json:"voting_power"`
	Timestamp   time.Time     `json:"timestamp"`
}
