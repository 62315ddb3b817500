package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"pezkuwi/internal/governance/models"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/platform/sentinel"
)

type ballotKey struct {
	user     id.UserID
	proposal id.ProposalID
}

// InMemory holds proposals and votes for development and tests. One vote per
// user and proposal is enforced by the ballot key.
type InMemory struct {
	mu        sync.RWMutex
	proposals map[id.ProposalID]*models.Proposal
	votes     map[ballotKey]models.Vote
}

func NewInMemory() *InMemory {
	return &InMemory{
		proposals: make(map[id.ProposalID]*models.Proposal),
		votes:     make(map[ballotKey]models.Vote),
	}
}

// EnsureProposal inserts p unless a proposal with its id exists.
func (s *InMemory) EnsureProposal(_ context.Context, p *models.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.proposals[p.ID]; !ok {
		c := *p
		s.proposals[p.ID] = &c
	}
	return nil
}

// ListActive returns active proposals, soonest closing first.
func (s *InMemory) ListActive(_ context.Context, limit int) ([]models.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Proposal, 0, len(s.proposals))
	for _, p := range s.proposals {
		if p.Status == models.StatusActive {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndsAt.Before(out[j].EndsAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemory) FindProposal(_ context.Context, proposalID id.ProposalID) (*models.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.proposals[proposalID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (s *InMemory) InsertVote(_ context.Context, vote *models.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.proposals[vote.ProposalID]; !ok {
		return sentinel.ErrNotFound
	}
	key := ballotKey{user: vote.UserID, proposal: vote.ProposalID}
	if _, ok := s.votes[key]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.votes[key] = *vote
	return nil
}

// AddVotes adds power to the proposal's tally while it is active.
func (s *InMemory) AddVotes(_ context.Context, proposalID id.ProposalID, vote models.VoteType, power int) (*models.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.proposals[proposalID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if p.Status != models.StatusActive {
		return nil, sentinel.ErrInvalidState
	}
	p.Tally(vote, power)
	c := *p
	return &c, nil
}

func (s *InMemory) CountVotesByUser(_ context.Context, userID id.UserID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for key := range s.votes {
		if key.user == userID {
			n++
		}
	}
	return n, nil
}

// ResolveExpired closes active proposals whose voting window ended at or
// before now and returns them with their final status.
func (s *InMemory) ResolveExpired(_ context.Context, now time.Time, limit int) ([]models.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var expired []*models.Proposal
	for _, p := range s.proposals {
		if p.Status == models.StatusActive && !p.EndsAt.After(now) {
			expired = append(expired, p)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].EndsAt.Before(expired[j].EndsAt) })
	if limit > 0 && len(expired) > limit {
		expired = expired[:limit]
	}
	out := make([]models.Proposal, 0, len(expired))
	for _, p := range expired {
		p.Status = p.Outcome()
		out = append(out, *p)
	}
	return out, nil
}
