package store

import (
	"context"
	"sync"
	"time"

	"pezkuwi/internal/account/models"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/platform/sentinel"
)

// InMemory is a map-backed account store for development and tests.
type InMemory struct {
	mu       sync.RWMutex
	users    map[id.UserID]*models.User
	byWallet map[id.WalletAddress]id.UserID
}

func NewInMemory() *InMemory {
	return &InMemory{
		users:    make(map[id.UserID]*models.User),
		byWallet: make(map[id.WalletAddress]id.UserID),
	}
}

func (s *InMemory) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	if _, exists := s.byWallet[user.WalletAddress]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.users[user.ID] = copyUser(user)
	s.byWallet[user.WalletAddress] = user.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[userID]; ok {
		return copyUser(u), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindByWallet(_ context.Context, wallet id.WalletAddress) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if userID, ok := s.byWallet[wallet]; ok {
		return copyUser(s.users[userID]), nil
	}
	return nil, sentinel.ErrNotFound
}

// Debit decrements the balance iff it covers amount.
func (s *InMemory) Debit(_ context.Context, userID id.UserID, token id.TokenType, amount id.Amount, now time.Time) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if !u.Debit(token, amount, now) {
		return nil, sentinel.ErrInsufficientFunds
	}
	return copyUser(u), nil
}

// Execute runs validate and mutate under the store lock. The mutation is
// applied to a copy and committed only if mutate returns nil.
func (s *InMemory) Execute(_ context.Context, userID id.UserID, mutate func(*models.User) error) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	working := copyUser(u)
	if err := mutate(working); err != nil {
		return nil, err
	}
	s.users[userID] = working
	return copyUser(working), nil
}

func copyUser(u *models.User) *models.User {
	c := *u
	if u.Email != nil {
		e := *u.Email
		c.Email = &e
	}
	if u.KYCHash != nil {
		h := *u.KYCHash
		c.KYCHash = &h
	}
	return &c
}
