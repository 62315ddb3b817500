package store

import (
	"context"
	"sort"
	"sync"

	"pezkuwi/internal/transfer/models"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/platform/sentinel"
)

// InMemory keeps transactions in insertion order.
type InMemory struct {
	mu   sync.RWMutex
	txs  []models.Transaction
	seen map[id.TransactionID]struct{}
}

func NewInMemory() *InMemory {
	return &InMemory{seen: make(map[id.TransactionID]struct{})}
}

func (s *InMemory) Insert(_ context.Context, txn *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[txn.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.seen[txn.ID] = struct{}{}
	s.txs = append(s.txs, *txn)
	return nil
}

// ListByWallet returns transactions where wallet is sender or recipient,
// newest first.
func (s *InMemory) ListByWallet(_ context.Context, wallet id.WalletAddress, limit int) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Transaction
	for _, t := range s.txs {
		if t.FromAddress == wallet || t.ToAddress == wallet.String() {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
