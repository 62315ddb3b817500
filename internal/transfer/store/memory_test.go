package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pezkuwi/internal/transfer/models"
	id "pezkuwi/pkg/domain"
	"pezkuwi/pkg/platform/sentinel"
)

func TestInMemoryListByWallet(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	alice := id.WalletAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	bob := id.WalletAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	first := models.NewTransaction(alice, bob.String(), id.Units(1), id.TokenHEZ, base)
	second := models.NewTransaction(bob, alice.String(), id.Units(2), id.TokenPEZ, base.Add(time.Minute))
	third := models.NewTransaction(alice, "somewhere", id.Units(3), id.TokenHEZ, base.Add(2*time.Minute))
	for _, txn := range []*models.Transaction{first, second, third} {
		require.NoError(t, s.Insert(ctx, txn))
	}

	got, err := s.ListByWallet(ctx, alice, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, third.ID, got[0].ID)
	assert.Equal(t, first.ID, got[2].ID)

	got, err = s.ListByWallet(ctx, bob, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, second.ID, got[0].ID)

	require.ErrorIs(t, s.Insert(ctx, first), sentinel.ErrAlreadyUsed)
}
