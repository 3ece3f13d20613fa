package repository

import (
	"context"
	"testing"

	"github.com/andersonjr667/MeuControle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovementRepo_AccumulatedBalance(t *testing.T) {
	repo := NewMovementRepo(newTestSelector(t))
	ctx := context.Background()

	first, err := repo.Append(ctx, models.Movement{UserID: "1", DebtorID: "d1", Movement: 100, Action: "lent"})
	require.NoError(t, err)
	assert.Equal(t, 100.0, first.AccumulatedBalance)

	second, err := repo.Append(ctx, models.Movement{UserID: "1", DebtorID: "d1", Movement: -30, Action: "paid"})
	require.NoError(t, err)
	assert.Equal(t, 70.0, second.AccumulatedBalance)

	balance, err := repo.Balance(ctx, "1", "d1")
	require.NoError(t, err)
	assert.Equal(t, 70.0, balance)
}

func TestMovementRepo_BalancesRederivedAfterDelete(t *testing.T) {
	repo := NewMovementRepo(newTestSelector(t))
	ctx := context.Background()

	first, err := repo.Append(ctx, models.Movement{UserID: "1", DebtorID: "d1", Movement: 100, Action: "lent"})
	require.NoError(t, err)
	_, err = repo.Append(ctx, models.Movement{UserID: "1", DebtorID: "d1", Movement: -30, Action: "paid"})
	require.NoError(t, err)

	// removing the first entry invalidates the stored running balance of
	// the second; reads must recompute it
	require.NoError(t, repo.Delete(ctx, "1", first.ID))

	history, err := repo.ListByDebtor(ctx, "1", "d1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, -30.0, history[0].AccumulatedBalance)
}

func TestMovementRepo_DefaultsAndNormalization(t *testing.T) {
	repo := NewMovementRepo(newTestSelector(t))
	ctx := context.Background()

	m, err := repo.Append(ctx, models.Movement{UserID: "1", DebtorID: "d1", Movement: 10, Action: "pagou"})
	require.NoError(t, err)
	assert.Equal(t, models.ActionPaid, m.Action)
	assert.NotEmpty(t, m.Date, "missing date defaults to now")

	_, err = repo.Append(ctx, models.Movement{UserID: "1", Movement: 10})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "debtorId", verr.Field)
}

func TestMovementRepo_DeleteChecksOwnership(t *testing.T) {
	repo := NewMovementRepo(newTestSelector(t))
	ctx := context.Background()

	m, err := repo.Append(ctx, models.Movement{UserID: "1", DebtorID: "d1", Movement: 10})
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, "2", m.ID), ErrPermissionDenied)
	assert.ErrorIs(t, repo.Delete(ctx, "1", "999"), ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "1", m.ID))
}
