package repository

import (
	"context"
	"testing"

	"github.com/andersonjr667/MeuControle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebtorRepo_CreateNormalizesStatus(t *testing.T) {
	repo := NewDebtorRepo(newTestSelector(t))
	ctx := context.Background()

	d, err := repo.Create(ctx, models.Debtor{UserID: "1", Name: "João", Amount: 100, Status: "pendente"})
	require.NoError(t, err)
	assert.Equal(t, models.DebtorPending, d.Status)

	_, err = repo.Create(ctx, models.Debtor{UserID: "1"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestDebtorRepo_FindByUserIDSortsByDueDate(t *testing.T) {
	repo := NewDebtorRepo(newTestSelector(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, models.Debtor{UserID: "1", Name: "b", DueDate: "2025-03-01"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Debtor{UserID: "1", Name: "a", DueDate: "2025-01-01"})
	require.NoError(t, err)

	debtors, err := repo.FindByUserID(ctx, "1")
	require.NoError(t, err)
	require.Len(t, debtors, 2)
	assert.Equal(t, "a", debtors[0].Name, "earliest due date first")
}

func TestDebtorRepo_DeleteCascadesHistory(t *testing.T) {
	sel := newTestSelector(t)
	debtors := NewDebtorRepo(sel)
	movements := NewMovementRepo(sel)
	ctx := context.Background()

	d, err := debtors.Create(ctx, models.Debtor{UserID: "1", Name: "João", Amount: 100})
	require.NoError(t, err)
	_, err = movements.Append(ctx, models.Movement{UserID: "1", DebtorID: d.ID, Movement: 100, Action: "lent"})
	require.NoError(t, err)
	_, err = movements.Append(ctx, models.Movement{UserID: "1", DebtorID: d.ID, Movement: -30, Action: "paid"})
	require.NoError(t, err)

	require.NoError(t, debtors.Delete(ctx, "1", d.ID))

	history, err := movements.ListByDebtor(ctx, "1", d.ID)
	require.NoError(t, err)
	assert.Empty(t, history, "history goes with the debtor")

	gone, err := debtors.FindByID(ctx, "1", d.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestDebtorRepo_ResetAmountsKeepsRecords(t *testing.T) {
	repo := NewDebtorRepo(newTestSelector(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, models.Debtor{UserID: "1", Name: "a", Amount: 100})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Debtor{UserID: "1", Name: "b", Amount: 250})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Debtor{UserID: "2", Name: "c", Amount: 300})
	require.NoError(t, err)

	reset, err := repo.ResetAmountsByUser(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 2, reset)

	mine, err := repo.FindByUserID(ctx, "1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, d := range mine {
		assert.Zero(t, d.Amount)
	}

	others, err := repo.FindByUserID(ctx, "2")
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, 300.0, others[0].Amount)
}
