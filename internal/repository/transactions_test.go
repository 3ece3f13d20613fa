package repository

import (
	"context"
	"testing"

	"github.com/andersonjr667/MeuControle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepo_CreateValidatesAndDefaults(t *testing.T) {
	repo := NewTransactionRepo(newTestSelector(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, models.Transaction{Type: "income", Amount: 10})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "userId", verr.Field)

	_, err = repo.Create(ctx, models.Transaction{UserID: "1", Type: "transfer", Amount: 10})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Field)

	// legacy Portuguese type names normalize on write
	tx, err := repo.Create(ctx, models.Transaction{UserID: "1", Type: "entrada", Category: "Salário", Amount: 100})
	require.NoError(t, err)
	assert.Equal(t, models.TypeIncome, tx.Type)
	assert.NotEmpty(t, tx.Date, "missing date defaults to now")
	assert.NotEmpty(t, tx.ID)
}

func TestTransactionRepo_CalculateBalance(t *testing.T) {
	repo := NewTransactionRepo(newTestSelector(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, models.Transaction{UserID: "1", Type: "income", Category: "Salário", Amount: 100})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Transaction{UserID: "1", Type: "expense", Category: "Mercado", Amount: 40})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Transaction{UserID: "2", Type: "income", Category: "Salário", Amount: 999})
	require.NoError(t, err)

	balance, err := repo.CalculateBalance(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 60.0, balance)
}

func TestTransactionRepo_FindByUserIDSortsAndFilters(t *testing.T) {
	repo := NewTransactionRepo(newTestSelector(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, models.Transaction{UserID: "1", Type: "income", Category: "Salário", Amount: 1, Date: "2025-01-10"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Transaction{UserID: "1", Type: "expense", Category: "Mercado", Amount: 2, Date: "2025-03-05"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Transaction{UserID: "1", Type: "expense", Category: "Lazer", Amount: 3, Date: "2025-02-01"})
	require.NoError(t, err)

	all, err := repo.FindByUserID(ctx, "1", nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-03-05", all[0].Date, "newest first")
	assert.Equal(t, "2025-01-10", all[2].Date)

	expenses, err := repo.FindByUserID(ctx, "1", &TransactionFilter{Type: "expense"})
	require.NoError(t, err)
	assert.Len(t, expenses, 2)

	ranged, err := repo.FindByUserID(ctx, "1", &TransactionFilter{StartDate: "2025-02-01", EndDate: "2025-02-28"})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "Lazer", ranged[0].Category)
}

func TestTransactionRepo_OwnershipChecks(t *testing.T) {
	repo := NewTransactionRepo(newTestSelector(t))
	ctx := context.Background()

	tx, err := repo.Create(ctx, models.Transaction{UserID: "1", Type: "income", Category: "Salário", Amount: 10})
	require.NoError(t, err)

	_, err = repo.FindByID(ctx, "2", tx.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = repo.Delete(ctx, "2", tx.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	missing, err := repo.FindByID(ctx, "1", "999")
	require.NoError(t, err)
	assert.Nil(t, missing, "absent record is nil, not an error")
}

func TestTransactionRepo_UpdatePatchesOnlyGivenFields(t *testing.T) {
	repo := NewTransactionRepo(newTestSelector(t))
	ctx := context.Background()

	tx, err := repo.Create(ctx, models.Transaction{
		UserID: "1", Type: "expense", Category: "Mercado", Amount: 50,
		Description: "compras", Date: "2025-01-01",
	})
	require.NoError(t, err)

	amount := 75.0
	updated, err := repo.Update(ctx, "1", tx.ID, TransactionPatch{Amount: &amount})
	require.NoError(t, err)

	assert.Equal(t, 75.0, updated.Amount)
	assert.Equal(t, "Mercado", updated.Category)
	assert.Equal(t, "compras", updated.Description)
	assert.Equal(t, "2025-01-01", updated.Date)

	_, err = repo.Update(ctx, "1", "999", TransactionPatch{Amount: &amount})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransactionRepo_DeleteManyByUser(t *testing.T) {
	repo := NewTransactionRepo(newTestSelector(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, models.Transaction{UserID: "1", Type: "income", Category: "x", Amount: 1})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, models.Transaction{UserID: "2", Type: "income", Category: "x", Amount: 1})
	require.NoError(t, err)

	removed, err := repo.DeleteManyByUser(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	others, err := repo.FindByUserID(ctx, "2", nil)
	require.NoError(t, err)
	assert.Len(t, others, 1, "other users' data survives")
}
