package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepo_CreatesDefaultsOnFirstRead(t *testing.T) {
	repo := NewSettingsRepo(newTestSelector(t))
	ctx := context.Background()

	s, err := repo.GetByUser(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "BRL", s.Currency)
	assert.Equal(t, "pt-BR", s.Language)
	assert.True(t, s.Notifications)
	assert.NotEmpty(t, s.ID, "defaults are persisted with a generated id")
	assert.Contains(t, s.ExpenseCategories, "Alimentação")

	// second read returns the persisted record, not new defaults
	again, err := repo.GetByUser(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, s.ID, again.ID)
}

func TestSettingsRepo_UpdatePatchesOnlyGivenFields(t *testing.T) {
	repo := NewSettingsRepo(newTestSelector(t))
	ctx := context.Background()

	theme := "dark"
	methods := []string{"Pix"}
	s, err := repo.UpdateByUser(ctx, "1", SettingsPatch{Theme: &theme, PaymentMethods: &methods})
	require.NoError(t, err)

	assert.Equal(t, "dark", s.Theme)
	assert.Equal(t, []string{"Pix"}, s.PaymentMethods)
	assert.Equal(t, "BRL", s.Currency, "untouched fields keep their defaults")
}

func TestCategoryRepo_RestoreDefaultsSkipsExisting(t *testing.T) {
	repo := NewCategoryRepo(newTestSelector(t))
	ctx := context.Background()

	// pre-existing category with different casing must not be duplicated
	_, err := repo.Create(ctx, "1", "income", "salário")
	require.NoError(t, err)

	created, err := repo.RestoreDefaults(ctx, "1")
	require.NoError(t, err)

	for _, c := range created["income"] {
		assert.NotEqual(t, "Salário", c.Name, "existing name must not be re-seeded")
	}

	income, err := repo.List(ctx, "1", "income")
	require.NoError(t, err)
	names := make(map[string]int)
	for _, c := range income {
		names[c.Name]++
	}
	assert.Equal(t, 1, names["salário"])
	assert.Zero(t, names["Salário"])
	assert.Equal(t, 1, names["Freelance"])
}

func TestCategoryRepo_KindValidation(t *testing.T) {
	repo := NewCategoryRepo(newTestSelector(t))
	ctx := context.Background()

	assert.True(t, ValidKind("income"))
	assert.True(t, ValidKind("expense"))
	assert.True(t, ValidKind("payment"))
	assert.False(t, ValidKind("ledger"))

	_, err := repo.List(ctx, "1", "ledger")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCategoryRepo_OwnershipOnRename(t *testing.T) {
	repo := NewCategoryRepo(newTestSelector(t))
	ctx := context.Background()

	c, err := repo.Create(ctx, "1", "expense", "Mercado")
	require.NoError(t, err)

	_, err = repo.Rename(ctx, "2", "expense", c.ID, "Outro")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	renamed, err := repo.Rename(ctx, "1", "expense", c.ID, "Supermercado")
	require.NoError(t, err)
	assert.Equal(t, "Supermercado", renamed.Name)
}
