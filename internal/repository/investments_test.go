package repository

import (
	"context"
	"testing"

	"github.com/andersonjr667/MeuControle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvestmentRepo_CreateDefaults(t *testing.T) {
	repo := NewInvestmentRepo(newTestSelector(t))
	ctx := context.Background()

	inv, err := repo.Create(ctx, models.Investment{UserID: "1", Name: "CDB", Amount: 1000})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, inv.InitialAmount, "initial amount defaults to current amount")
	assert.Equal(t, models.InvestmentActive, inv.Status)
	assert.NotEmpty(t, inv.StartDate)
}

func TestInvestmentRepo_TotalIgnoresClosedPositions(t *testing.T) {
	repo := NewInvestmentRepo(newTestSelector(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, models.Investment{UserID: "1", Name: "CDB", Amount: 1000})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Investment{UserID: "1", Name: "Tesouro", Amount: 500})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Investment{UserID: "1", Name: "Antigo", Amount: 9999, Status: "encerrado"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Investment{UserID: "2", Name: "Alheio", Amount: 777})
	require.NoError(t, err)

	total, err := repo.CalculateTotalInvested(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, total)
}

func TestInvestmentRepo_SortsByStartDateDesc(t *testing.T) {
	repo := NewInvestmentRepo(newTestSelector(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, models.Investment{UserID: "1", Name: "old", Amount: 1, StartDate: "2024-01-01"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Investment{UserID: "1", Name: "new", Amount: 1, StartDate: "2025-06-01"})
	require.NoError(t, err)

	list, err := repo.FindByUserID(ctx, "1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].Name)
}

func TestInvestmentRepo_UpdateStatusNormalizes(t *testing.T) {
	repo := NewInvestmentRepo(newTestSelector(t))
	ctx := context.Background()

	inv, err := repo.Create(ctx, models.Investment{UserID: "1", Name: "CDB", Amount: 100})
	require.NoError(t, err)

	status := "encerrado"
	updated, err := repo.Update(ctx, "1", inv.ID, InvestmentPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.InvestmentClosed, updated.Status)
}
