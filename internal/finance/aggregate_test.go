package finance

import (
	"testing"

	"github.com/andersonjr667/MeuControle/internal/models"

	"github.com/stretchr/testify/assert"
)

func tx(typ, category string, amount float64, date string) models.Transaction {
	return models.Transaction{Type: typ, Category: category, Amount: amount, Date: date}
}

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals([]models.Transaction{
		tx("income", "Salário", 1000, "2025-01-05"),
		tx("expense", "Mercado", 300, "2025-01-10"),
		tx("expense", "Lazer", -50, "2025-01-12"), // legacy negative expense
	})

	assert.Equal(t, 1000.0, totals.TotalIncome)
	assert.Equal(t, 350.0, totals.TotalExpense)
	assert.Equal(t, 650.0, totals.Balance)
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.Zero(t, totals.TotalIncome)
	assert.Zero(t, totals.TotalExpense)
	assert.Zero(t, totals.Balance)
}

func TestCategoryDistribution(t *testing.T) {
	txs := []models.Transaction{
		tx("expense", "Mercado", 100, "2025-01-01"),
		tx("expense", "Mercado", 50, "2025-01-02"),
		tx("expense", "Lazer", -150, "2025-01-03"),
		tx("expense", "Transporte", 150, "2025-01-04"),
		tx("income", "Salário", 9999, "2025-01-05"),
	}

	dist := CategoryDistribution(txs, "expense")
	assert.Equal(t, []CategoryTotal{
		{Category: "Lazer", Total: 150},
		{Category: "Mercado", Total: 150}, // ties broken by name
		{Category: "Transporte", Total: 150},
	}, dist)
}

func TestCategoryDistribution_NormalizesLegacyTypeName(t *testing.T) {
	txs := []models.Transaction{tx("income", "Salário", 100, "2025-01-05")}

	dist := CategoryDistribution(txs, "entrada")
	assert.Equal(t, []CategoryTotal{{Category: "Salário", Total: 100}}, dist)
}

func TestMonthlySeries(t *testing.T) {
	txs := []models.Transaction{
		tx("income", "Salário", 1000, "2025-02-05"),
		tx("expense", "Mercado", 200, "2025-02-10"),
		tx("income", "Salário", 1000, "2025-01-05"),
		{Type: "expense", Category: "x", Amount: 10, Month: "2024-12"}, // legacy month tag wins
	}

	series := MonthlySeries(txs)
	assert.Equal(t, []MonthlyBucket{
		{Month: "2024-12", TotalExpense: 10, Balance: -10},
		{Month: "2025-01", TotalIncome: 1000, Balance: 1000},
		{Month: "2025-02", TotalIncome: 1000, TotalExpense: 200, Balance: 800},
	}, series)
}

func TestMonthlySeries_UnparseableDate(t *testing.T) {
	series := MonthlySeries([]models.Transaction{
		{Type: "income", Amount: 5, Date: "bad"},
	})
	assert.Equal(t, "unknown", series[0].Month)
}
