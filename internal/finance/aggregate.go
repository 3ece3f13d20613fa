// Package finance holds pure, backend-agnostic computations over
// repository output: totals, distributions, monthly series and the
// compound-growth simulation.
package finance

import (
	"math"
	"sort"

	"github.com/andersonjr667/MeuControle/internal/models"
)

// Totals summarizes a transaction set. Expense amounts are normalized to
// their absolute value, since some legacy records stored them negative.
type Totals struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
}

// ComputeTotals sums income and expense and their difference.
func ComputeTotals(txs []models.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case models.TypeIncome:
			t.TotalIncome += tx.Amount
		case models.TypeExpense:
			t.TotalExpense += math.Abs(tx.Amount)
		}
	}
	t.Balance = t.TotalIncome - t.TotalExpense
	return t
}

// CategoryTotal is one slice of a category distribution.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// CategoryDistribution groups transactions of one type by category,
// summing amounts. Expense amounts contribute their absolute value so both
// sign conventions land in the same bucket. Results are ordered by total
// descending, then name.
func CategoryDistribution(txs []models.Transaction, txType string) []CategoryTotal {
	txType = models.NormalizeTransactionType(txType)
	sums := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type != txType {
			continue
		}
		amt := tx.Amount
		if txType == models.TypeExpense {
			amt = math.Abs(amt)
		}
		sums[tx.Category] += amt
	}

	out := make([]CategoryTotal, 0, len(sums))
	for cat, total := range sums {
		out = append(out, CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// MonthlyBucket is one month of aggregated income and expense.
type MonthlyBucket struct {
	Month        string  `json:"month"`
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
}

// MonthlySeries buckets transactions by YYYY-MM, taking the key from the
// stored month tag when present and from the date prefix otherwise.
// Buckets come back sorted ascending by key.
func MonthlySeries(txs []models.Transaction) []MonthlyBucket {
	buckets := make(map[string]*MonthlyBucket)
	for _, tx := range txs {
		key := monthKey(tx)
		b, ok := buckets[key]
		if !ok {
			b = &MonthlyBucket{Month: key}
			buckets[key] = b
		}
		switch tx.Type {
		case models.TypeIncome:
			b.TotalIncome += tx.Amount
		case models.TypeExpense:
			b.TotalExpense += math.Abs(tx.Amount)
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthlyBucket, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		b.Balance = b.TotalIncome - b.TotalExpense
		out = append(out, *b)
	}
	return out
}

func monthKey(tx models.Transaction) string {
	if tx.Month != "" {
		return tx.Month
	}
	if len(tx.Date) >= 7 {
		return tx.Date[:7]
	}
	return "unknown"
}
