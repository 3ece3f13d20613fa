package models

import (
	"strings"

	"github.com/andersonjr667/MeuControle/internal/storage"
)

// Canonical transaction types. The legacy frontends speak two vocabularies
// (income/expense and entrada/saida); everything is normalized to the
// English pair on the way in.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction is one income or expense record.
type Transaction struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	// Month is a legacy YYYY-MM tag some stored records carry; when empty
	// the month is sliced from Date instead.
	Month     string `json:"month,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// NormalizeTransactionType maps either vocabulary onto the canonical one.
// Unknown values pass through untouched; they contribute zero to balances.
func NormalizeTransactionType(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entrada", TypeIncome:
		return TypeIncome
	case "saida", "saída", TypeExpense:
		return TypeExpense
	default:
		return strings.TrimSpace(s)
	}
}

// TransactionFromRecord reads a stored record into a Transaction.
func TransactionFromRecord(rec storage.Record) Transaction {
	return Transaction{
		ID:          storage.IDString(rec["id"]),
		UserID:      storage.IDString(rec["userId"]),
		Type:        NormalizeTransactionType(AsString(rec["type"])),
		Category:    AsString(rec["category"]),
		Amount:      AsFloat(rec["amount"]),
		Description: AsString(rec["description"]),
		Date:        AsString(rec["date"]),
		Month:       AsString(rec["month"]),
		CreatedAt:   AsString(rec["createdAt"]),
		UpdatedAt:   AsString(rec["updatedAt"]),
	}
}

// Record converts the transaction to its stored shape. Server-assigned
// fields (id, timestamps) are included only when already set.
func (t Transaction) Record() storage.Record {
	rec := storage.Record{
		"userId":      t.UserID,
		"type":        NormalizeTransactionType(t.Type),
		"category":    t.Category,
		"amount":      t.Amount,
		"description": t.Description,
		"date":        t.Date,
	}
	if t.Month != "" {
		rec["month"] = t.Month
	}
	if t.ID != "" {
		rec["id"] = t.ID
	}
	return rec
}
