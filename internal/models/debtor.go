package models

import (
	"strings"

	"github.com/andersonjr667/MeuControle/internal/storage"
)

// Debtor statuses, canonical English. The legacy free-form pendente/pago
// values are folded in on normalization.
const (
	DebtorPending = "pending"
	DebtorPaid    = "paid"
	DebtorOverdue = "overdue"
)

// Debtor is a third party with a running balance. Amount is signed: a
// negative value means money the user owes the debtor.
type Debtor struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	DueDate     string  `json:"dueDate"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// NormalizeDebtorStatus folds both vocabularies onto the canonical set.
// Empty input defaults to pending.
func NormalizeDebtorStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pendente", DebtorPending:
		return DebtorPending
	case "pago", DebtorPaid:
		return DebtorPaid
	case "vencido", "atrasado", DebtorOverdue:
		return DebtorOverdue
	default:
		return strings.TrimSpace(s)
	}
}

// DebtorFromRecord reads a stored record into a Debtor.
func DebtorFromRecord(rec storage.Record) Debtor {
	return Debtor{
		ID:          storage.IDString(rec["id"]),
		UserID:      storage.IDString(rec["userId"]),
		Name:        AsString(rec["name"]),
		Amount:      AsFloat(rec["amount"]),
		Description: AsString(rec["description"]),
		DueDate:     AsString(rec["dueDate"]),
		Status:      NormalizeDebtorStatus(AsString(rec["status"])),
		CreatedAt:   AsString(rec["createdAt"]),
		UpdatedAt:   AsString(rec["updatedAt"]),
	}
}

// Record converts the debtor to its stored shape.
func (d Debtor) Record() storage.Record {
	rec := storage.Record{
		"userId":      d.UserID,
		"name":        d.Name,
		"amount":      d.Amount,
		"description": d.Description,
		"dueDate":     d.DueDate,
		"status":      NormalizeDebtorStatus(d.Status),
	}
	if d.ID != "" {
		rec["id"] = d.ID
	}
	return rec
}
