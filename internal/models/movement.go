package models

import (
	"strings"

	"github.com/andersonjr667/MeuControle/internal/storage"
)

// Movement actions. Legacy Portuguese tags (criado, atualizado, deletado,
// pagou, emprestou) normalize onto these.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionPaid    = "paid"
	ActionLent    = "lent"
)

// Movement is one debt-history entry: a signed adjustment to a debtor's
// running balance. AccumulatedBalance is the sum of all prior movements for
// the debtor, in insertion order, plus this one.
type Movement struct {
	ID                 string  `json:"id"`
	UserID             string  `json:"userId"`
	DebtorID           string  `json:"debtorId"`
	DebtorName         string  `json:"debtorName"`
	Amount             float64 `json:"amount"`
	Movement           float64 `json:"movement"`
	AccumulatedBalance float64 `json:"accumulatedBalance"`
	Action             string  `json:"action"`
	Description        string  `json:"description"`
	Date               string  `json:"date"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// NormalizeAction folds legacy action tags onto the canonical set. Empty
// input defaults to lent.
func NormalizeAction(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "emprestou", ActionLent:
		return ActionLent
	case "pagou", ActionPaid:
		return ActionPaid
	case "criado", ActionCreated:
		return ActionCreated
	case "atualizado", ActionUpdated:
		return ActionUpdated
	case "deletado", ActionDeleted:
		return ActionDeleted
	default:
		return strings.TrimSpace(s)
	}
}

// MovementFromRecord reads a stored record into a Movement.
func MovementFromRecord(rec storage.Record) Movement {
	return Movement{
		ID:                 storage.IDString(rec["id"]),
		UserID:             storage.IDString(rec["userId"]),
		DebtorID:           storage.IDString(rec["debtorId"]),
		DebtorName:         AsString(rec["debtorName"]),
		Amount:             AsFloat(rec["amount"]),
		Movement:           AsFloat(rec["movement"]),
		AccumulatedBalance: AsFloat(rec["accumulatedBalance"]),
		Action:             NormalizeAction(AsString(rec["action"])),
		Description:        AsString(rec["description"]),
		Date:               AsString(rec["date"]),
		CreatedAt:          AsString(rec["createdAt"]),
		UpdatedAt:          AsString(rec["updatedAt"]),
	}
}

// Record converts the movement to its stored shape.
func (m Movement) Record() storage.Record {
	rec := storage.Record{
		"userId":             m.UserID,
		"debtorId":           m.DebtorID,
		"debtorName":         m.DebtorName,
		"amount":             m.Amount,
		"movement":           m.Movement,
		"accumulatedBalance": m.AccumulatedBalance,
		"action":             NormalizeAction(m.Action),
		"description":        m.Description,
		"date":               m.Date,
	}
	if m.ID != "" {
		rec["id"] = m.ID
	}
	return rec
}
