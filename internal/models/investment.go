package models

import (
	"strings"

	"github.com/andersonjr667/MeuControle/internal/storage"
)

// Investment statuses; legacy ativo/encerrado normalize onto these.
const (
	InvestmentActive = "active"
	InvestmentClosed = "closed"
)

// Investment holds a position: Amount is the current value, InitialAmount
// the principal, ReturnRate the annual rate in percent.
type Investment struct {
	ID            string  `json:"id"`
	UserID        string  `json:"userId"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	InitialAmount float64 `json:"initialAmount"`
	ReturnRate    float64 `json:"returnRate"`
	CDIPercent    float64 `json:"cdiPercent"`
	Description   string  `json:"description"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// NormalizeInvestmentStatus folds both vocabularies onto the canonical set.
// Empty input defaults to active.
func NormalizeInvestmentStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ativo", InvestmentActive:
		return InvestmentActive
	case "encerrado", InvestmentClosed:
		return InvestmentClosed
	default:
		return strings.TrimSpace(s)
	}
}

// InvestmentFromRecord reads a stored record into an Investment.
func InvestmentFromRecord(rec storage.Record) Investment {
	return Investment{
		ID:            storage.IDString(rec["id"]),
		UserID:        storage.IDString(rec["userId"]),
		Name:          AsString(rec["name"]),
		Type:          AsString(rec["type"]),
		Amount:        AsFloat(rec["amount"]),
		InitialAmount: AsFloat(rec["initialAmount"]),
		ReturnRate:    AsFloat(rec["returnRate"]),
		CDIPercent:    AsFloat(rec["cdiPercent"]),
		Description:   AsString(rec["description"]),
		StartDate:     AsString(rec["startDate"]),
		EndDate:       AsString(rec["endDate"]),
		Status:        NormalizeInvestmentStatus(AsString(rec["status"])),
		CreatedAt:     AsString(rec["createdAt"]),
		UpdatedAt:     AsString(rec["updatedAt"]),
	}
}

// Record converts the investment to its stored shape.
func (i Investment) Record() storage.Record {
	rec := storage.Record{
		"userId":        i.UserID,
		"name":          i.Name,
		"type":          i.Type,
		"amount":        i.Amount,
		"initialAmount": i.InitialAmount,
		"returnRate":    i.ReturnRate,
		"cdiPercent":    i.CDIPercent,
		"description":   i.Description,
		"startDate":     i.StartDate,
		"endDate":       i.EndDate,
		"status":        NormalizeInvestmentStatus(i.Status),
	}
	if i.ID != "" {
		rec["id"] = i.ID
	}
	return rec
}
