package models

import "github.com/andersonjr667/MeuControle/internal/storage"

// Settings is the single per-user preferences record, including the named
// category lists and payment methods.
type Settings struct {
	ID                string   `json:"id"`
	UserID            string   `json:"userId"`
	Currency          string   `json:"currency"`
	Language          string   `json:"language"`
	Theme             string   `json:"theme"`
	Notifications     bool     `json:"notifications"`
	IncomeCategories  []string `json:"incomeCategories"`
	ExpenseCategories []string `json:"expenseCategories"`
	PaymentMethods    []string `json:"paymentMethods"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

// DefaultSettings returns the preferences a user starts with.
func DefaultSettings(userID string) Settings {
	return Settings{
		UserID:        userID,
		Currency:      "BRL",
		Language:      "pt-BR",
		Theme:         "light",
		Notifications: true,
		IncomeCategories: []string{
			"Salário", "Freelance", "Investimentos", "Outros",
		},
		ExpenseCategories: []string{
			"Alimentação", "Transporte", "Moradia", "Lazer",
			"Saúde", "Educação", "Investimentos", "Outros",
		},
		PaymentMethods: []string{
			"Dinheiro", "Pix", "Cartão de Crédito", "Cartão de Débito",
		},
	}
}

// SettingsFromRecord reads a stored record into Settings.
func SettingsFromRecord(rec storage.Record) Settings {
	return Settings{
		ID:                storage.IDString(rec["id"]),
		UserID:            storage.IDString(rec["userId"]),
		Currency:          AsString(rec["currency"]),
		Language:          AsString(rec["language"]),
		Theme:             AsString(rec["theme"]),
		Notifications:     AsBool(rec["notifications"]),
		IncomeCategories:  AsStringList(rec["incomeCategories"]),
		ExpenseCategories: AsStringList(rec["expenseCategories"]),
		PaymentMethods:    AsStringList(rec["paymentMethods"]),
		CreatedAt:         AsString(rec["createdAt"]),
		UpdatedAt:         AsString(rec["updatedAt"]),
	}
}

// Record converts the settings to their stored shape.
func (s Settings) Record() storage.Record {
	rec := storage.Record{
		"userId":            s.UserID,
		"currency":          s.Currency,
		"language":          s.Language,
		"theme":             s.Theme,
		"notifications":     s.Notifications,
		"incomeCategories":  toAnyList(s.IncomeCategories),
		"expenseCategories": toAnyList(s.ExpenseCategories),
		"paymentMethods":    toAnyList(s.PaymentMethods),
	}
	if s.ID != "" {
		rec["id"] = s.ID
	}
	return rec
}
