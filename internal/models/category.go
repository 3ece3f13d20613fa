package models

import "github.com/andersonjr667/MeuControle/internal/storage"

// Category is one named entry in a category collection (income categories,
// expense categories or payment methods).
type Category struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CategoryFromRecord reads a stored record into a Category.
func CategoryFromRecord(rec storage.Record) Category {
	return Category{
		ID:        storage.IDString(rec["id"]),
		UserID:    storage.IDString(rec["userId"]),
		Name:      AsString(rec["name"]),
		CreatedAt: AsString(rec["createdAt"]),
		UpdatedAt: AsString(rec["updatedAt"]),
	}
}
