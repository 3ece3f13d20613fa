package models

import "github.com/andersonjr667/MeuControle/internal/storage"

// User is an application account. PasswordHash never crosses the API
// boundary; handlers serialize users through PublicUser.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// PublicUser is the externally visible subset of a User.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public strips credentials for API responses.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserFromRecord reads a stored record into a User.
func UserFromRecord(rec storage.Record) User {
	return User{
		ID:           storage.IDString(rec["id"]),
		Name:         AsString(rec["name"]),
		Email:        AsString(rec["email"]),
		PasswordHash: AsString(rec["password"]),
		CreatedAt:    AsString(rec["createdAt"]),
		UpdatedAt:    AsString(rec["updatedAt"]),
	}
}

// Record converts the user to its stored shape.
func (u User) Record() storage.Record {
	rec := storage.Record{
		"name":     u.Name,
		"email":    u.Email,
		"password": u.PasswordHash,
	}
	if u.ID != "" {
		rec["id"] = u.ID
	}
	return rec
}
