package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/andersonjr667/MeuControle/internal/models"
	"github.com/andersonjr667/MeuControle/internal/storage"
)

// UserRepo persists accounts. Users are not owner-scoped; lookups here are
// by id or email and the auth layer decides who may call them.
type UserRepo struct {
	store *storage.Selector
}

func NewUserRepo(store *storage.Selector) *UserRepo {
	return &UserRepo{store: store}
}

// Create validates and persists a new user. Emails are unique,
// case-insensitively.
func (r *UserRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.Name == "" {
		return models.User{}, invalid("name", "required")
	}
	if u.Email == "" {
		return models.User{}, invalid("email", "required")
	}
	if u.PasswordHash == "" {
		return models.User{}, invalid("password", "required")
	}

	existing, err := r.FindByEmail(ctx, u.Email)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, invalid("email", "already registered")
	}

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	stored, err := r.store.Active().Insert(ctx, storage.ColUsers, u.Record())
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return models.UserFromRecord(stored), nil
}

// FindByEmail returns the user with the given email, nil when absent.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	recs, err := r.store.Active().List(ctx, storage.ColUsers, nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for _, rec := range recs {
		if strings.ToLower(models.AsString(rec["email"])) == email {
			u := models.UserFromRecord(rec)
			return &u, nil
		}
	}
	return nil, nil
}

// FindByID returns the user with the given id, nil when absent.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	rec, err := r.store.Active().FindByID(ctx, storage.ColUsers, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	u := models.UserFromRecord(rec)
	return &u, nil
}

// UpdateName changes the display name.
func (r *UserRepo) UpdateName(ctx context.Context, id, name string) (*models.User, error) {
	if name == "" {
		return nil, invalid("name", "required")
	}
	rec, err := r.store.Active().Update(ctx, storage.ColUsers, id, storage.Record{"name": name})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	u := models.UserFromRecord(rec)
	return &u, nil
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if passwordHash == "" {
		return invalid("password", "required")
	}
	rec, err := r.store.Active().Update(ctx, storage.ColUsers, id, storage.Record{"password": passwordHash})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if rec == nil {
		return ErrNotFound
	}
	return nil
}
