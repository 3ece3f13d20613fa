package repository

import (
	"context"
	"fmt"

	"github.com/andersonjr667/MeuControle/internal/models"
	"github.com/andersonjr667/MeuControle/internal/storage"
)

// SettingsRepo persists the single per-user preferences record.
type SettingsRepo struct {
	store *storage.Selector
}

func NewSettingsRepo(store *storage.Selector) *SettingsRepo {
	return &SettingsRepo{store: store}
}

// SettingsPatch is a partial update; nil fields are left untouched.
type SettingsPatch struct {
	Currency          *string   `json:"currency"`
	Language          *string   `json:"language"`
	Theme             *string   `json:"theme"`
	Notifications     *bool     `json:"notifications"`
	IncomeCategories  *[]string `json:"incomeCategories"`
	ExpenseCategories *[]string `json:"expenseCategories"`
	PaymentMethods    *[]string `json:"paymentMethods"`
}

// GetByUser returns the user's settings, creating and persisting the
// defaults on first read.
func (r *SettingsRepo) GetByUser(ctx context.Context, userID string) (models.Settings, error) {
	if userID == "" {
		return models.Settings{}, invalid("userId", "required")
	}
	recs, err := r.store.Active().List(ctx, storage.ColSettings, storage.Filter{"userId": userID})
	if err != nil {
		return models.Settings{}, fmt.Errorf("list settings: %w", err)
	}
	if len(recs) > 0 {
		return models.SettingsFromRecord(recs[0]), nil
	}

	// first read: persist the defaults with a generated string id
	rec := models.DefaultSettings(userID).Record()
	rec["id"] = storage.GenerateID()
	stored, err := r.store.Active().Insert(ctx, storage.ColSettings, rec)
	if err != nil {
		return models.Settings{}, fmt.Errorf("create default settings: %w", err)
	}
	return models.SettingsFromRecord(stored), nil
}

// UpdateByUser overlays the patch onto the user's settings, creating the
// defaults first when none exist yet.
func (r *SettingsRepo) UpdateByUser(ctx context.Context, userID string, p SettingsPatch) (models.Settings, error) {
	current, err := r.GetByUser(ctx, userID)
	if err != nil {
		return models.Settings{}, err
	}

	patch := storage.Record{}
	if p.Currency != nil {
		patch["currency"] = *p.Currency
	}
	if p.Language != nil {
		patch["language"] = *p.Language
	}
	if p.Theme != nil {
		patch["theme"] = *p.Theme
	}
	if p.Notifications != nil {
		patch["notifications"] = *p.Notifications
	}
	if p.IncomeCategories != nil {
		patch["incomeCategories"] = *p.IncomeCategories
	}
	if p.ExpenseCategories != nil {
		patch["expenseCategories"] = *p.ExpenseCategories
	}
	if p.PaymentMethods != nil {
		patch["paymentMethods"] = *p.PaymentMethods
	}

	rec, err := r.store.Active().Update(ctx, storage.ColSettings, current.ID, patch)
	if err != nil {
		return models.Settings{}, fmt.Errorf("update settings: %w", err)
	}
	if rec == nil {
		return models.Settings{}, ErrNotFound
	}
	return models.SettingsFromRecord(rec), nil
}

// DeleteByUser removes the user's settings record, if any.
func (r *SettingsRepo) DeleteByUser(ctx context.Context, userID string) error {
	recs, err := r.store.Active().List(ctx, storage.ColSettings, storage.Filter{"userId": userID})
	if err != nil {
		return fmt.Errorf("list settings: %w", err)
	}
	for _, rec := range recs {
		if _, err := r.store.Active().Remove(ctx, storage.ColSettings, storage.IDString(rec["id"])); err != nil {
			return fmt.Errorf("delete settings: %w", err)
		}
	}
	return nil
}
