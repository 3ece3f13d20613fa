package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/andersonjr667/MeuControle/internal/models"
	"github.com/andersonjr667/MeuControle/internal/storage"
)

// TransactionRepo persists income/expense transactions.
type TransactionRepo struct {
	store *storage.Selector
}

func NewTransactionRepo(store *storage.Selector) *TransactionRepo {
	return &TransactionRepo{store: store}
}

// TransactionFilter narrows FindByUserID results.
type TransactionFilter struct {
	Type      string
	Category  string
	StartDate string
	EndDate   string
}

// TransactionPatch is a partial update; nil fields are left untouched.
type TransactionPatch struct {
	Type        *string  `json:"type"`
	Category    *string  `json:"category"`
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
}

// Create validates, applies defaults and persists a transaction.
func (r *TransactionRepo) Create(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	if t.UserID == "" {
		return models.Transaction{}, invalid("userId", "required")
	}
	t.Type = models.NormalizeTransactionType(t.Type)
	if t.Type != models.TypeIncome && t.Type != models.TypeExpense {
		return models.Transaction{}, invalid("type", "must be income or expense")
	}
	if t.Date == "" {
		t.Date = storage.NowStamp()
	}

	stored, err := r.store.Active().Insert(ctx, storage.ColTransactions, t.Record())
	if err != nil {
		return models.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return models.TransactionFromRecord(stored), nil
}

// FindByUserID returns the user's transactions sorted by occurrence date
// descending, optionally narrowed by filter.
func (r *TransactionRepo) FindByUserID(ctx context.Context, userID string, filter *TransactionFilter) ([]models.Transaction, error) {
	recs, err := r.store.Active().List(ctx, storage.ColTransactions, storage.Filter{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	sortByStringField(recs, "date", true)

	out := make([]models.Transaction, 0, len(recs))
	for _, rec := range recs {
		t := models.TransactionFromRecord(rec)
		if filter != nil && !matchesTransaction(t, filter) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func matchesTransaction(t models.Transaction, f *TransactionFilter) bool {
	if f.Type != "" && t.Type != models.NormalizeTransactionType(f.Type) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
		return false
	}
	if f.StartDate != "" && t.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && t.Date > f.EndDate {
		return false
	}
	return true
}

// FindByID returns the user's transaction, nil when absent, or
// ErrPermissionDenied for a foreign record.
func (r *TransactionRepo) FindByID(ctx context.Context, userID, id string) (*models.Transaction, error) {
	rec, err := r.store.Active().FindByID(ctx, storage.ColTransactions, id)
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	if err := requireOwner(rec, userID); err != nil {
		return nil, err
	}
	t := models.TransactionFromRecord(rec)
	return &t, nil
}

// Update overlays the patch onto an owned transaction.
func (r *TransactionRepo) Update(ctx context.Context, userID, id string, p TransactionPatch) (*models.Transaction, error) {
	existing, err := r.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	patch := storage.Record{}
	if p.Type != nil {
		patch["type"] = models.NormalizeTransactionType(*p.Type)
	}
	if p.Category != nil {
		patch["category"] = *p.Category
	}
	if p.Amount != nil {
		patch["amount"] = *p.Amount
	}
	if p.Description != nil {
		patch["description"] = *p.Description
	}
	if p.Date != nil {
		patch["date"] = *p.Date
	}

	rec, err := r.store.Active().Update(ctx, storage.ColTransactions, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	t := models.TransactionFromRecord(rec)
	return &t, nil
}

// Delete removes an owned transaction.
func (r *TransactionRepo) Delete(ctx context.Context, userID, id string) error {
	existing, err := r.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	ok, err := r.store.Active().Remove(ctx, storage.ColTransactions, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// DeleteManyByUser removes every transaction owned by the user, returning
// how many were removed. Used by account reset.
func (r *TransactionRepo) DeleteManyByUser(ctx context.Context, userID string) (int, error) {
	recs, err := r.store.Active().List(ctx, storage.ColTransactions, storage.Filter{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("list transactions: %w", err)
	}
	removed := 0
	for _, rec := range recs {
		ok, err := r.store.Active().Remove(ctx, storage.ColTransactions, storage.IDString(rec["id"]))
		if err != nil {
			return removed, fmt.Errorf("delete transaction: %w", err)
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}

// CalculateBalance sums income and subtracts expense for the user. Types
// outside the two canonical ones contribute nothing.
func (r *TransactionRepo) CalculateBalance(ctx context.Context, userID string) (float64, error) {
	txs, err := r.FindByUserID(ctx, userID, nil)
	if err != nil {
		return 0, err
	}
	var balance float64
	for _, t := range txs {
		switch t.Type {
		case models.TypeIncome:
			balance += t.Amount
		case models.TypeExpense:
			balance -= t.Amount
		}
	}
	return balance, nil
}
