package repository

import (
	"context"
	"fmt"

	"github.com/andersonjr667/MeuControle/internal/models"
	"github.com/andersonjr667/MeuControle/internal/storage"
)

// DebtorRepo persists debtors. Deleting a debtor cascades to its debt
// history; the cascade is not transactional (see PartialWriteError).
type DebtorRepo struct {
	store *storage.Selector
}

func NewDebtorRepo(store *storage.Selector) *DebtorRepo {
	return &DebtorRepo{store: store}
}

// DebtorPatch is a partial update; nil fields are left untouched.
type DebtorPatch struct {
	Name        *string  `json:"name"`
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	DueDate     *string  `json:"dueDate"`
	Status      *string  `json:"status"`
}

// Create validates and persists a debtor.
func (r *DebtorRepo) Create(ctx context.Context, d models.Debtor) (models.Debtor, error) {
	if d.UserID == "" {
		return models.Debtor{}, invalid("userId", "required")
	}
	if d.Name == "" {
		return models.Debtor{}, invalid("name", "required")
	}
	d.Status = models.NormalizeDebtorStatus(d.Status)

	stored, err := r.store.Active().Insert(ctx, storage.ColDebtors, d.Record())
	if err != nil {
		return models.Debtor{}, fmt.Errorf("create debtor: %w", err)
	}
	return models.DebtorFromRecord(stored), nil
}

// FindByUserID returns the user's debtors sorted by due date ascending.
func (r *DebtorRepo) FindByUserID(ctx context.Context, userID string) ([]models.Debtor, error) {
	recs, err := r.store.Active().List(ctx, storage.ColDebtors, storage.Filter{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("list debtors: %w", err)
	}
	sortByStringField(recs, "dueDate", false)

	out := make([]models.Debtor, 0, len(recs))
	for _, rec := range recs {
		out = append(out, models.DebtorFromRecord(rec))
	}
	return out, nil
}

// FindByID returns the user's debtor, nil when absent.
func (r *DebtorRepo) FindByID(ctx context.Context, userID, id string) (*models.Debtor, error) {
	rec, err := r.store.Active().FindByID(ctx, storage.ColDebtors, id)
	if err != nil {
		return nil, fmt.Errorf("find debtor: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	if err := requireOwner(rec, userID); err != nil {
		return nil, err
	}
	d := models.DebtorFromRecord(rec)
	return &d, nil
}

// Update overlays the patch onto an owned debtor.
func (r *DebtorRepo) Update(ctx context.Context, userID, id string, p DebtorPatch) (*models.Debtor, error) {
	existing, err := r.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	patch := storage.Record{}
	if p.Name != nil {
		patch["name"] = *p.Name
	}
	if p.Amount != nil {
		patch["amount"] = *p.Amount
	}
	if p.Description != nil {
		patch["description"] = *p.Description
	}
	if p.DueDate != nil {
		patch["dueDate"] = *p.DueDate
	}
	if p.Status != nil {
		patch["status"] = models.NormalizeDebtorStatus(*p.Status)
	}

	rec, err := r.store.Active().Update(ctx, storage.ColDebtors, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update debtor: %w", err)
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	d := models.DebtorFromRecord(rec)
	return &d, nil
}

// Delete removes an owned debtor and all its debt-history entries. History
// goes first; if the debtor removal then fails, the history is already gone
// and the error reports the partial write.
func (r *DebtorRepo) Delete(ctx context.Context, userID, id string) error {
	existing, err := r.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	history, err := r.store.Active().List(ctx, storage.ColDebtHistory,
		storage.Filter{"userId": userID, "debtorId": id})
	if err != nil {
		return fmt.Errorf("list debt history: %w", err)
	}
	for _, h := range history {
		if _, err := r.store.Active().Remove(ctx, storage.ColDebtHistory, storage.IDString(h["id"])); err != nil {
			return &PartialWriteError{Op: "debtor delete cascade", Err: err}
		}
	}

	ok, err := r.store.Active().Remove(ctx, storage.ColDebtors, id)
	if err != nil {
		return &PartialWriteError{Op: "debtor delete cascade", Err: err}
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// DeleteManyByUser removes every debtor owned by the user, cascading each.
func (r *DebtorRepo) DeleteManyByUser(ctx context.Context, userID string) (int, error) {
	debtors, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, d := range debtors {
		if err := r.Delete(ctx, userID, d.ID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// ResetAmountsByUser zeroes the amount on every debtor owned by the user
// while keeping the debtor records themselves. Used by account reset, which
// keeps contacts but clears balances.
func (r *DebtorRepo) ResetAmountsByUser(ctx context.Context, userID string) (int, error) {
	recs, err := r.store.Active().List(ctx, storage.ColDebtors, storage.Filter{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("list debtors: %w", err)
	}
	reset := 0
	for _, rec := range recs {
		_, err := r.store.Active().Update(ctx, storage.ColDebtors,
			storage.IDString(rec["id"]), storage.Record{"amount": 0.0})
		if err != nil {
			return reset, fmt.Errorf("reset debtor amount: %w", err)
		}
		reset++
	}
	return reset, nil
}
