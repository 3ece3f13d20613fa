package repository

import (
	"context"
	"fmt"

	"github.com/andersonjr667/MeuControle/internal/models"
	"github.com/andersonjr667/MeuControle/internal/storage"
)

// MovementRepo persists debt-history entries.
type MovementRepo struct {
	store *storage.Selector
}

func NewMovementRepo(store *storage.Selector) *MovementRepo {
	return &MovementRepo{store: store}
}

// Append inserts a movement for a debtor, computing its accumulated balance
// as the sum of all prior movements for that debtor plus this one.
func (r *MovementRepo) Append(ctx context.Context, m models.Movement) (models.Movement, error) {
	if m.UserID == "" {
		return models.Movement{}, invalid("userId", "required")
	}
	if m.DebtorID == "" {
		return models.Movement{}, invalid("debtorId", "required")
	}
	m.Action = models.NormalizeAction(m.Action)
	if m.Date == "" {
		m.Date = storage.NowStamp()
	}

	prior, err := r.listInInsertionOrder(ctx, m.UserID, m.DebtorID)
	if err != nil {
		return models.Movement{}, err
	}
	var sum float64
	for _, p := range prior {
		sum += p.Movement
	}
	m.AccumulatedBalance = sum + m.Movement

	stored, err := r.store.Active().Insert(ctx, storage.ColDebtHistory, m.Record())
	if err != nil {
		return models.Movement{}, fmt.Errorf("append movement: %w", err)
	}
	return models.MovementFromRecord(stored), nil
}

// ListByDebtor returns one debtor's history in insertion order. Running
// balances are re-derived from the movements on every read, so entries
// deleted out of order can never leave a stale accumulated value behind.
func (r *MovementRepo) ListByDebtor(ctx context.Context, userID, debtorID string) ([]models.Movement, error) {
	out, err := r.listInInsertionOrder(ctx, userID, debtorID)
	if err != nil {
		return nil, err
	}
	var sum float64
	for i := range out {
		sum += out[i].Movement
		out[i].AccumulatedBalance = sum
	}
	return out, nil
}

// Balance returns the debtor's current running balance.
func (r *MovementRepo) Balance(ctx context.Context, userID, debtorID string) (float64, error) {
	movements, err := r.listInInsertionOrder(ctx, userID, debtorID)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, m := range movements {
		sum += m.Movement
	}
	return sum, nil
}

// ListByUser returns all of the user's history entries sorted by occurrence
// date descending.
func (r *MovementRepo) ListByUser(ctx context.Context, userID string) ([]models.Movement, error) {
	recs, err := r.store.Active().List(ctx, storage.ColDebtHistory, storage.Filter{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("list debt history: %w", err)
	}
	sortByStringField(recs, "date", true)

	out := make([]models.Movement, 0, len(recs))
	for _, rec := range recs {
		out = append(out, models.MovementFromRecord(rec))
	}
	return out, nil
}

// Delete removes one owned history entry.
func (r *MovementRepo) Delete(ctx context.Context, userID, id string) error {
	rec, err := r.store.Active().FindByID(ctx, storage.ColDebtHistory, id)
	if err != nil {
		return fmt.Errorf("find movement: %w", err)
	}
	if rec == nil {
		return ErrNotFound
	}
	if err := requireOwner(rec, userID); err != nil {
		return err
	}
	ok, err := r.store.Active().Remove(ctx, storage.ColDebtHistory, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// DeleteManyByUser removes every history entry owned by the user.
func (r *MovementRepo) DeleteManyByUser(ctx context.Context, userID string) (int, error) {
	recs, err := r.store.Active().List(ctx, storage.ColDebtHistory, storage.Filter{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("list debt history: %w", err)
	}
	removed := 0
	for _, rec := range recs {
		ok, err := r.store.Active().Remove(ctx, storage.ColDebtHistory, storage.IDString(rec["id"]))
		if err != nil {
			return removed, fmt.Errorf("delete movement: %w", err)
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}

func (r *MovementRepo) listInInsertionOrder(ctx context.Context, userID, debtorID string) ([]models.Movement, error) {
	recs, err := r.store.Active().List(ctx, storage.ColDebtHistory,
		storage.Filter{"userId": userID, "debtorId": debtorID})
	if err != nil {
		return nil, fmt.Errorf("list debt history: %w", err)
	}
	sortByStringField(recs, "createdAt", false)

	out := make([]models.Movement, 0, len(recs))
	for _, rec := range recs {
		out = append(out, models.MovementFromRecord(rec))
	}
	return out, nil
}
