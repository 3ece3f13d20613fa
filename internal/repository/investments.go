package repository

import (
	"context"
	"fmt"

	"github.com/andersonjr667/MeuControle/internal/models"
	"github.com/andersonjr667/MeuControle/internal/storage"
)

// InvestmentRepo persists investments.
type InvestmentRepo struct {
	store *storage.Selector
}

func NewInvestmentRepo(store *storage.Selector) *InvestmentRepo {
	return &InvestmentRepo{store: store}
}

// InvestmentPatch is a partial update; nil fields are left untouched.
type InvestmentPatch struct {
	Name          *string  `json:"name"`
	Type          *string  `json:"type"`
	Amount        *float64 `json:"amount"`
	InitialAmount *float64 `json:"initialAmount"`
	ReturnRate    *float64 `json:"returnRate"`
	CDIPercent    *float64 `json:"cdiPercent"`
	Description   *string  `json:"description"`
	StartDate     *string  `json:"startDate"`
	EndDate       *string  `json:"endDate"`
	Status        *string  `json:"status"`
}

// Create validates, applies defaults and persists an investment. A missing
// initial amount defaults to the current amount.
func (r *InvestmentRepo) Create(ctx context.Context, inv models.Investment) (models.Investment, error) {
	if inv.UserID == "" {
		return models.Investment{}, invalid("userId", "required")
	}
	if inv.Name == "" {
		return models.Investment{}, invalid("name", "required")
	}
	if inv.InitialAmount == 0 {
		inv.InitialAmount = inv.Amount
	}
	if inv.StartDate == "" {
		inv.StartDate = storage.NowStamp()
	}
	inv.Status = models.NormalizeInvestmentStatus(inv.Status)

	stored, err := r.store.Active().Insert(ctx, storage.ColInvestments, inv.Record())
	if err != nil {
		return models.Investment{}, fmt.Errorf("create investment: %w", err)
	}
	return models.InvestmentFromRecord(stored), nil
}

// FindByUserID returns the user's investments sorted by start date
// descending.
func (r *InvestmentRepo) FindByUserID(ctx context.Context, userID string) ([]models.Investment, error) {
	recs, err := r.store.Active().List(ctx, storage.ColInvestments, storage.Filter{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	sortByStringField(recs, "startDate", true)

	out := make([]models.Investment, 0, len(recs))
	for _, rec := range recs {
		out = append(out, models.InvestmentFromRecord(rec))
	}
	return out, nil
}

// FindByID returns the user's investment, nil when absent.
func (r *InvestmentRepo) FindByID(ctx context.Context, userID, id string) (*models.Investment, error) {
	rec, err := r.store.Active().FindByID(ctx, storage.ColInvestments, id)
	if err != nil {
		return nil, fmt.Errorf("find investment: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	if err := requireOwner(rec, userID); err != nil {
		return nil, err
	}
	inv := models.InvestmentFromRecord(rec)
	return &inv, nil
}

// Update overlays the patch onto an owned investment.
func (r *InvestmentRepo) Update(ctx context.Context, userID, id string, p InvestmentPatch) (*models.Investment, error) {
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
	if p.Type != nil {
		patch["type"] = *p.Type
	}
	if p.Amount != nil {
		patch["amount"] = *p.Amount
	}
	if p.InitialAmount != nil {
		patch["initialAmount"] = *p.InitialAmount
	}
	if p.ReturnRate != nil {
		patch["returnRate"] = *p.ReturnRate
	}
	if p.CDIPercent != nil {
		patch["cdiPercent"] = *p.CDIPercent
	}
	if p.Description != nil {
		patch["description"] = *p.Description
	}
	if p.StartDate != nil {
		patch["startDate"] = *p.StartDate
	}
	if p.EndDate != nil {
		patch["endDate"] = *p.EndDate
	}
	if p.Status != nil {
		patch["status"] = models.NormalizeInvestmentStatus(*p.Status)
	}

	rec, err := r.store.Active().Update(ctx, storage.ColInvestments, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update investment: %w", err)
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	inv := models.InvestmentFromRecord(rec)
	return &inv, nil
}

// Delete removes an owned investment.
func (r *InvestmentRepo) Delete(ctx context.Context, userID, id string) error {
	existing, err := r.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	ok, err := r.store.Active().Remove(ctx, storage.ColInvestments, id)
	if err != nil {
		return fmt.Errorf("delete investment: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// DeleteManyByUser removes every investment owned by the user.
func (r *InvestmentRepo) DeleteManyByUser(ctx context.Context, userID string) (int, error) {
	recs, err := r.store.Active().List(ctx, storage.ColInvestments, storage.Filter{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("list investments: %w", err)
	}
	removed := 0
	for _, rec := range recs {
		ok, err := r.store.Active().Remove(ctx, storage.ColInvestments, storage.IDString(rec["id"]))
		if err != nil {
			return removed, fmt.Errorf("delete investment: %w", err)
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}

// CalculateTotalInvested sums the current amount of the user's active
// investments. Closed positions are excluded.
func (r *InvestmentRepo) CalculateTotalInvested(ctx context.Context, userID string) (float64, error) {
	investments, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, inv := range investments {
		if inv.Status == models.InvestmentActive {
			total += inv.Amount
		}
	}
	return total, nil
}
