package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/andersonjr667/MeuControle/internal/models"
	"github.com/andersonjr667/MeuControle/internal/storage"
)

// Category kinds map API names onto store collections.
var categoryCollections = map[string]string{
	"income":  storage.ColIncomeCategories,
	"expense": storage.ColExpenseCategories,
	"payment": storage.ColPaymentMethods,
}

// DefaultCategoryNames are the per-kind lists seeded by RestoreDefaults.
var DefaultCategoryNames = map[string][]string{
	"income": {"Salário", "Investimentos", "Freelance", "Presentes", "Reembolso", "Outros"},
	"expense": {"Alimentação", "Moradia", "Transporte", "Saúde", "Lazer", "Educação",
		"Vestuário", "Internet", "Serviços", "Impostos", "Assinaturas", "Outros"},
	"payment": {"PIX", "Dinheiro", "Cartão de Crédito", "Cartão de Débito",
		"Transferência", "Vale", "Cheque"},
}

// CategoryRepo persists the named category collections (income, expense,
// payment methods), each a flat list of user-owned names.
type CategoryRepo struct {
	store *storage.Selector
}

func NewCategoryRepo(store *storage.Selector) *CategoryRepo {
	return &CategoryRepo{store: store}
}

// ValidKind reports whether kind names a category collection.
func ValidKind(kind string) bool {
	_, ok := categoryCollections[kind]
	return ok
}

// List returns the user's categories of one kind.
func (r *CategoryRepo) List(ctx context.Context, userID, kind string) ([]models.Category, error) {
	col, ok := categoryCollections[kind]
	if !ok {
		return nil, invalid("kind", "must be income, expense or payment")
	}
	recs, err := r.store.Active().List(ctx, col, storage.Filter{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("list %s categories: %w", kind, err)
	}
	sortByStringField(recs, "name", false)

	out := make([]models.Category, 0, len(recs))
	for _, rec := range recs {
		out = append(out, models.CategoryFromRecord(rec))
	}
	return out, nil
}

// Create adds a named category of one kind.
func (r *CategoryRepo) Create(ctx context.Context, userID, kind, name string) (models.Category, error) {
	col, ok := categoryCollections[kind]
	if !ok {
		return models.Category{}, invalid("kind", "must be income, expense or payment")
	}
	if strings.TrimSpace(name) == "" {
		return models.Category{}, invalid("name", "required")
	}
	rec, err := r.store.Active().Insert(ctx, col,
		storage.Record{"userId": userID, "name": strings.TrimSpace(name)})
	if err != nil {
		return models.Category{}, fmt.Errorf("create %s category: %w", kind, err)
	}
	return models.CategoryFromRecord(rec), nil
}

// Rename changes an owned category's name.
func (r *CategoryRepo) Rename(ctx context.Context, userID, kind, id, name string) (*models.Category, error) {
	col, ok := categoryCollections[kind]
	if !ok {
		return nil, invalid("kind", "must be income, expense or payment")
	}
	if strings.TrimSpace(name) == "" {
		return nil, invalid("name", "required")
	}
	rec, err := r.store.Active().FindByID(ctx, col, id)
	if err != nil {
		return nil, fmt.Errorf("find %s category: %w", kind, err)
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	if err := requireOwner(rec, userID); err != nil {
		return nil, err
	}
	updated, err := r.store.Active().Update(ctx, col, id, storage.Record{"name": strings.TrimSpace(name)})
	if err != nil {
		return nil, fmt.Errorf("rename %s category: %w", kind, err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	c := models.CategoryFromRecord(updated)
	return &c, nil
}

// Delete removes an owned category.
func (r *CategoryRepo) Delete(ctx context.Context, userID, kind, id string) error {
	col, ok := categoryCollections[kind]
	if !ok {
		return invalid("kind", "must be income, expense or payment")
	}
	rec, err := r.store.Active().FindByID(ctx, col, id)
	if err != nil {
		return fmt.Errorf("find %s category: %w", kind, err)
	}
	if rec == nil {
		return ErrNotFound
	}
	if err := requireOwner(rec, userID); err != nil {
		return err
	}
	ok, err = r.store.Active().Remove(ctx, col, id)
	if err != nil {
		return fmt.Errorf("delete %s category: %w", kind, err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// RestoreDefaults inserts any default category a user is missing, compared
// case-insensitively by name. Existing entries are kept.
func (r *CategoryRepo) RestoreDefaults(ctx context.Context, userID string) (map[string][]models.Category, error) {
	created := make(map[string][]models.Category, len(DefaultCategoryNames))
	for kind, names := range DefaultCategoryNames {
		existing, err := r.List(ctx, userID, kind)
		if err != nil {
			return nil, err
		}
		have := make(map[string]bool, len(existing))
		for _, c := range existing {
			have[strings.ToLower(c.Name)] = true
		}
		created[kind] = []models.Category{}
		for _, name := range names {
			if have[strings.ToLower(name)] {
				continue
			}
			c, err := r.Create(ctx, userID, kind, name)
			if err != nil {
				return nil, err
			}
			created[kind] = append(created[kind], c)
		}
	}
	return created, nil
}
