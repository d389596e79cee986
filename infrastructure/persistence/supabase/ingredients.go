package supabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"go.uber.org/zap"

	"kusina-backend/domain/catalog"
	pkgerrors "kusina-backend/pkg/errors"
)

// IngredientRepository persists ingredients in the ingredients table.
type IngredientRepository struct {
	c *Client
}

// NewIngredientRepository creates an ingredient repository.
func NewIngredientRepository(c *Client) *IngredientRepository {
	return &IngredientRepository{c: c}
}

// List returns the ingredient catalog, newest first. Archived rows are
// filtered out unless requested.
func (r *IngredientRepository) List(ctx context.Context, includeArchived bool) ([]catalog.Ingredient, error) {
	var rows []catalog.Ingredient
	err := r.c.do(ctx, "ingredients.list", func() error {
		q := r.c.sb.From(tableIngredients).Select("*", "", false)
		if !includeArchived {
			q = q.Eq("archived", "false")
		}
		_, err := q.Order("created_at", &postgrest.OrderOpts{Ascending: false}).ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID fetches one ingredient.
func (r *IngredientRepository) GetByID(ctx context.Context, id string) (catalog.Ingredient, error) {
	var rows []catalog.Ingredient
	err := r.c.do(ctx, "ingredients.get", func() error {
		_, err := r.c.sb.From(tableIngredients).Select("*", "", false).Eq("id", id).ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return catalog.Ingredient{}, err
	}
	if len(rows) == 0 {
		return catalog.Ingredient{}, pkgerrors.NewNotFoundError("ingredient")
	}
	return rows[0], nil
}

// Create inserts a new ingredient and returns the stored row.
func (r *IngredientRepository) Create(ctx context.Context, ing catalog.Ingredient) (catalog.Ingredient, error) {
	if err := ing.Validate(); err != nil {
		return catalog.Ingredient{}, pkgerrors.NewValidationError(err.Error())
	}
	now := time.Now().UTC()
	ing.ID = uuid.New().String()
	ing.CreatedAt = now
	ing.UpdatedAt = now

	var rows []catalog.Ingredient
	err := r.c.do(ctx, "ingredients.create", func() error {
		_, err := r.c.sb.From(tableIngredients).Insert(ing, false, "", "representation", "").ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return catalog.Ingredient{}, err
	}
	if len(rows) == 0 {
		return ing, nil
	}
	return rows[0], nil
}

// Update overwrites an existing ingredient.
func (r *IngredientRepository) Update(ctx context.Context, ing catalog.Ingredient) (catalog.Ingredient, error) {
	if err := ing.Validate(); err != nil {
		return catalog.Ingredient{}, pkgerrors.NewValidationError(err.Error())
	}
	ing.UpdatedAt = time.Now().UTC()

	var rows []catalog.Ingredient
	err := r.c.do(ctx, "ingredients.update", func() error {
		_, err := r.c.sb.From(tableIngredients).Update(ing, "representation", "").Eq("id", ing.ID).ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return catalog.Ingredient{}, err
	}
	if len(rows) == 0 {
		return catalog.Ingredient{}, pkgerrors.NewNotFoundError("ingredient")
	}
	return rows[0], nil
}

// SetArchived toggles the archived flag without touching other fields.
func (r *IngredientRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	patch := map[string]any{
		"archived":   archived,
		"updated_at": time.Now().UTC(),
	}
	var rows []catalog.Ingredient
	err := r.c.do(ctx, "ingredients.archive", func() error {
		_, err := r.c.sb.From(tableIngredients).Update(patch, "representation", "").Eq("id", id).ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return pkgerrors.NewNotFoundError("ingredient")
	}
	r.c.logger.Info("ingredient archive flag set",
		zap.String("id", id), zap.Bool("archived", archived))
	return nil
}
