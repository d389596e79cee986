package supabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"

	"kusina-backend/domain/catalog"
	pkgerrors "kusina-backend/pkg/errors"
)

// MealRepository persists meals in the meals table.
type MealRepository struct {
	c *Client
}

// NewMealRepository creates a meal repository.
func NewMealRepository(c *Client) *MealRepository {
	return &MealRepository{c: c}
}

// List returns meals matching the filter, newest first.
func (r *MealRepository) List(ctx context.Context, filter catalog.MealFilter) ([]catalog.Meal, error) {
	var rows []catalog.Meal
	err := r.c.do(ctx, "meals.list", func() error {
		q := r.c.sb.From(tableMeals).Select("*", "", false)
		if !filter.IncludeArchived {
			q = q.Eq("archived", "false")
		}
		if filter.Category != "" {
			q = q.Eq("category", string(filter.Category))
		}
		if filter.Search != "" {
			q = q.Ilike("name", "%"+filter.Search+"%")
		}
		_, err := q.Order("created_at", &postgrest.OrderOpts{Ascending: false}).ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID fetches one meal.
func (r *MealRepository) GetByID(ctx context.Context, id string) (catalog.Meal, error) {
	var rows []catalog.Meal
	err := r.c.do(ctx, "meals.get", func() error {
		_, err := r.c.sb.From(tableMeals).Select("*", "", false).Eq("id", id).ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return catalog.Meal{}, err
	}
	if len(rows) == 0 {
		return catalog.Meal{}, pkgerrors.NewNotFoundError("meal")
	}
	return rows[0], nil
}

// Create inserts a new meal and returns the stored row.
func (r *MealRepository) Create(ctx context.Context, meal catalog.Meal) (catalog.Meal, error) {
	if err := meal.Validate(); err != nil {
		return catalog.Meal{}, pkgerrors.NewValidationError(err.Error())
	}
	now := time.Now().UTC()
	meal.ID = uuid.New().String()
	meal.CreatedAt = now
	meal.UpdatedAt = now

	var rows []catalog.Meal
	err := r.c.do(ctx, "meals.create", func() error {
		_, err := r.c.sb.From(tableMeals).Insert(meal, false, "", "representation", "").ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return catalog.Meal{}, err
	}
	if len(rows) == 0 {
		return meal, nil
	}
	return rows[0], nil
}

// Update overwrites an existing meal.
func (r *MealRepository) Update(ctx context.Context, meal catalog.Meal) (catalog.Meal, error) {
	if err := meal.Validate(); err != nil {
		return catalog.Meal{}, pkgerrors.NewValidationError(err.Error())
	}
	meal.UpdatedAt = time.Now().UTC()

	var rows []catalog.Meal
	err := r.c.do(ctx, "meals.update", func() error {
		_, err := r.c.sb.From(tableMeals).Update(meal, "representation", "").Eq("id", meal.ID).ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return catalog.Meal{}, err
	}
	if len(rows) == 0 {
		return catalog.Meal{}, pkgerrors.NewNotFoundError("meal")
	}
	return rows[0], nil
}

// SetArchived toggles the archived flag. Archiving also unpublishes so an
// archived meal never shows in the consumer app.
func (r *MealRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	patch := map[string]any{
		"archived":   archived,
		"updated_at": time.Now().UTC(),
	}
	if archived {
		patch["published"] = false
	}
	var rows []catalog.Meal
	err := r.c.do(ctx, "meals.archive", func() error {
		_, err := r.c.sb.From(tableMeals).Update(patch, "representation", "").Eq("id", id).ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return pkgerrors.NewNotFoundError("meal")
	}
	return nil
}
