package supabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"

	"kusina-backend/domain/catalog"
	pkgerrors "kusina-backend/pkg/errors"
)

// CondimentRepository persists condiments.
type CondimentRepository struct {
	c *Client
}

// NewCondimentRepository creates a condiment repository.
func NewCondimentRepository(c *Client) *CondimentRepository {
	return &CondimentRepository{c: c}
}

// List returns condiments, newest first.
func (r *CondimentRepository) List(ctx context.Context, includeArchived bool) ([]catalog.Condiment, error) {
	var rows []catalog.Condiment
	err := r.c.do(ctx, "condiments.list", func() error {
		q := r.c.sb.From(tableCondiments).Select("*", "", false)
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

// Create inserts a new condiment and returns the stored row.
func (r *CondimentRepository) Create(ctx context.Context, cond catalog.Condiment) (catalog.Condiment, error) {
	if err := cond.Validate(); err != nil {
		return catalog.Condiment{}, pkgerrors.NewValidationError(err.Error())
	}
	now := time.Now().UTC()
	cond.ID = uuid.New().String()
	cond.CreatedAt = now
	cond.UpdatedAt = now

	var rows []catalog.Condiment
	err := r.c.do(ctx, "condiments.create", func() error {
		_, err := r.c.sb.From(tableCondiments).Insert(cond, false, "", "representation", "").ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return catalog.Condiment{}, err
	}
	if len(rows) == 0 {
		return cond, nil
	}
	return rows[0], nil
}

// Update overwrites an existing condiment.
func (r *CondimentRepository) Update(ctx context.Context, cond catalog.Condiment) (catalog.Condiment, error) {
	if err := cond.Validate(); err != nil {
		return catalog.Condiment{}, pkgerrors.NewValidationError(err.Error())
	}
	cond.UpdatedAt = time.Now().UTC()

	var rows []catalog.Condiment
	err := r.c.do(ctx, "condiments.update", func() error {
		_, err := r.c.sb.From(tableCondiments).Update(cond, "representation", "").Eq("id", cond.ID).ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return catalog.Condiment{}, err
	}
	if len(rows) == 0 {
		return catalog.Condiment{}, pkgerrors.NewNotFoundError("condiment")
	}
	return rows[0], nil
}

// SetArchived toggles the archived flag.
func (r *CondimentRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	patch := map[string]any{
		"archived":   archived,
		"updated_at": time.Now().UTC(),
	}
	var rows []catalog.Condiment
	err := r.c.do(ctx, "condiments.archive", func() error {
		_, err := r.c.sb.From(tableCondiments).Update(patch, "representation", "").Eq("id", id).ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return pkgerrors.NewNotFoundError("condiment")
	}
	return nil
}
