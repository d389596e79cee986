package supabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"

	"kusina-backend/domain/catalog"
	pkgerrors "kusina-backend/pkg/errors"
)

// DietaryTagRepository persists dietary tags.
type DietaryTagRepository struct {
	c *Client
}

// NewDietaryTagRepository creates a dietary tag repository.
func NewDietaryTagRepository(c *Client) *DietaryTagRepository {
	return &DietaryTagRepository{c: c}
}

// List returns all dietary tags in alphabetical order.
func (r *DietaryTagRepository) List(ctx context.Context) ([]catalog.DietaryTag, error) {
	var rows []catalog.DietaryTag
	err := r.c.do(ctx, "dietary_tags.list", func() error {
		_, err := r.c.sb.From(tableDietaryTags).
			Select("*", "", false).
			Order("name", &postgrest.OrderOpts{Ascending: true}).
			ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a new tag and returns the stored row.
func (r *DietaryTagRepository) Create(ctx context.Context, tag catalog.DietaryTag) (catalog.DietaryTag, error) {
	if err := tag.Validate(); err != nil {
		return catalog.DietaryTag{}, pkgerrors.NewValidationError(err.Error())
	}
	tag.ID = uuid.New().String()
	tag.CreatedAt = time.Now().UTC()

	var rows []catalog.DietaryTag
	err := r.c.do(ctx, "dietary_tags.create", func() error {
		_, err := r.c.sb.From(tableDietaryTags).Insert(tag, false, "", "representation", "").ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return catalog.DietaryTag{}, err
	}
	if len(rows) == 0 {
		return tag, nil
	}
	return rows[0], nil
}

// Delete removes a tag permanently. Tags are pure labels; there is no
// archive state for them.
func (r *DietaryTagRepository) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, "dietary_tags.delete", func() error {
		_, _, err := r.c.sb.From(tableDietaryTags).Delete("", "").Eq("id", id).Execute()
		return err
	})
}
