package supabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"

	"kusina-backend/domain/audit"
)

// ActivityRepository persists the audit trail. Activities are append-only;
// there is no update or delete path.
type ActivityRepository struct {
	c *Client
}

// NewActivityRepository creates an activity repository.
func NewActivityRepository(c *Client) *ActivityRepository {
	return &ActivityRepository{c: c}
}

// ListRecent returns the newest activities, capped at limit.
func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]audit.Activity, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []audit.Activity
	err := r.c.do(ctx, "activities.list", func() error {
		_, err := r.c.sb.From(tableActivities).
			Select("*", "", false).
			Order("created_at", &postgrest.OrderOpts{Ascending: false}).
			Limit(limit, "").
			ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Record appends one activity.
func (r *ActivityRepository) Record(ctx context.Context, act audit.Activity) (audit.Activity, error) {
	act.ID = uuid.New().String()
	act.CreatedAt = time.Now().UTC()

	var rows []audit.Activity
	err := r.c.do(ctx, "activities.record", func() error {
		_, err := r.c.sb.From(tableActivities).Insert(act, false, "", "representation", "").ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return audit.Activity{}, err
	}
	if len(rows) == 0 {
		return act, nil
	}
	return rows[0], nil
}
