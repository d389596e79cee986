package supabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"

	"kusina-backend/domain/verification"
	pkgerrors "kusina-backend/pkg/errors"
)

// VerificationRepository persists cook verification requests.
type VerificationRepository struct {
	c *Client
}

// NewVerificationRepository creates a verification repository.
func NewVerificationRepository(c *Client) *VerificationRepository {
	return &VerificationRepository{c: c}
}

// ListPending returns pending requests, oldest first so reviewers work
// through the queue in submission order.
func (r *VerificationRepository) ListPending(ctx context.Context) ([]verification.CookVerification, error) {
	var rows []verification.CookVerification
	err := r.c.do(ctx, "verifications.list_pending", func() error {
		_, err := r.c.sb.From(tableVerifications).
			Select("*", "", false).
			Eq("status", string(verification.StatusPending)).
			Order("submitted_at", &postgrest.OrderOpts{Ascending: true}).
			ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID fetches one verification request.
func (r *VerificationRepository) GetByID(ctx context.Context, id string) (verification.CookVerification, error) {
	var rows []verification.CookVerification
	err := r.c.do(ctx, "verifications.get", func() error {
		_, err := r.c.sb.From(tableVerifications).Select("*", "", false).Eq("id", id).ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return verification.CookVerification{}, err
	}
	if len(rows) == 0 {
		return verification.CookVerification{}, pkgerrors.NewNotFoundError("verification")
	}
	return rows[0], nil
}

// GetByCookID fetches the latest request for a cook.
func (r *VerificationRepository) GetByCookID(ctx context.Context, cookID string) (verification.CookVerification, error) {
	var rows []verification.CookVerification
	err := r.c.do(ctx, "verifications.get_by_cook", func() error {
		_, err := r.c.sb.From(tableVerifications).
			Select("*", "", false).
			Eq("cook_id", cookID).
			Order("submitted_at", &postgrest.OrderOpts{Ascending: false}).
			Limit(1, "").
			ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return verification.CookVerification{}, err
	}
	if len(rows) == 0 {
		return verification.CookVerification{}, pkgerrors.NewNotFoundError("verification")
	}
	return rows[0], nil
}

// Create inserts a new pending request.
func (r *VerificationRepository) Create(ctx context.Context, v verification.CookVerification) (verification.CookVerification, error) {
	v.ID = uuid.New().String()
	v.Status = verification.StatusPending
	v.SubmittedAt = time.Now().UTC()

	var rows []verification.CookVerification
	err := r.c.do(ctx, "verifications.create", func() error {
		_, err := r.c.sb.From(tableVerifications).Insert(v, false, "", "representation", "").ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return verification.CookVerification{}, err
	}
	if len(rows) == 0 {
		return v, nil
	}
	return rows[0], nil
}

// Update overwrites a request, typically after review.
func (r *VerificationRepository) Update(ctx context.Context, v verification.CookVerification) (verification.CookVerification, error) {
	var rows []verification.CookVerification
	err := r.c.do(ctx, "verifications.update", func() error {
		_, err := r.c.sb.From(tableVerifications).Update(v, "representation", "").Eq("id", v.ID).ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return verification.CookVerification{}, err
	}
	if len(rows) == 0 {
		return verification.CookVerification{}, pkgerrors.NewNotFoundError("verification")
	}
	return rows[0], nil
}
