// Package supabase implements the application's repositories on top of
// the hosted Supabase backend, going through postgrest query builders.
// Every call runs inside a shared circuit breaker so a degraded backend
// fails fast instead of stacking up admin requests.
package supabase

import (
	"context"
	"time"

	supa "github.com/supabase-community/supabase-go"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	pkgerrors "kusina-backend/pkg/errors"
)

// Table names in the Supabase project.
const (
	tableIngredients   = "ingredients"
	tableMeals         = "meals"
	tableCondiments    = "condiments"
	tableDietaryTags   = "dietary_tags"
	tableActivities    = "activities"
	tableVerifications = "cook_verifications"
)

// Client wraps the Supabase SDK client with a circuit breaker and logger
// shared by all repositories.
type Client struct {
	sb      *supa.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewClient connects to the Supabase project using the service-role key.
func NewClient(url, serviceKey string, logger *zap.Logger) (*Client, error) {
	sb, err := supa.NewClient(url, serviceKey, nil)
	if err != nil {
		return nil, pkgerrors.NewExternalError("supabase", err)
	}
	return newClientWith(sb, logger), nil
}

func newClientWith(sb *supa.Client, logger *zap.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "supabase",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.8
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &Client{sb: sb, breaker: breaker, logger: logger}
}

// do runs one backend call through the breaker. The postgrest builders do
// not take a context, so cancellation is honored up front rather than
// mid-flight.
func (c *Client) do(ctx context.Context, op string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, fn()
	})
	if err == nil {
		return nil
	}
	switch err {
	case gobreaker.ErrOpenState, gobreaker.ErrTooManyRequests:
		return pkgerrors.NewUnavailableError("supabase").WithCause(err)
	}
	if pkgerrors.IsAppError(err) {
		return err
	}
	return pkgerrors.NewDatabaseError(op, err)
}
