package supabase

import (
	"context"
	"time"

	"kusina-backend/domain/catalog"
	"kusina-backend/domain/verification"
)

// StatsRepository computes dashboard aggregates with head-only count
// queries, so no row payloads cross the wire.
type StatsRepository struct {
	c *Client
}

// NewStatsRepository creates a stats repository.
func NewStatsRepository(c *Client) *StatsRepository {
	return &StatsRepository{c: c}
}

// DashboardStats gathers the admin landing page counters. The result is
// expected to be cached by the caller; this runs several queries.
func (r *StatsRepository) DashboardStats(ctx context.Context) (catalog.DashboardStats, error) {
	stats := catalog.DashboardStats{
		MealsByCategory: make(map[string]int),
		GeneratedAt:     time.Now().UTC(),
	}

	count, err := r.count(ctx, "stats.meals", tableMeals, "archived", "false")
	if err != nil {
		return catalog.DashboardStats{}, err
	}
	stats.TotalMeals = count

	count, err = r.count(ctx, "stats.meals_published", tableMeals, "published", "true")
	if err != nil {
		return catalog.DashboardStats{}, err
	}
	stats.PublishedMeals = count

	for _, cat := range []catalog.FoodCategory{catalog.CategoryGo, catalog.CategoryGrow, catalog.CategoryGlow} {
		count, err = r.count(ctx, "stats.meals_by_category", tableMeals, "category", string(cat))
		if err != nil {
			return catalog.DashboardStats{}, err
		}
		stats.MealsByCategory[string(cat)] = count
	}

	count, err = r.count(ctx, "stats.ingredients", tableIngredients, "archived", "false")
	if err != nil {
		return catalog.DashboardStats{}, err
	}
	stats.TotalIngredients = count

	count, err = r.count(ctx, "stats.condiments", tableCondiments, "archived", "false")
	if err != nil {
		return catalog.DashboardStats{}, err
	}
	stats.TotalCondiments = count

	count, err = r.count(ctx, "stats.verifications", tableVerifications, "status", string(verification.StatusPending))
	if err != nil {
		return catalog.DashboardStats{}, err
	}
	stats.PendingVerifications = count

	return stats, nil
}

func (r *StatsRepository) count(ctx context.Context, op, table, column, value string) (int, error) {
	var n int64
	err := r.c.do(ctx, op, func() error {
		_, count, err := r.c.sb.From(table).
			Select("id", "exact", true).
			Eq(column, value).
			Execute()
		n = count
		return err
	})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
