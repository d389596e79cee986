// Package ports defines the persistence interfaces the application layer
// depends on. The Supabase implementations live under
// infrastructure/persistence/supabase; tests swap in fakes.
package ports

import (
	"context"

	"kusina-backend/domain/audit"
	"kusina-backend/domain/catalog"
	"kusina-backend/domain/verification"
)

// IngredientRepository persists catalog ingredients.
type IngredientRepository interface {
	List(ctx context.Context, includeArchived bool) ([]catalog.Ingredient, error)
	GetByID(ctx context.Context, id string) (catalog.Ingredient, error)
	Create(ctx context.Context, ing catalog.Ingredient) (catalog.Ingredient, error)
	Update(ctx context.Context, ing catalog.Ingredient) (catalog.Ingredient, error)
	SetArchived(ctx context.Context, id string, archived bool) error
}

// MealRepository persists curated meals.
type MealRepository interface {
	List(ctx context.Context, filter catalog.MealFilter) ([]catalog.Meal, error)
	GetByID(ctx context.Context, id string) (catalog.Meal, error)
	Create(ctx context.Context, meal catalog.Meal) (catalog.Meal, error)
	Update(ctx context.Context, meal catalog.Meal) (catalog.Meal, error)
	SetArchived(ctx context.Context, id string, archived bool) error
}

// CondimentRepository persists condiments.
type CondimentRepository interface {
	List(ctx context.Context, includeArchived bool) ([]catalog.Condiment, error)
	Create(ctx context.Context, c catalog.Condiment) (catalog.Condiment, error)
	Update(ctx context.Context, c catalog.Condiment) (catalog.Condiment, error)
	SetArchived(ctx context.Context, id string, archived bool) error
}

// DietaryTagRepository persists dietary tags.
type DietaryTagRepository interface {
	List(ctx context.Context) ([]catalog.DietaryTag, error)
	Create(ctx context.Context, tag catalog.DietaryTag) (catalog.DietaryTag, error)
	Delete(ctx context.Context, id string) error
}

// ActivityRepository persists the audit trail.
type ActivityRepository interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Activity, error)
	Record(ctx context.Context, act audit.Activity) (audit.Activity, error)
}

// VerificationRepository persists cook verification requests.
type VerificationRepository interface {
	ListPending(ctx context.Context) ([]verification.CookVerification, error)
	GetByID(ctx context.Context, id string) (verification.CookVerification, error)
	GetByCookID(ctx context.Context, cookID string) (verification.CookVerification, error)
	Create(ctx context.Context, v verification.CookVerification) (verification.CookVerification, error)
	Update(ctx context.Context, v verification.CookVerification) (verification.CookVerification, error)
}

// StatsRepository computes dashboard aggregates.
type StatsRepository interface {
	DashboardStats(ctx context.Context) (catalog.DashboardStats, error)
}
