// Package services wires the domain repositories to the caching layer:
// reads go through memoized fetch functions bound to a volatility-class
// store, and writes mutate the backend, route a cache invalidation, record
// an audit activity, and publish a refresh notification.
package services

import (
	"context"

	"go.uber.org/zap"

	"kusina-backend/application/ports"
	"kusina-backend/domain/audit"
	"kusina-backend/domain/catalog"
	"kusina-backend/infrastructure/cache"
	"kusina-backend/pkg/notify"
)

// Actor identifies the admin performing a write, for the audit trail.
type Actor struct {
	ID   string
	Name string
}

// CatalogService owns the ingredient, meal, condiment, and dietary tag
// workflows.
type CatalogService struct {
	ingredients ports.IngredientRepository
	meals       ports.MealRepository
	condiments  ports.CondimentRepository
	tags        ports.DietaryTagRepository
	activities  ports.ActivityRepository
	router      *cache.Router
	notifier    *notify.Notifier
	logger      *zap.Logger

	getAllIngredients cache.Func[[]catalog.Ingredient]
	getAllMeals       cache.Func[[]catalog.Meal]
	getAllCondiments  cache.Func[[]catalog.Condiment]
	getDietaryTags    cache.Func[[]catalog.DietaryTag]
}

// NewCatalogService builds the service and binds its memoized readers to
// the static reference-data store.
func NewCatalogService(
	ingredients ports.IngredientRepository,
	meals ports.MealRepository,
	condiments ports.CondimentRepository,
	tags ports.DietaryTagRepository,
	activities ports.ActivityRepository,
	static *cache.Store,
	router *cache.Router,
	notifier *notify.Notifier,
	logger *zap.Logger,
) *CatalogService {
	s := &CatalogService{
		ingredients: ingredients,
		meals:       meals,
		condiments:  condiments,
		tags:        tags,
		activities:  activities,
		router:      router,
		notifier:    notifier,
		logger:      logger,
	}

	s.getAllIngredients = cache.Memoize(static, "getAllIngredients",
		func(ctx context.Context, args ...any) ([]catalog.Ingredient, error) {
			includeArchived := len(args) > 0 && args[0] == true
			return s.ingredients.List(ctx, includeArchived)
		})
	s.getAllMeals = cache.Memoize(static, "getAllMeals",
		func(ctx context.Context, args ...any) ([]catalog.Meal, error) {
			var filter catalog.MealFilter
			if len(args) > 0 {
				filter = args[0].(catalog.MealFilter)
			}
			return s.meals.List(ctx, filter)
		})
	s.getAllCondiments = cache.Memoize(static, "getAllCondiments",
		func(ctx context.Context, args ...any) ([]catalog.Condiment, error) {
			includeArchived := len(args) > 0 && args[0] == true
			return s.condiments.List(ctx, includeArchived)
		})
	s.getDietaryTags = cache.Memoize(static, "getDietaryTags",
		func(ctx context.Context, args ...any) ([]catalog.DietaryTag, error) {
			return s.tags.List(ctx)
		})

	return s
}

// GetAllIngredients returns the ingredient catalog, served from cache
// when fresh.
func (s *CatalogService) GetAllIngredients(ctx context.Context, includeArchived bool) ([]catalog.Ingredient, error) {
	if includeArchived {
		return s.getAllIngredients(ctx, true)
	}
	return s.getAllIngredients(ctx)
}

// GetAllMeals returns meals matching the filter, served from cache when
// fresh. A zero filter shares the unparameterized cache key.
func (s *CatalogService) GetAllMeals(ctx context.Context, filter catalog.MealFilter) ([]catalog.Meal, error) {
	if filter.IsZero() {
		return s.getAllMeals(ctx)
	}
	return s.getAllMeals(ctx, filter)
}

// GetMeal fetches a single meal, uncached: detail views are rare next to
// listings and always want current data when an editor opens them.
func (s *CatalogService) GetMeal(ctx context.Context, id string) (catalog.Meal, error) {
	return s.meals.GetByID(ctx, id)
}

// GetAllCondiments returns condiments, served from cache when fresh.
func (s *CatalogService) GetAllCondiments(ctx context.Context, includeArchived bool) ([]catalog.Condiment, error) {
	if includeArchived {
		return s.getAllCondiments(ctx, true)
	}
	return s.getAllCondiments(ctx)
}

// GetDietaryTags returns all dietary tags, served from cache when fresh.
func (s *CatalogService) GetDietaryTags(ctx context.Context) ([]catalog.DietaryTag, error) {
	return s.getDietaryTags(ctx)
}

// CreateIngredient persists a new ingredient, then invalidates the caches
// the write stales.
func (s *CatalogService) CreateIngredient(ctx context.Context, actor Actor, ing catalog.Ingredient) (catalog.Ingredient, error) {
	created, err := s.ingredients.Create(ctx, ing)
	if err != nil {
		return catalog.Ingredient{}, err
	}
	s.afterWrite(ctx, OpIngredientCreated, actor, audit.ActionCreated, "ingredient", created.ID, created.Name)
	return created, nil
}

// UpdateIngredient overwrites an ingredient.
func (s *CatalogService) UpdateIngredient(ctx context.Context, actor Actor, ing catalog.Ingredient) (catalog.Ingredient, error) {
	updated, err := s.ingredients.Update(ctx, ing)
	if err != nil {
		return catalog.Ingredient{}, err
	}
	s.afterWrite(ctx, OpIngredientUpdated, actor, audit.ActionUpdated, "ingredient", updated.ID, updated.Name)
	return updated, nil
}

// ArchiveIngredient soft-deletes an ingredient.
func (s *CatalogService) ArchiveIngredient(ctx context.Context, actor Actor, id string) error {
	if err := s.ingredients.SetArchived(ctx, id, true); err != nil {
		return err
	}
	s.afterWrite(ctx, OpIngredientArchived, actor, audit.ActionArchived, "ingredient", id, "")
	return nil
}

// CreateMeal persists a new meal.
func (s *CatalogService) CreateMeal(ctx context.Context, actor Actor, meal catalog.Meal) (catalog.Meal, error) {
	meal.CreatedBy = actor.ID
	created, err := s.meals.Create(ctx, meal)
	if err != nil {
		return catalog.Meal{}, err
	}
	s.afterWrite(ctx, OpMealCreated, actor, audit.ActionCreated, "meal", created.ID, created.Name)
	return created, nil
}

// UpdateMeal overwrites a meal.
func (s *CatalogService) UpdateMeal(ctx context.Context, actor Actor, meal catalog.Meal) (catalog.Meal, error) {
	updated, err := s.meals.Update(ctx, meal)
	if err != nil {
		return catalog.Meal{}, err
	}
	s.afterWrite(ctx, OpMealUpdated, actor, audit.ActionUpdated, "meal", updated.ID, updated.Name)
	return updated, nil
}

// ArchiveMeal soft-deletes a meal and unpublishes it.
func (s *CatalogService) ArchiveMeal(ctx context.Context, actor Actor, id string) error {
	if err := s.meals.SetArchived(ctx, id, true); err != nil {
		return err
	}
	s.afterWrite(ctx, OpMealArchived, actor, audit.ActionArchived, "meal", id, "")
	return nil
}

// CreateCondiment persists a new condiment.
func (s *CatalogService) CreateCondiment(ctx context.Context, actor Actor, cond catalog.Condiment) (catalog.Condiment, error) {
	created, err := s.condiments.Create(ctx, cond)
	if err != nil {
		return catalog.Condiment{}, err
	}
	s.afterWrite(ctx, OpCondimentCreated, actor, audit.ActionCreated, "condiment", created.ID, created.Name)
	return created, nil
}

// UpdateCondiment overwrites a condiment.
func (s *CatalogService) UpdateCondiment(ctx context.Context, actor Actor, cond catalog.Condiment) (catalog.Condiment, error) {
	updated, err := s.condiments.Update(ctx, cond)
	if err != nil {
		return catalog.Condiment{}, err
	}
	s.afterWrite(ctx, OpCondimentUpdated, actor, audit.ActionUpdated, "condiment", updated.ID, updated.Name)
	return updated, nil
}

// ArchiveCondiment soft-deletes a condiment.
func (s *CatalogService) ArchiveCondiment(ctx context.Context, actor Actor, id string) error {
	if err := s.condiments.SetArchived(ctx, id, true); err != nil {
		return err
	}
	s.afterWrite(ctx, OpCondimentArchived, actor, audit.ActionArchived, "condiment", id, "")
	return nil
}

// CreateDietaryTag persists a new tag.
func (s *CatalogService) CreateDietaryTag(ctx context.Context, actor Actor, tag catalog.DietaryTag) (catalog.DietaryTag, error) {
	created, err := s.tags.Create(ctx, tag)
	if err != nil {
		return catalog.DietaryTag{}, err
	}
	s.afterWrite(ctx, OpDietaryTagCreated, actor, audit.ActionCreated, "dietary_tag", created.ID, created.Name)
	return created, nil
}

// DeleteDietaryTag removes a tag.
func (s *CatalogService) DeleteDietaryTag(ctx context.Context, actor Actor, id string) error {
	if err := s.tags.Delete(ctx, id); err != nil {
		return err
	}
	s.afterWrite(ctx, OpDietaryTagDeleted, actor, audit.ActionDeleted, "dietary_tag", id, "")
	return nil
}

// afterWrite runs the shared post-mutation sequence: invalidate the caches
// the operation stales, append the audit record, and publish a refresh
// notification. Audit and notification failures are logged, never
// propagated; the backend write already succeeded and must not be
// reported as failed.
func (s *CatalogService) afterWrite(ctx context.Context, op string, actor Actor, action audit.Action, entity, entityID, name string) {
	s.router.Invalidate(op)

	act := audit.Activity{
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
	}
	if name != "" {
		act.Details = map[string]string{"name": name}
	}
	if _, err := s.activities.Record(ctx, act); err != nil {
		s.logger.Error("failed to record activity",
			zap.String("operation", op),
			zap.String("entity", entity),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
	} else {
		s.router.Invalidate(OpActivityLogged)
	}

	s.notifier.Publish(op)
}
