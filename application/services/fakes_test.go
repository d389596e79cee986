package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"kusina-backend/domain/audit"
	"kusina-backend/domain/catalog"
	"kusina-backend/domain/verification"
	"kusina-backend/infrastructure/cache"
	"kusina-backend/pkg/errors"
	"kusina-backend/pkg/notify"
)

// fakeCatalogRepo backs all four catalog repositories with in-memory
// slices and counts List calls so tests can observe cache hits.
type fakeCatalogRepo struct {
	mu          sync.Mutex
	ingredients []catalog.Ingredient
	meals       []catalog.Meal
	condiments  []catalog.Condiment
	tags        []catalog.DietaryTag

	ingredientLists int
	mealLists       int
	condimentLists  int
	tagLists        int

	failNextCreate bool
}

func (f *fakeCatalogRepo) List(ctx context.Context, includeArchived bool) ([]catalog.Ingredient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ingredientLists++
	out := make([]catalog.Ingredient, 0, len(f.ingredients))
	for _, ing := range f.ingredients {
		if includeArchived || !ing.Archived {
			out = append(out, ing)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetByID(ctx context.Context, id string) (catalog.Ingredient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ing := range f.ingredients {
		if ing.ID == id {
			return ing, nil
		}
	}
	return catalog.Ingredient{}, errors.NewNotFoundError("ingredient")
}

func (f *fakeCatalogRepo) Create(ctx context.Context, ing catalog.Ingredient) (catalog.Ingredient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNextCreate {
		f.failNextCreate = false
		return catalog.Ingredient{}, errors.NewDatabaseError("insert", fmt.Errorf("connection reset"))
	}
	ing.ID = fmt.Sprintf("ing-%d", len(f.ingredients)+1)
	ing.CreatedAt = time.Now().UTC()
	f.ingredients = append(f.ingredients, ing)
	return ing, nil
}

func (f *fakeCatalogRepo) Update(ctx context.Context, ing catalog.Ingredient) (catalog.Ingredient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.ingredients {
		if f.ingredients[i].ID == ing.ID {
			f.ingredients[i] = ing
			return ing, nil
		}
	}
	return catalog.Ingredient{}, errors.NewNotFoundError("ingredient")
}

func (f *fakeCatalogRepo) SetArchived(ctx context.Context, id string, archived bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.ingredients {
		if f.ingredients[i].ID == id {
			f.ingredients[i].Archived = archived
			return nil
		}
	}
	return errors.NewNotFoundError("ingredient")
}

// fakeMealRepo implements ports.MealRepository.
type fakeMealRepo struct {
	mu    sync.Mutex
	meals []catalog.Meal
	lists int
}

func (f *fakeMealRepo) List(ctx context.Context, filter catalog.MealFilter) ([]catalog.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	out := make([]catalog.Meal, 0, len(f.meals))
	for _, m := range f.meals {
		if m.Archived && !filter.IncludeArchived {
			continue
		}
		if filter.Category != "" && m.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMealRepo) GetByID(ctx context.Context, id string) (catalog.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.meals {
		if m.ID == id {
			return m, nil
		}
	}
	return catalog.Meal{}, errors.NewNotFoundError("meal")
}

func (f *fakeMealRepo) Create(ctx context.Context, meal catalog.Meal) (catalog.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	meal.ID = fmt.Sprintf("meal-%d", len(f.meals)+1)
	f.meals = append(f.meals, meal)
	return meal, nil
}

func (f *fakeMealRepo) Update(ctx context.Context, meal catalog.Meal) (catalog.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.meals {
		if f.meals[i].ID == meal.ID {
			f.meals[i] = meal
			return meal, nil
		}
	}
	return catalog.Meal{}, errors.NewNotFoundError("meal")
}

func (f *fakeMealRepo) SetArchived(ctx context.Context, id string, archived bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.meals {
		if f.meals[i].ID == id {
			f.meals[i].Archived = archived
			return nil
		}
	}
	return errors.NewNotFoundError("meal")
}

// fakeCondimentRepo implements ports.CondimentRepository.
type fakeCondimentRepo struct {
	mu         sync.Mutex
	condiments []catalog.Condiment
	lists      int
}

func (f *fakeCondimentRepo) List(ctx context.Context, includeArchived bool) ([]catalog.Condiment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	out := make([]catalog.Condiment, 0, len(f.condiments))
	for _, c := range f.condiments {
		if includeArchived || !c.Archived {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCondimentRepo) Create(ctx context.Context, c catalog.Condiment) (catalog.Condiment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = fmt.Sprintf("cond-%d", len(f.condiments)+1)
	f.condiments = append(f.condiments, c)
	return c, nil
}

func (f *fakeCondimentRepo) Update(ctx context.Context, c catalog.Condiment) (catalog.Condiment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.condiments {
		if f.condiments[i].ID == c.ID {
			f.condiments[i] = c
			return c, nil
		}
	}
	return catalog.Condiment{}, errors.NewNotFoundError("condiment")
}

func (f *fakeCondimentRepo) SetArchived(ctx context.Context, id string, archived bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.condiments {
		if f.condiments[i].ID == id {
			f.condiments[i].Archived = archived
			return nil
		}
	}
	return errors.NewNotFoundError("condiment")
}

// fakeTagRepo implements ports.DietaryTagRepository.
type fakeTagRepo struct {
	mu    sync.Mutex
	tags  []catalog.DietaryTag
	lists int
}

func (f *fakeTagRepo) List(ctx context.Context) ([]catalog.DietaryTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	return append([]catalog.DietaryTag(nil), f.tags...), nil
}

func (f *fakeTagRepo) Create(ctx context.Context, tag catalog.DietaryTag) (catalog.DietaryTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tag.ID = fmt.Sprintf("tag-%d", len(f.tags)+1)
	f.tags = append(f.tags, tag)
	return tag, nil
}

func (f *fakeTagRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tags {
		if f.tags[i].ID == id {
			f.tags = append(f.tags[:i], f.tags[i+1:]...)
			return nil
		}
	}
	return errors.NewNotFoundError("dietary tag")
}

// fakeActivityRepo implements ports.ActivityRepository.
type fakeActivityRepo struct {
	mu         sync.Mutex
	activities []audit.Activity
	failRecord bool
}

func (f *fakeActivityRepo) ListRecent(ctx context.Context, limit int) ([]audit.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.activities) {
		limit = len(f.activities)
	}
	out := make([]audit.Activity, 0, limit)
	for i := len(f.activities) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.activities[i])
	}
	return out, nil
}

func (f *fakeActivityRepo) Record(ctx context.Context, act audit.Activity) (audit.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRecord {
		return audit.Activity{}, errors.NewDatabaseError("insert", fmt.Errorf("connection reset"))
	}
	act.ID = fmt.Sprintf("act-%d", len(f.activities)+1)
	act.CreatedAt = time.Now().UTC()
	f.activities = append(f.activities, act)
	return act, nil
}

// fakeVerificationRepo implements ports.VerificationRepository.
type fakeVerificationRepo struct {
	mu            sync.Mutex
	verifications []verification.CookVerification
	pendingLists  int
}

func (f *fakeVerificationRepo) ListPending(ctx context.Context) ([]verification.CookVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pendingLists++
	out := make([]verification.CookVerification, 0)
	for _, v := range f.verifications {
		if v.Status == verification.StatusPending {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVerificationRepo) GetByID(ctx context.Context, id string) (verification.CookVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.verifications {
		if v.ID == id {
			return v, nil
		}
	}
	return verification.CookVerification{}, errors.NewNotFoundError("verification")
}

func (f *fakeVerificationRepo) GetByCookID(ctx context.Context, cookID string) (verification.CookVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.verifications) - 1; i >= 0; i-- {
		if f.verifications[i].CookID == cookID {
			return f.verifications[i], nil
		}
	}
	return verification.CookVerification{}, errors.NewNotFoundError("verification")
}

func (f *fakeVerificationRepo) Create(ctx context.Context, v verification.CookVerification) (verification.CookVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v.ID = fmt.Sprintf("ver-%d", len(f.verifications)+1)
	v.Status = verification.StatusPending
	v.SubmittedAt = time.Now().UTC()
	f.verifications = append(f.verifications, v)
	return v, nil
}

func (f *fakeVerificationRepo) Update(ctx context.Context, v verification.CookVerification) (verification.CookVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.verifications {
		if f.verifications[i].ID == v.ID {
			f.verifications[i] = v
			return v, nil
		}
	}
	return verification.CookVerification{}, errors.NewNotFoundError("verification")
}

// fakeStatsRepo implements ports.StatsRepository.
type fakeStatsRepo struct {
	mu    sync.Mutex
	calls int
	stats catalog.DashboardStats
}

func (f *fakeStatsRepo) DashboardStats(ctx context.Context) (catalog.DashboardStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	s := f.stats
	s.GeneratedAt = time.Now().UTC()
	return s, nil
}

// testStores builds the three volatility-class stores plus the router
// and notifier a service under test needs.
func testStores() (static, dynamic, user *cache.Store, router *cache.Router, notifier *notify.Notifier) {
	static = cache.NewStore("static", 100, time.Hour)
	dynamic = cache.NewStore("dynamic", 100, 5*time.Minute)
	user = cache.NewStore("user", 100, 15*time.Minute)
	router = NewInvalidationRouter(zap.NewNop(), static, dynamic, user)
	notifier = notify.New()
	return static, dynamic, user, router, notifier
}
