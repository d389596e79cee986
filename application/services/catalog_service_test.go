package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kusina-backend/domain/catalog"
)

func newCatalogFixture() (*CatalogService, *fakeCatalogRepo, *fakeMealRepo, *fakeCondimentRepo, *fakeTagRepo, *fakeActivityRepo) {
	ingredients := &fakeCatalogRepo{}
	meals := &fakeMealRepo{}
	condiments := &fakeCondimentRepo{}
	tags := &fakeTagRepo{}
	activities := &fakeActivityRepo{}

	static, _, _, router, notifier := testStores()
	svc := NewCatalogService(ingredients, meals, condiments, tags, activities, static, router, notifier, zap.NewNop())
	return svc, ingredients, meals, condiments, tags, activities
}

func TestGetAllMealsServedFromCache(t *testing.T) {
	svc, _, meals, _, _, _ := newCatalogFixture()
	meals.meals = []catalog.Meal{{ID: "meal-1", Name: "Sinigang", Category: catalog.CategoryGrow}}
	ctx := context.Background()

	first, err := svc.GetAllMeals(ctx, catalog.MealFilter{})
	require.NoError(t, err)
	second, err := svc.GetAllMeals(ctx, catalog.MealFilter{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, meals.lists, "second read must come from cache")
}

func TestGetAllMealsFilterVariantsCachedSeparately(t *testing.T) {
	svc, _, meals, _, _, _ := newCatalogFixture()
	meals.meals = []catalog.Meal{
		{ID: "meal-1", Name: "Sinigang", Category: catalog.CategoryGrow},
		{ID: "meal-2", Name: "Ensaladang Talong", Category: catalog.CategoryGlow},
	}
	ctx := context.Background()

	all, err := svc.GetAllMeals(ctx, catalog.MealFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	glow, err := svc.GetAllMeals(ctx, catalog.MealFilter{Category: catalog.CategoryGlow})
	require.NoError(t, err)
	assert.Len(t, glow, 1)

	assert.Equal(t, 2, meals.lists, "each filter variant is a distinct cache entry")

	// Both variants now answer from cache.
	_, err = svc.GetAllMeals(ctx, catalog.MealFilter{})
	require.NoError(t, err)
	_, err = svc.GetAllMeals(ctx, catalog.MealFilter{Category: catalog.CategoryGlow})
	require.NoError(t, err)
	assert.Equal(t, 2, meals.lists)
}

func TestCreateMealInvalidatesMealListings(t *testing.T) {
	svc, _, meals, _, _, activities := newCatalogFixture()
	ctx := context.Background()
	actor := Actor{ID: "admin-1", Name: "Maria"}

	before, err := svc.GetAllMeals(ctx, catalog.MealFilter{})
	require.NoError(t, err)
	assert.Empty(t, before)

	created, err := svc.CreateMeal(ctx, actor, catalog.Meal{Name: "Adobo", Category: catalog.CategoryGrow})
	require.NoError(t, err)
	assert.Equal(t, "admin-1", created.CreatedBy)

	after, err := svc.GetAllMeals(ctx, catalog.MealFilter{})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "Adobo", after[0].Name)
	assert.Equal(t, 2, meals.lists, "listing must refetch after the write")

	require.Len(t, activities.activities, 1)
	assert.Equal(t, "meal", activities.activities[0].Entity)
	assert.Equal(t, "Maria", activities.activities[0].ActorName)
}

func TestCreateMealDoesNotInvalidateIngredients(t *testing.T) {
	svc, ingredients, _, _, _, _ := newCatalogFixture()
	ctx := context.Background()

	_, err := svc.GetAllIngredients(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 1, ingredients.ingredientLists)

	_, err = svc.CreateMeal(ctx, Actor{ID: "admin-1"}, catalog.Meal{Name: "Adobo", Category: catalog.CategoryGrow})
	require.NoError(t, err)

	_, err = svc.GetAllIngredients(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, ingredients.ingredientLists, "ingredient cache survives a meal write")
}

func TestArchiveIngredientInvalidatesMealsToo(t *testing.T) {
	svc, ingredients, meals, _, _, _ := newCatalogFixture()
	ingredients.ingredients = []catalog.Ingredient{{ID: "ing-1", Name: "Kangkong", Category: catalog.CategoryGlow}}
	ctx := context.Background()

	_, err := svc.GetAllIngredients(ctx, false)
	require.NoError(t, err)
	_, err = svc.GetAllMeals(ctx, catalog.MealFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, meals.lists)

	require.NoError(t, svc.ArchiveIngredient(ctx, Actor{ID: "admin-1"}, "ing-1"))

	listed, err := svc.GetAllIngredients(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = svc.GetAllMeals(ctx, catalog.MealFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, meals.lists, "meal listings may embed ingredient names and must refetch")
}

func TestCreateIngredientFailureLeavesCacheIntact(t *testing.T) {
	svc, ingredients, _, _, _, activities := newCatalogFixture()
	ingredients.ingredients = []catalog.Ingredient{{ID: "ing-1", Name: "Malunggay", Category: catalog.CategoryGlow}}
	ctx := context.Background()

	cached, err := svc.GetAllIngredients(ctx, false)
	require.NoError(t, err)
	require.Len(t, cached, 1)

	ingredients.failNextCreate = true
	_, err = svc.CreateIngredient(ctx, Actor{ID: "admin-1"}, catalog.Ingredient{Name: "Sitaw", Category: catalog.CategoryGlow})
	require.Error(t, err)

	again, err := svc.GetAllIngredients(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, cached, again)
	assert.Equal(t, 1, ingredients.ingredientLists, "failed write must not purge the cache")
	assert.Empty(t, activities.activities, "failed write records no activity")
}

func TestAuditFailureDoesNotFailWrite(t *testing.T) {
	svc, _, _, _, _, activities := newCatalogFixture()
	activities.failRecord = true
	ctx := context.Background()

	created, err := svc.CreateMeal(ctx, Actor{ID: "admin-1"}, catalog.Meal{Name: "Adobo", Category: catalog.CategoryGrow})
	require.NoError(t, err, "audit trail is best effort")
	assert.NotEmpty(t, created.ID)
}

func TestWritePublishesOperation(t *testing.T) {
	svc, _, _, _, _, _ := newCatalogFixture()

	events, cancel := svc.notifier.Subscribe()
	defer cancel()

	_, err := svc.CreateCondiment(context.Background(), Actor{ID: "admin-1"}, catalog.Condiment{Name: "Patis"})
	require.NoError(t, err)

	select {
	case op := <-events:
		assert.Equal(t, OpCondimentCreated, op)
	default:
		t.Fatal("expected a published operation")
	}
}

func TestDeleteDietaryTagInvalidatesTagsAndMeals(t *testing.T) {
	svc, _, meals, _, tags, _ := newCatalogFixture()
	tags.tags = []catalog.DietaryTag{{ID: "tag-1", Name: "Halal", Slug: "halal"}}
	ctx := context.Background()

	_, err := svc.GetDietaryTags(ctx)
	require.NoError(t, err)
	_, err = svc.GetAllMeals(ctx, catalog.MealFilter{})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDietaryTag(ctx, Actor{ID: "admin-1"}, "tag-1"))

	listed, err := svc.GetDietaryTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Equal(t, 2, tags.lists)

	_, err = svc.GetAllMeals(ctx, catalog.MealFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, meals.lists, "meals referencing the tag must refetch")
}
