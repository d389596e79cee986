package services

import (
	"go.uber.org/zap"

	"kusina-backend/infrastructure/cache"
)

// Write-operation names accepted by the invalidation router. Services
// reference these constants rather than raw strings, so a typo fails at
// compile time while the router itself stays forgiving at runtime.
const (
	OpIngredientCreated  = "ingredientCreated"
	OpIngredientUpdated  = "ingredientUpdated"
	OpIngredientArchived = "ingredientArchived"

	OpMealCreated  = "mealCreated"
	OpMealUpdated  = "mealUpdated"
	OpMealArchived = "mealArchived"

	OpCondimentCreated  = "condimentCreated"
	OpCondimentUpdated  = "condimentUpdated"
	OpCondimentArchived = "condimentArchived"

	OpDietaryTagCreated = "dietaryTagCreated"
	OpDietaryTagDeleted = "dietaryTagDeleted"

	OpVerificationRequested = "verificationRequested"
	OpVerificationReviewed  = "verificationReviewed"

	OpActivityLogged = "activityLogged"
)

// invalidationPatterns is the static invalidation map: which read-function
// key patterns go stale when each write operation lands. Patterns match
// the function-name portion of cache keys, exact or prefix, so one entry
// purges every parameterized variant of a read.
var invalidationPatterns = map[string][]string{
	OpIngredientCreated:  {"getAllIngredients", "getDashboardStats"},
	OpIngredientUpdated:  {"getAllIngredients", "getDashboardStats"},
	OpIngredientArchived: {"getAllIngredients", "getAllMeals", "getDashboardStats"},

	OpMealCreated:  {"getAllMeals", "getDashboardStats"},
	OpMealUpdated:  {"getAllMeals", "getDashboardStats"},
	OpMealArchived: {"getAllMeals", "getDashboardStats"},

	OpCondimentCreated:  {"getAllCondiments", "getDashboardStats"},
	OpCondimentUpdated:  {"getAllCondiments", "getDashboardStats"},
	OpCondimentArchived: {"getAllCondiments", "getAllMeals", "getDashboardStats"},

	OpDietaryTagCreated: {"getDietaryTags"},
	OpDietaryTagDeleted: {"getDietaryTags", "getAllMeals"},

	OpVerificationRequested: {"getPendingVerifications", "getCookProfile", "getDashboardStats"},
	OpVerificationReviewed:  {"getPendingVerifications", "getCookProfile", "getDashboardStats"},

	OpActivityLogged: {"getRecentActivities"},
}

// NewInvalidationRouter builds the router over the three volatility-class
// stores with the static operation table.
func NewInvalidationRouter(logger *zap.Logger, static, dynamic, user *cache.Store) *cache.Router {
	return cache.NewRouter(logger, invalidationPatterns, static, dynamic, user)
}
