package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every read function the services memoize. Keep in sync with the
// Memoize names in the service constructors.
var readFunctions = map[string]bool{
	"getAllIngredients":       true,
	"getAllMeals":             true,
	"getAllCondiments":        true,
	"getDietaryTags":          true,
	"getDashboardStats":       true,
	"getRecentActivities":     true,
	"getPendingVerifications": true,
	"getCookProfile":          true,
}

func TestInvalidationPatternsReferenceRealReads(t *testing.T) {
	for op, patterns := range invalidationPatterns {
		assert.NotEmpty(t, patterns, "operation %s has no patterns", op)
		for _, p := range patterns {
			assert.True(t, readFunctions[p], "operation %s references unknown read %q", op, p)
		}
	}
}

func TestEveryOperationConstantRegistered(t *testing.T) {
	ops := []string{
		OpIngredientCreated, OpIngredientUpdated, OpIngredientArchived,
		OpMealCreated, OpMealUpdated, OpMealArchived,
		OpCondimentCreated, OpCondimentUpdated, OpCondimentArchived,
		OpDietaryTagCreated, OpDietaryTagDeleted,
		OpVerificationRequested, OpVerificationReviewed,
		OpActivityLogged,
	}
	for _, op := range ops {
		_, ok := invalidationPatterns[op]
		assert.True(t, ok, "operation %s missing from the invalidation table", op)
	}
}
