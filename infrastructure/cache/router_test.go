package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*Router, *Store, *Store) {
	t.Helper()
	static := NewStore("static", 10, time.Minute)
	dynamic := NewStore("dynamic", 10, time.Minute)
	ops := map[string][]string{
		"mealCreated": {"getAllMeals", "getDashboardStats"},
	}
	return NewRouter(zap.NewNop(), ops, static, dynamic), static, dynamic
}

func TestRouterInvalidatePurgesMatchingKeysAcrossStores(t *testing.T) {
	r, static, dynamic := newTestRouter(t)

	static.Set("getAllMeals:[]", 1)
	static.Set("getRecentActivities:[]", 2)
	dynamic.Set("getDashboardStats:[]", 3)

	r.Invalidate("mealCreated")

	_, ok := static.Get("getAllMeals:[]")
	assert.False(t, ok)
	_, ok = dynamic.Get("getDashboardStats:[]")
	assert.False(t, ok)
	_, ok = static.Get("getRecentActivities:[]")
	assert.True(t, ok, "keys outside the operation's patterns must survive")
}

func TestRouterUnknownOperationIsNoOp(t *testing.T) {
	r, static, _ := newTestRouter(t)
	static.Set("getAllMeals:[]", 1)

	// Must neither panic nor purge anything.
	r.Invalidate("mealsCreatedTypo")

	_, ok := static.Get("getAllMeals:[]")
	assert.True(t, ok)
}

func TestRouterClearAll(t *testing.T) {
	r, static, dynamic := newTestRouter(t)
	static.Set("a", 1)
	dynamic.Set("b", 2)

	r.ClearAll()

	assert.Equal(t, 0, static.Len())
	assert.Equal(t, 0, dynamic.Len())
}

func TestRouterForceRefresh(t *testing.T) {
	r, static, dynamic := newTestRouter(t)
	static.Set("getAllMeals:[]", 1)
	dynamic.Set("getAllMeals:[]", 2)
	static.Set("getDietaryTags:[]", 3)

	removed := r.ForceRefresh([]string{"getAllMeals"})

	assert.Equal(t, 2, removed)
	_, ok := static.Get("getDietaryTags:[]")
	assert.True(t, ok)
}
