package catalog

import (
	"fmt"
	"time"
)

// Meal is a curated dish assembled from catalog ingredients and condiments.
type Meal struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     FoodCategory `json:"category"`
	Description  string       `json:"description,omitempty"`
	IngredientIDs []string    `json:"ingredient_ids,omitempty"`
	CondimentIDs  []string    `json:"condiment_ids,omitempty"`
	TagIDs        []string    `json:"tag_ids,omitempty"`
	ImageURL     string       `json:"image_url,omitempty"`
	Published    bool         `json:"published"`
	Archived     bool         `json:"archived"`
	CreatedBy    string       `json:"created_by,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Validate checks the invariants that must hold before persisting.
func (m Meal) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("meal name is required")
	}
	if !ValidCategory(m.Category) {
		return fmt.Errorf("unknown food category %q", m.Category)
	}
	if m.Published && len(m.IngredientIDs) == 0 {
		return fmt.Errorf("a published meal needs at least one ingredient")
	}
	return nil
}

// MealFilter narrows meal listings. A zero filter matches everything.
type MealFilter struct {
	Category        FoodCategory `json:"category,omitempty"`
	Search          string       `json:"search,omitempty"`
	IncludeArchived bool         `json:"include_archived,omitempty"`
}

// IsZero reports whether the filter applies no constraints.
func (f MealFilter) IsZero() bool {
	return f == MealFilter{}
}
