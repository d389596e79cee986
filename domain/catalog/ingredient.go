// Package catalog holds the meal-curation domain model: ingredients,
// meals, condiments, and dietary tags, categorized Pinggang Pinoy style.
package catalog

import (
	"fmt"
	"time"
)

// FoodCategory classifies items by nutritional role.
type FoodCategory string

const (
	// CategoryGo covers energy-giving foods (rice, bread, root crops).
	CategoryGo FoodCategory = "Go"
	// CategoryGrow covers body-building foods (fish, meat, eggs, legumes).
	CategoryGrow FoodCategory = "Grow"
	// CategoryGlow covers protective foods (fruits and vegetables).
	CategoryGlow FoodCategory = "Glow"
)

// ValidCategory reports whether c is one of the known food categories.
func ValidCategory(c FoodCategory) bool {
	switch c {
	case CategoryGo, CategoryGrow, CategoryGlow:
		return true
	}
	return false
}

// Ingredient is a single reference-catalog ingredient.
type Ingredient struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Category    FoodCategory `json:"category"`
	Description string       `json:"description,omitempty"`
	ImageURL    string       `json:"image_url,omitempty"`
	Archived    bool         `json:"archived"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Validate checks the invariants that must hold before persisting.
func (i Ingredient) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("ingredient name is required")
	}
	if !ValidCategory(i.Category) {
		return fmt.Errorf("unknown food category %q", i.Category)
	}
	return nil
}
