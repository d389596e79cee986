package catalog

import (
	"fmt"
	"time"
)

// Condiment is a flavoring item tracked separately from ingredients so
// nutritionists can exclude it from the Go/Grow/Glow plate balance.
type Condiment struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks the invariants that must hold before persisting.
func (c Condiment) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("condiment name is required")
	}
	return nil
}

// DietaryTag labels meals with dietary properties (halal, vegetarian,
// low-sodium, and so on).
type DietaryTag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the invariants that must hold before persisting.
func (t DietaryTag) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("dietary tag name is required")
	}
	if t.Slug == "" {
		return fmt.Errorf("dietary tag slug is required")
	}
	return nil
}

// DashboardStats aggregates catalog counts for the admin landing page.
type DashboardStats struct {
	TotalMeals          int            `json:"total_meals"`
	PublishedMeals      int            `json:"published_meals"`
	TotalIngredients    int            `json:"total_ingredients"`
	TotalCondiments     int            `json:"total_condiments"`
	MealsByCategory     map[string]int `json:"meals_by_category"`
	PendingVerifications int           `json:"pending_verifications"`
	GeneratedAt         time.Time      `json:"generated_at"`
}
