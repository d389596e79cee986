package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"kusina-backend/application/services"
	"kusina-backend/domain/catalog"
	"kusina-backend/pkg/common"
	apperrors "kusina-backend/pkg/errors"
	"kusina-backend/pkg/utils"
)

// MealHandler handles curated meal requests.
type MealHandler struct {
	catalog *services.CatalogService
	logger  *zap.Logger
}

// NewMealHandler creates a meal handler.
func NewMealHandler(catalog *services.CatalogService, logger *zap.Logger) *MealHandler {
	return &MealHandler{catalog: catalog, logger: logger}
}

// MealRequest is the request body for creating or updating a meal.
type MealRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=120"`
	Category      string   `json:"category" validate:"required,oneof=Go Grow Glow"`
	Description   string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	IngredientIDs []string `json:"ingredient_ids,omitempty" validate:"omitempty,max=50,dive,uuid"`
	CondimentIDs  []string `json:"condiment_ids,omitempty" validate:"omitempty,max=20,dive,uuid"`
	TagIDs        []string `json:"tag_ids,omitempty" validate:"omitempty,max=20,dive,uuid"`
	ImageURL      string   `json:"image_url,omitempty" validate:"omitempty,url,max=500"`
	Published     bool     `json:"published"`
}

func (req MealRequest) toMeal(id string) catalog.Meal {
	return catalog.Meal{
		ID:            id,
		Name:          req.Name,
		Category:      catalog.FoodCategory(req.Category),
		Description:   req.Description,
		IngredientIDs: req.IngredientIDs,
		CondimentIDs:  req.CondimentIDs,
		TagIDs:        req.TagIDs,
		ImageURL:      req.ImageURL,
		Published:     req.Published,
	}
}

// List returns meals matching the query filter.
// GET /api/v1/meals?category=Go&search=sinigang&includeArchived=true
func (h *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := catalog.MealFilter{
		Category:        catalog.FoodCategory(q.Get("category")),
		Search:          q.Get("search"),
		IncludeArchived: q.Get("includeArchived") == "true",
	}
	if filter.Category != "" && !catalog.ValidCategory(filter.Category) {
		common.RespondError(w, apperrors.NewValidationError("category must be one of: Go Grow Glow"))
		return
	}

	meals, err := h.catalog.GetAllMeals(r.Context(), filter)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondList(w, meals, &common.Meta{Count: len(meals)})
}

// Get returns a single meal by ID.
// GET /api/v1/meals/{id}
func (h *MealHandler) Get(w http.ResponseWriter, r *http.Request) {
	meal, err := h.catalog.GetMeal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, meal)
}

// Create adds a curated meal.
// POST /api/v1/meals
func (h *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req MealRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondError(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	created, err := h.catalog.CreateMeal(r.Context(), actorFrom(r), req.toMeal(""))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, created)
}

// Update replaces a meal's editable fields.
// PUT /api/v1/meals/{id}
func (h *MealHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req MealRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondError(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	updated, err := h.catalog.UpdateMeal(r.Context(), actorFrom(r), req.toMeal(chi.URLParam(r, "id")))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, updated)
}

// Archive soft-deletes a meal.
// DELETE /api/v1/meals/{id}
func (h *MealHandler) Archive(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.ArchiveMeal(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": chi.URLParam(r, "id"), "status": "archived"})
}
