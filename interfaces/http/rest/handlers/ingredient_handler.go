// Package handlers implements the REST endpoints of the admin API.
// Handlers decode and validate the request, call the application
// services, and wrap results in the shared response envelope.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"kusina-backend/application/services"
	"kusina-backend/domain/catalog"
	"kusina-backend/interfaces/http/rest/middleware"
	"kusina-backend/pkg/common"
	"kusina-backend/pkg/utils"
)

// IngredientHandler handles ingredient catalog requests.
type IngredientHandler struct {
	catalog *services.CatalogService
	logger  *zap.Logger
}

// NewIngredientHandler creates an ingredient handler.
func NewIngredientHandler(catalog *services.CatalogService, logger *zap.Logger) *IngredientHandler {
	return &IngredientHandler{catalog: catalog, logger: logger}
}

// IngredientRequest is the request body for creating or updating an
// ingredient.
type IngredientRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Category    string `json:"category" validate:"required,oneof=Go Grow Glow"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url,max=500"`
}

// List returns the ingredient catalog.
// GET /api/v1/ingredients?includeArchived=true
func (h *IngredientHandler) List(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("includeArchived") == "true"

	ingredients, err := h.catalog.GetAllIngredients(r.Context(), includeArchived)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondList(w, ingredients, &common.Meta{Count: len(ingredients)})
}

// Create adds an ingredient to the catalog.
// POST /api/v1/ingredients
func (h *IngredientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req IngredientRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondError(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	created, err := h.catalog.CreateIngredient(r.Context(), actorFrom(r), catalog.Ingredient{
		Name:        req.Name,
		Category:    catalog.FoodCategory(req.Category),
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, created)
}

// Update replaces an ingredient's editable fields.
// PUT /api/v1/ingredients/{id}
func (h *IngredientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req IngredientRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondError(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	updated, err := h.catalog.UpdateIngredient(r.Context(), actorFrom(r), catalog.Ingredient{
		ID:          chi.URLParam(r, "id"),
		Name:        req.Name,
		Category:    catalog.FoodCategory(req.Category),
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, updated)
}

// Archive soft-deletes an ingredient.
// DELETE /api/v1/ingredients/{id}
func (h *IngredientHandler) Archive(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.ArchiveIngredient(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": chi.URLParam(r, "id"), "status": "archived"})
}

// actorFrom maps the authenticated request actor to the service-layer
// Actor used for the audit trail.
func actorFrom(r *http.Request) services.Actor {
	actor, _ := middleware.ActorFromContext(r.Context())
	return services.Actor{ID: actor.ID, Name: actor.Email}
}
