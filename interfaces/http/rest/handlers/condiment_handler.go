package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"kusina-backend/application/services"
	"kusina-backend/domain/catalog"
	"kusina-backend/pkg/common"
	"kusina-backend/pkg/utils"
)

// CondimentHandler handles condiment and dietary tag requests. The two
// share a handler because tags are managed from the same admin screen.
type CondimentHandler struct {
	catalog *services.CatalogService
	logger  *zap.Logger
}

// NewCondimentHandler creates a condiment handler.
func NewCondimentHandler(catalog *services.CatalogService, logger *zap.Logger) *CondimentHandler {
	return &CondimentHandler{catalog: catalog, logger: logger}
}

// CondimentRequest is the request body for creating or updating a
// condiment.
type CondimentRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url,max=500"`
}

// DietaryTagRequest is the request body for creating a dietary tag.
type DietaryTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=60"`
	Slug string `json:"slug" validate:"required,min=1,max=60,lowercase"`
}

// List returns the condiment catalog.
// GET /api/v1/condiments?includeArchived=true
func (h *CondimentHandler) List(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("includeArchived") == "true"

	condiments, err := h.catalog.GetAllCondiments(r.Context(), includeArchived)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondList(w, condiments, &common.Meta{Count: len(condiments)})
}

// Create adds a condiment.
// POST /api/v1/condiments
func (h *CondimentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CondimentRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondError(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	created, err := h.catalog.CreateCondiment(r.Context(), actorFrom(r), catalog.Condiment{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, created)
}

// Update replaces a condiment's editable fields.
// PUT /api/v1/condiments/{id}
func (h *CondimentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req CondimentRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondError(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	updated, err := h.catalog.UpdateCondiment(r.Context(), actorFrom(r), catalog.Condiment{
		ID:          chi.URLParam(r, "id"),
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, updated)
}

// Archive soft-deletes a condiment.
// DELETE /api/v1/condiments/{id}
func (h *CondimentHandler) Archive(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.ArchiveCondiment(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": chi.URLParam(r, "id"), "status": "archived"})
}

// ListTags returns all dietary tags.
// GET /api/v1/dietary-tags
func (h *CondimentHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.catalog.GetDietaryTags(r.Context())
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondList(w, tags, &common.Meta{Count: len(tags)})
}

// CreateTag adds a dietary tag.
// POST /api/v1/dietary-tags
func (h *CondimentHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req DietaryTagRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondError(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	created, err := h.catalog.CreateDietaryTag(r.Context(), actorFrom(r), catalog.DietaryTag{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, created)
}

// DeleteTag removes a dietary tag. Tags are hard-deleted since meals
// only reference them by ID and the reference list is rebuilt on read.
// DELETE /api/v1/dietary-tags/{id}
func (h *CondimentHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteDietaryTag(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": chi.URLParam(r, "id"), "status": "deleted"})
}
