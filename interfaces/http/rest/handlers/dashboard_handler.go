package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"kusina-backend/application/services"
	"kusina-backend/domain/audit"
	"kusina-backend/pkg/common"
	"kusina-backend/pkg/utils"
)

// DashboardHandler serves the admin landing page data.
type DashboardHandler struct {
	dashboard *services.DashboardService
	logger    *zap.Logger
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(dashboard *services.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// Stats returns aggregate catalog counts.
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.GetDashboardStats(r.Context())
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, stats)
}

// Activities returns the recent activity feed.
// GET /api/v1/dashboard/activities?limit=20
func (h *DashboardHandler) Activities(w http.ResponseWriter, r *http.Request) {
	limit := common.QueryInt(r, "limit", 20, 100)

	activities, err := h.dashboard.GetRecentActivities(r.Context(), limit)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondList(w, activities, &common.Meta{Count: len(activities), Limit: limit})
}

// LogActivityRequest is the request body for a free-form audit record,
// used by UI actions that happen outside the catalog services.
type LogActivityRequest struct {
	Action   string            `json:"action" validate:"required,oneof=created updated archived deleted reviewed"`
	Entity   string            `json:"entity" validate:"required,min=1,max=60"`
	EntityID string            `json:"entity_id,omitempty" validate:"omitempty,max=60"`
	Details  map[string]string `json:"details,omitempty" validate:"omitempty,max=10"`
}

// LogActivity appends an audit record on behalf of the authenticated
// actor.
// POST /api/v1/dashboard/activities
func (h *DashboardHandler) LogActivity(w http.ResponseWriter, r *http.Request) {
	var req LogActivityRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondError(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	actor := actorFrom(r)
	recorded, err := h.dashboard.LogActivity(r.Context(), audit.Activity{
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Action:    audit.Action(req.Action),
		Entity:    req.Entity,
		EntityID:  req.EntityID,
		Details:   req.Details,
	})
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, recorded)
}
