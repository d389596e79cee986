package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"kusina-backend/application/services"
	"kusina-backend/domain/verification"
	"kusina-backend/pkg/common"
	"kusina-backend/pkg/utils"
)

// VerificationHandler handles the cook verification workflow.
type VerificationHandler struct {
	verifications *services.VerificationService
	logger        *zap.Logger
}

// NewVerificationHandler creates a verification handler.
func NewVerificationHandler(verifications *services.VerificationService, logger *zap.Logger) *VerificationHandler {
	return &VerificationHandler{verifications: verifications, logger: logger}
}

// RequestVerificationRequest is the request body for submitting a cook
// verification.
type RequestVerificationRequest struct {
	CookID   string `json:"cook_id" validate:"required,uuid"`
	CookName string `json:"cook_name" validate:"required,min=1,max=120"`
}

// ReviewRequest is the request body for reviewing a verification.
type ReviewRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Notes    string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ListPending returns verifications awaiting review.
// GET /api/v1/verifications/pending
func (h *VerificationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.verifications.GetPendingVerifications(r.Context())
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondList(w, pending, &common.Meta{Count: len(pending)})
}

// CookProfile returns the verification state for one cook.
// GET /api/v1/verifications/cooks/{cookID}
func (h *VerificationHandler) CookProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.verifications.GetCookProfile(r.Context(), chi.URLParam(r, "cookID"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, profile)
}

// Request submits a new verification for a cook.
// POST /api/v1/verifications
func (h *VerificationHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req RequestVerificationRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondError(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	created, err := h.verifications.RequestVerification(r.Context(), req.CookID, req.CookName)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, created)
}

// Review applies an approve or reject decision.
// POST /api/v1/verifications/{id}/review
func (h *VerificationHandler) Review(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondError(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	reviewed, err := h.verifications.ReviewVerification(
		r.Context(),
		actorFrom(r),
		chi.URLParam(r, "id"),
		verification.Status(req.Decision),
		req.Notes,
	)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, reviewed)
}
