package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLogActivityRejectsUnknownAction(t *testing.T) {
	handler := NewDashboardHandler(nil, zap.NewNop())

	body := strings.NewReader(`{"action":"exploded","entity":"meal"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/activities", body)
	rec := httptest.NewRecorder()
	handler.LogActivity(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "action")
}

func TestLogActivityRejectsMissingEntity(t *testing.T) {
	handler := NewDashboardHandler(nil, zap.NewNop())

	body := strings.NewReader(`{"action":"created"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/activities", body)
	rec := httptest.NewRecorder()
	handler.LogActivity(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
