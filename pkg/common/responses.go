// Package common provides the shared HTTP response envelope and
// request parsing helpers used by every REST handler.
package common

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	apperrors "kusina-backend/pkg/errors"
)

// APIResponse is the envelope every endpoint returns. Data is set on
// success, Error on failure; the two are mutually exclusive.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// APIError carries the machine-readable error type alongside the
// human-readable message.
type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Meta holds optional list metadata such as result counts.
type Meta struct {
	Count int `json:"count,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// RespondJSON writes a success envelope with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	writeEnvelope(w, status, APIResponse{Success: true, Data: data})
}

// RespondList writes a success envelope with list metadata attached.
func RespondList(w http.ResponseWriter, data interface{}, meta *Meta) {
	writeEnvelope(w, http.StatusOK, APIResponse{Success: true, Data: data, Meta: meta})
}

// RespondError maps err to its HTTP status and writes a failure
// envelope. Unrecognized errors become an opaque 500 so internal
// details never leak to clients.
func RespondError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	apiErr := &APIError{Type: string(apperrors.ErrorTypeInternal), Message: "internal server error"}
	if appErr := apperrors.GetAppError(err); appErr != nil && status < http.StatusInternalServerError {
		apiErr = &APIError{Type: string(appErr.Type), Message: appErr.Message}
	}
	writeEnvelope(w, status, APIResponse{Success: false, Error: apiErr})
}

func writeEnvelope(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

// DecodeJSON parses the request body into dst, rejecting unknown
// fields so typos in client payloads surface as 400s.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid JSON body")
	}
	return nil
}

// QueryInt reads an integer query parameter, clamping to [1, max].
// Missing or malformed values fall back to def.
func QueryInt(r *http.Request, name string, def, max int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
