// Package verification models the cook verification workflow: cooks apply,
// admins review, and only verified cooks can publish meals.
package verification

import (
	"fmt"
	"time"
)

// Status is the review state of a cook verification request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// CookVerification is one verification request and its review outcome.
type CookVerification struct {
	ID          string     `json:"id"`
	CookID      string     `json:"cook_id"`
	CookName    string     `json:"cook_name,omitempty"`
	Status      Status     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	ReviewedBy  string     `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	SubmittedAt time.Time  `json:"submitted_at"`
}

// Review applies a reviewer decision. Only pending requests can be
// reviewed, and the decision must be terminal.
func (v *CookVerification) Review(reviewerID string, decision Status, notes string, at time.Time) error {
	if v.Status != StatusPending {
		return fmt.Errorf("verification %s already %s", v.ID, v.Status)
	}
	if decision != StatusApproved && decision != StatusRejected {
		return fmt.Errorf("invalid review decision %q", decision)
	}
	v.Status = decision
	v.ReviewedBy = reviewerID
	v.Notes = notes
	v.ReviewedAt = &at
	return nil
}
