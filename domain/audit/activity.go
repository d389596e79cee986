// Package audit records the admin dashboard's activity trail.
package audit

import "time"

// Action identifies what an actor did to an entity.
type Action string

const (
	ActionCreated  Action = "created"
	ActionUpdated  Action = "updated"
	ActionArchived Action = "archived"
	ActionDeleted  Action = "deleted"
	ActionReviewed Action = "reviewed"
)

// Activity is one audit-trail record. Details carries free-form context
// such as changed field names.
type Activity struct {
	ID        string            `json:"id"`
	ActorID   string            `json:"actor_id"`
	ActorName string            `json:"actor_name,omitempty"`
	Action    Action            `json:"action"`
	Entity    string            `json:"entity"`
	EntityID  string            `json:"entity_id"`
	Details   map[string]string `json:"details,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
