package events

import "time"

const CompanyRoleChangedTopic = "company.role.changed.v1"

const (
	RoleGranted = "role_granted"
	RoleRevoked = "role_revoked"
)

type CompanyRoleChangedEvent struct {
	EventType  string    `json:"event_type"`
	CompanyID  string    `json:"company_id"`
	UserID     string    `json:"user_id"`
	Role       string    `json:"role"`
	ActorID    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
