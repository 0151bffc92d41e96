package activity

import (
	"encoding/json"
	"time"
)

type ActivityResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id,omitempty"`
	ActorID     string          `json:"actor_id,omitempty"`
	ActorRole   string          `json:"actor_role,omitempty"`
	Action      string          `json:"action"`
	TargetType  string          `json:"target_type"`
	TargetID    string          `json:"target_id,omitempty"`
	Description string          `json:"description"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
