package activity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreate    Action = "CREATE"
	ActionUpdate    Action = "UPDATE"
	ActionCancelled Action = "CANCELLED"
	ActionDelete    Action = "DELETE"
	ActionLogin     Action = "LOGIN"
	ActionSystem    Action = "SYSTEM"
)

// Activity is append-only: rows are inserted and read, never updated.
type Activity struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID   *uuid.UUID      `gorm:"type:uuid;index:idx_activity_company_created"`
	ActorID     *uuid.UUID      `gorm:"type:uuid"`
	ActorRole   string          `gorm:"type:varchar(20)"`
	Action      Action          `gorm:"type:varchar(20);not null"`
	TargetType  string          `gorm:"type:varchar(40);not null"`
	TargetID    string          `gorm:"type:varchar(64)"`
	Description string          `gorm:"type:text;not null"`
	Metadata    json.RawMessage `gorm:"type:jsonb"`
	CreatedAt   time.Time       `gorm:"index:idx_activity_company_created"`
}

func (Activity) TableName() string {
	return "activities"
}
