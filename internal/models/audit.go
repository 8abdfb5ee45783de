// internal/models/audit.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AuditLog records an admin action against the dashboard: every mutating
// request and every product form submission outcome.
type AuditLog struct {
	BaseModel
	SessionID      *uuid.UUID     `json:"session_id" gorm:"type:uuid;index"`
	Action         string         `json:"action" gorm:"size:100;not null;index"`
	ResourceType   string         `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID     string         `json:"resource_id" gorm:"size:64;index"`
	Outcome        AuditOutcome   `json:"outcome" gorm:"type:varchar(20);index"`
	Message        string         `json:"message" gorm:"type:text"`
	UploadedAssets pq.StringArray `json:"uploaded_assets" gorm:"type:text[]"`
	NewValues      JSONB          `json:"new_values" gorm:"type:jsonb"`
	IPAddress      string         `json:"ip_address" gorm:"size:45"`
	UserAgent      string         `json:"user_agent" gorm:"type:text"`
}
