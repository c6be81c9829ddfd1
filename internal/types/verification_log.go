package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// VerificationLog is the audit row written for every verification gate call,
// including the default-safe outcome taken when the AI service fails.
type VerificationLog struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ItemType        string         `gorm:"column:item_type;not null;index:idx_verification_item,priority:1" json:"item_type"`
	ItemID          uuid.UUID      `gorm:"type:uuid;not null;index:idx_verification_item,priority:2" json:"item_id"`
	IsVerified      bool           `gorm:"column:is_verified;not null" json:"is_verified"`
	Confidence      float64        `gorm:"column:confidence;not null" json:"confidence"`
	Reasoning       string         `gorm:"column:reasoning;type:text" json:"reasoning"`
	SuggestedAction string         `gorm:"column:suggested_action;not null" json:"suggested_action"`
	FactChecks      datatypes.JSON `gorm:"column:fact_checks" json:"fact_checks,omitempty"`
	AppliedOutcome  string         `gorm:"column:applied_outcome" json:"applied_outcome,omitempty"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (VerificationLog) TableName() string { return "verification_log" }
