package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PromiseStatusPendingVerification = "PENDING_VERIFICATION"
	PromiseStatusFulfilled           = "FULFILLED"
	PromiseStatusInProgress          = "IN_PROGRESS"
	PromiseStatusBroken              = "BROKEN"
	PromiseStatusRejected            = "REJECTED"
)

// Promise is a campaign promise or claimed achievement. User-submitted rows
// start in PENDING_VERIFICATION and move through the verification gate.
type Promise struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PoliticianID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"politician_id"`
	Politician    *Politician    `gorm:"constraint:OnDelete:CASCADE;foreignKey:PoliticianID;references:ID" json:"politician,omitempty"`
	Title         string         `gorm:"column:title;not null" json:"title"`
	Description   string         `gorm:"column:description;type:text" json:"description"`
	Status        string         `gorm:"column:status;not null;default:'PENDING_VERIFICATION';index" json:"status"`
	DatePromised  *time.Time     `gorm:"column:date_promised" json:"date_promised,omitempty"`
	SubmittedByID *uuid.UUID     `gorm:"type:uuid;index" json:"submitted_by_id,omitempty"`
	SubmittedBy   *User          `gorm:"foreignKey:SubmittedByID;references:ID" json:"submitted_by,omitempty"`
	SourceURL     string         `gorm:"column:source_url" json:"source_url,omitempty"`
	Upvotes       int            `gorm:"column:upvotes;not null;default:0" json:"upvotes"`
	Downvotes     int            `gorm:"column:downvotes;not null;default:0" json:"downvotes"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Promise) TableName() string { return "promise" }
