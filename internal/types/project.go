package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProjectStatusPendingVerification = "PENDING_VERIFICATION"
	ProjectStatusOngoing             = "ONGOING"
	ProjectStatusCompleted           = "COMPLETED"
	ProjectStatusAbandoned           = "ABANDONED"
	ProjectStatusRejected            = "REJECTED"
)

type Project struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PoliticianID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"politician_id"`
	Politician    *Politician    `gorm:"constraint:OnDelete:CASCADE;foreignKey:PoliticianID;references:ID" json:"politician,omitempty"`
	Title         string         `gorm:"column:title;not null" json:"title"`
	Description   string         `gorm:"column:description;type:text" json:"description"`
	Status        string         `gorm:"column:status;not null;default:'PENDING_VERIFICATION';index" json:"status"`
	Location      string         `gorm:"column:location" json:"location,omitempty"`
	SubmittedByID *uuid.UUID     `gorm:"type:uuid;index" json:"submitted_by_id,omitempty"`
	SubmittedBy   *User          `gorm:"foreignKey:SubmittedByID;references:ID" json:"submitted_by,omitempty"`
	SourceURL     string         `gorm:"column:source_url" json:"source_url,omitempty"`
	Upvotes       int            `gorm:"column:upvotes;not null;default:0" json:"upvotes"`
	Downvotes     int            `gorm:"column:downvotes;not null;default:0" json:"downvotes"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Project) TableName() string { return "project" }
