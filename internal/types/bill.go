package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BillStatusProposed    = "PROPOSED"
	BillStatusInCommittee = "IN_COMMITTEE"
	BillStatusPassed      = "PASSED"
	BillStatusRejected    = "REJECTED"
)

type Bill struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PoliticianID uuid.UUID      `gorm:"type:uuid;not null;index" json:"politician_id"`
	Politician   *Politician    `gorm:"constraint:OnDelete:CASCADE;foreignKey:PoliticianID;references:ID" json:"politician,omitempty"`
	Title        string         `gorm:"column:title;not null" json:"title"`
	Summary      string         `gorm:"column:summary;type:text" json:"summary,omitempty"`
	Status       string         `gorm:"column:status;not null;default:'PROPOSED';index" json:"status"`
	DateProposed *time.Time     `gorm:"column:date_proposed" json:"date_proposed,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Bill) TableName() string { return "bill" }
