package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenure is a politician's time-bounded occupancy of one office.
// A nil EndDate marks the current tenure.
type Tenure struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PoliticianID uuid.UUID      `gorm:"type:uuid;not null;index" json:"politician_id"`
	Politician   *Politician    `gorm:"constraint:OnDelete:CASCADE;foreignKey:PoliticianID;references:ID" json:"politician,omitempty"`
	OfficeID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"office_id"`
	Office       *Office        `gorm:"constraint:OnDelete:CASCADE;foreignKey:OfficeID;references:ID" json:"office,omitempty"`
	StartDate    time.Time      `gorm:"column:start_date;not null" json:"start_date"`
	EndDate      *time.Time     `gorm:"column:end_date;index" json:"end_date,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Tenure) TableName() string { return "tenure" }
