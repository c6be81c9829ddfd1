package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Metric is a named, weighted measurement definition scoped to an office.
type Metric struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OfficeID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_metric_office_name,unique,priority:1" json:"office_id"`
	Office    *Office        `gorm:"constraint:OnDelete:CASCADE;foreignKey:OfficeID;references:ID" json:"office,omitempty"`
	Name      string         `gorm:"column:name;not null;index:idx_metric_office_name,unique,priority:2" json:"name"`
	Weight    float64        `gorm:"column:weight;not null;default:0" json:"weight"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Metric) TableName() string { return "metric" }
