package types

import (
	"time"

	"github.com/google/uuid"
)

// Score binds one politician to one metric. At most one row exists per
// (politician, metric) pair; recompute upserts in place.
type Score struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PoliticianID uuid.UUID   `gorm:"type:uuid;not null;index:idx_score_politician_metric,unique,priority:1" json:"politician_id"`
	Politician   *Politician `gorm:"constraint:OnDelete:CASCADE;foreignKey:PoliticianID;references:ID" json:"politician,omitempty"`
	MetricID     uuid.UUID   `gorm:"type:uuid;not null;index:idx_score_politician_metric,unique,priority:2" json:"metric_id"`
	Metric       *Metric     `gorm:"constraint:OnDelete:CASCADE;foreignKey:MetricID;references:ID" json:"metric,omitempty"`
	Value        float64     `gorm:"column:value;not null" json:"value"`
	CalculatedAt time.Time   `gorm:"column:calculated_at;not null" json:"calculated_at"`
	CreatedAt    time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Score) TableName() string { return "score" }
