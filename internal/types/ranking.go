package types

import (
	"time"

	"github.com/google/uuid"
)

// Ranking holds a contiguous 1-based rank per (politician, office), rebuilt
// wholesale per office on every ranking pass.
type Ranking struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PoliticianID uuid.UUID   `gorm:"type:uuid;not null;index:idx_ranking_politician_office,unique,priority:1" json:"politician_id"`
	Politician   *Politician `gorm:"constraint:OnDelete:CASCADE;foreignKey:PoliticianID;references:ID" json:"politician,omitempty"`
	OfficeID     uuid.UUID   `gorm:"type:uuid;not null;index:idx_ranking_politician_office,unique,priority:2" json:"office_id"`
	Office       *Office     `gorm:"constraint:OnDelete:CASCADE;foreignKey:OfficeID;references:ID" json:"office,omitempty"`
	Rank         int         `gorm:"column:rank;not null" json:"rank"`
	TotalScore   float64     `gorm:"column:total_score;not null" json:"total_score"`
	CreatedAt    time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Ranking) TableName() string { return "ranking" }
