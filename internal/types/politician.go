package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Politician struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name     string    `gorm:"column:name;not null;index" json:"name"`
	Party    string    `gorm:"column:party;index" json:"party"`
	Bio      string    `gorm:"column:bio;type:text" json:"bio,omitempty"`
	PhotoURL string    `gorm:"column:photo_url" json:"photo_url,omitempty"`
	// Mutated only by the scoring engine.
	PerformanceScore float64 `gorm:"column:performance_score;not null;default:0" json:"performance_score"`
	IsActive         bool    `gorm:"column:is_active;not null;default:true;index" json:"is_active"`

	Promises      []Promise     `gorm:"foreignKey:PoliticianID" json:"promises,omitempty"`
	Bills         []Bill        `gorm:"foreignKey:PoliticianID" json:"bills,omitempty"`
	Projects      []Project     `gorm:"foreignKey:PoliticianID" json:"projects,omitempty"`
	Controversies []Controversy `gorm:"foreignKey:PoliticianID" json:"controversies,omitempty"`
	Tenures       []Tenure      `gorm:"foreignKey:PoliticianID" json:"tenures,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Politician) TableName() string { return "politician" }
