package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User rows are provisioned by the identity system; this service only
// references them from submissions and votes.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email       string         `gorm:"column:email;uniqueIndex;not null" json:"email"`
	DisplayName string         `gorm:"column:display_name" json:"display_name"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }
