package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	VoteTypeUp   = "up"
	VoteTypeDown = "down"
)

const (
	VoteItemProject     = "project"
	VoteItemPromise     = "promise"
	VoteItemControversy = "controversy"
)

// Vote is the single polymorphic vote row shared by projects, promises and
// controversies. Unique per (item_type, item_id, user_id); the parent record
// carries the denormalized upvote/downvote tallies.
type Vote struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ItemType  string    `gorm:"column:item_type;not null;index:idx_vote_item_user,unique,priority:1" json:"item_type"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index:idx_vote_item_user,unique,priority:2" json:"item_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_vote_item_user,unique,priority:3" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	VoteType  string    `gorm:"column:vote_type;not null" json:"vote_type"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Vote) TableName() string { return "vote" }

func ValidVoteType(t string) bool {
	return t == VoteTypeUp || t == VoteTypeDown
}

func ValidVoteItemType(t string) bool {
	switch t {
	case VoteItemProject, VoteItemPromise, VoteItemControversy:
		return true
	default:
		return false
	}
}
