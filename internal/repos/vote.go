package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/types"
)

type VoteRepo interface {
	GetByItemAndUser(ctx context.Context, tx *gorm.DB, itemType string, itemID, userID uuid.UUID) (*types.Vote, error)
	Create(ctx context.Context, tx *gorm.DB, vote *types.Vote) (*types.Vote, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	UpdateType(ctx context.Context, tx *gorm.DB, id uuid.UUID, voteType string) error
	CountByItem(ctx context.Context, tx *gorm.DB, itemType string, itemID uuid.UUID, voteType string) (int64, error)
}

type voteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVoteRepo(db *gorm.DB, baseLog *logger.Logger) VoteRepo {
	return &voteRepo{db: db, log: baseLog.With("repo", "VoteRepo")}
}

// GetByItemAndUser returns nil, nil when the user has not voted on the item.
func (r *voteRepo) GetByItemAndUser(ctx context.Context, tx *gorm.DB, itemType string, itemID, userID uuid.UUID) (*types.Vote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var v types.Vote
	err := transaction.WithContext(ctx).
		Where("item_type = ? AND item_id = ? AND user_id = ?", itemType, itemID, userID).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *voteRepo) Create(ctx context.Context, tx *gorm.DB, vote *types.Vote) (*types.Vote, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(vote).Error; err != nil {
		return nil, err
	}
	return vote, nil
}

func (r *voteRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Vote{}).Error
}

func (r *voteRepo) UpdateType(ctx context.Context, tx *gorm.DB, id uuid.UUID, voteType string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Vote{}).
		Where("id = ?", id).
		Update("vote_type", voteType).Error
}

func (r *voteRepo) CountByItem(ctx context.Context, tx *gorm.DB, itemType string, itemID uuid.UUID, voteType string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Vote{}).
		Where("item_type = ? AND item_id = ? AND vote_type = ?", itemType, itemID, voteType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
