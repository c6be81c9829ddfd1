package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/types"
)

type ControversyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, controversies []*types.Controversy) ([]*types.Controversy, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Controversy, error)
	ListByPolitician(ctx context.Context, tx *gorm.DB, politicianID uuid.UUID) ([]*types.Controversy, error)
	// MarkVerified is one-way; controversies are never flipped back.
	MarkVerified(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	AdjustTally(ctx context.Context, tx *gorm.DB, id uuid.UUID, voteType string, delta int) error
}

type controversyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewControversyRepo(db *gorm.DB, baseLog *logger.Logger) ControversyRepo {
	return &controversyRepo{db: db, log: baseLog.With("repo", "ControversyRepo")}
}

func (r *controversyRepo) Create(ctx context.Context, tx *gorm.DB, controversies []*types.Controversy) ([]*types.Controversy, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(controversies) == 0 {
		return []*types.Controversy{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&controversies).Error; err != nil {
		return nil, err
	}
	return controversies, nil
}

func (r *controversyRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Controversy, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var c types.Controversy
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *controversyRepo) ListByPolitician(ctx context.Context, tx *gorm.DB, politicianID uuid.UUID) ([]*types.Controversy, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Controversy
	if err := transaction.WithContext(ctx).
		Where("politician_id = ?", politicianID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *controversyRepo) MarkVerified(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Controversy{}).
		Where("id = ?", id).
		Update("is_verified", true).Error
}

func (r *controversyRepo) AdjustTally(ctx context.Context, tx *gorm.DB, id uuid.UUID, voteType string, delta int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	column := "upvotes"
	if voteType == types.VoteTypeDown {
		column = "downvotes"
	}
	return transaction.WithContext(ctx).
		Model(&types.Controversy{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}
