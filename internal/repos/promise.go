package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/types"
)

type PromiseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, promises []*types.Promise) ([]*types.Promise, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Promise, error)
	ListByPolitician(ctx context.Context, tx *gorm.DB, politicianID uuid.UUID) ([]*types.Promise, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error
	AdjustTally(ctx context.Context, tx *gorm.DB, id uuid.UUID, voteType string, delta int) error
}

type promiseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPromiseRepo(db *gorm.DB, baseLog *logger.Logger) PromiseRepo {
	return &promiseRepo{db: db, log: baseLog.With("repo", "PromiseRepo")}
}

func (r *promiseRepo) Create(ctx context.Context, tx *gorm.DB, promises []*types.Promise) ([]*types.Promise, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(promises) == 0 {
		return []*types.Promise{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&promises).Error; err != nil {
		return nil, err
	}
	return promises, nil
}

func (r *promiseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Promise, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var p types.Promise
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *promiseRepo) ListByPolitician(ctx context.Context, tx *gorm.DB, politicianID uuid.UUID) ([]*types.Promise, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Promise
	if err := transaction.WithContext(ctx).
		Where("politician_id = ?", politicianID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *promiseRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Promise{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *promiseRepo) AdjustTally(ctx context.Context, tx *gorm.DB, id uuid.UUID, voteType string, delta int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	column := "upvotes"
	if voteType == types.VoteTypeDown {
		column = "downvotes"
	}
	return transaction.WithContext(ctx).
		Model(&types.Promise{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}
