package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/types"
)

type VerificationLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, logs []*types.VerificationLog) ([]*types.VerificationLog, error)
	ListByItem(ctx context.Context, tx *gorm.DB, itemType string, itemID uuid.UUID) ([]*types.VerificationLog, error)
}

type verificationLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVerificationLogRepo(db *gorm.DB, baseLog *logger.Logger) VerificationLogRepo {
	return &verificationLogRepo{db: db, log: baseLog.With("repo", "VerificationLogRepo")}
}

func (r *verificationLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*types.VerificationLog) ([]*types.VerificationLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(logs) == 0 {
		return []*types.VerificationLog{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *verificationLogRepo) ListByItem(ctx context.Context, tx *gorm.DB, itemType string, itemID uuid.UUID) ([]*types.VerificationLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.VerificationLog
	if err := transaction.WithContext(ctx).
		Where("item_type = ? AND item_id = ?", itemType, itemID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
