package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/types"
)

type ScoreRepo interface {
	// Upsert writes the (politician, metric) score in place. Recompute never
	// appends a second row for the same pair.
	Upsert(ctx context.Context, tx *gorm.DB, scores []*types.Score) error
	ListByPolitician(ctx context.Context, tx *gorm.DB, politicianID uuid.UUID) ([]*types.Score, error)
	CountByPolitician(ctx context.Context, tx *gorm.DB, politicianID uuid.UUID) (int64, error)
}

type scoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScoreRepo(db *gorm.DB, baseLog *logger.Logger) ScoreRepo {
	return &scoreRepo{db: db, log: baseLog.With("repo", "ScoreRepo")}
}

func (r *scoreRepo) Upsert(ctx context.Context, tx *gorm.DB, scores []*types.Score) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(scores) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "politician_id"}, {Name: "metric_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "calculated_at", "updated_at"}),
	}).Create(&scores).Error
}

func (r *scoreRepo) ListByPolitician(ctx context.Context, tx *gorm.DB, politicianID uuid.UUID) ([]*types.Score, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Score
	if err := transaction.WithContext(ctx).
		Where("politician_id = ?", politicianID).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *scoreRepo) CountByPolitician(ctx context.Context, tx *gorm.DB, politicianID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Score{}).
		Where("politician_id = ?", politicianID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
