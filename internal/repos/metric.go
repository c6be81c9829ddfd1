package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/types"
)

type MetricRepo interface {
	// EnsureByName upserts the metric definition for an office and returns the
	// stored row, so Score rows always have a stable metric id to key on.
	EnsureByName(ctx context.Context, tx *gorm.DB, officeID uuid.UUID, name string, weight float64) (*types.Metric, error)
	ListByOffice(ctx context.Context, tx *gorm.DB, officeID uuid.UUID) ([]*types.Metric, error)
}

type metricRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMetricRepo(db *gorm.DB, baseLog *logger.Logger) MetricRepo {
	return &metricRepo{db: db, log: baseLog.With("repo", "MetricRepo")}
}

func (r *metricRepo) EnsureByName(ctx context.Context, tx *gorm.DB, officeID uuid.UUID, name string, weight float64) (*types.Metric, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	m := &types.Metric{
		ID:       uuid.New(),
		OfficeID: officeID,
		Name:     name,
		Weight:   weight,
	}
	if err := transaction.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "office_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"weight", "updated_at"}),
	}).Create(m).Error; err != nil {
		return nil, err
	}
	// Re-read so callers see the surviving row's id on conflict.
	var stored types.Metric
	if err := transaction.WithContext(ctx).
		Where("office_id = ? AND name = ?", officeID, name).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *metricRepo) ListByOffice(ctx context.Context, tx *gorm.DB, officeID uuid.UUID) ([]*types.Metric, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Metric
	if err := transaction.WithContext(ctx).
		Where("office_id = ?", officeID).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
