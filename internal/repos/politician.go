package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/types"
)

// ErrNotFound is the one failure class that propagates to callers instead of
// degrading to a default.
var ErrNotFound = errors.New("record not found")

type PoliticianRepo interface {
	Create(ctx context.Context, tx *gorm.DB, politicians []*types.Politician) ([]*types.Politician, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Politician, error)
	GetByIDWithRecords(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Politician, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Politician, error)
	ListActiveByCurrentOffice(ctx context.Context, tx *gorm.DB, officeID uuid.UUID) ([]*types.Politician, error)
	UpdatePerformanceScore(ctx context.Context, tx *gorm.DB, id uuid.UUID, score float64) error
}

type politicianRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPoliticianRepo(db *gorm.DB, baseLog *logger.Logger) PoliticianRepo {
	return &politicianRepo{db: db, log: baseLog.With("repo", "PoliticianRepo")}
}

func (r *politicianRepo) Create(ctx context.Context, tx *gorm.DB, politicians []*types.Politician) ([]*types.Politician, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(politicians) == 0 {
		return []*types.Politician{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&politicians).Error; err != nil {
		return nil, err
	}
	return politicians, nil
}

func (r *politicianRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Politician, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var p types.Politician
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *politicianRepo) GetByIDWithRecords(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Politician, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var p types.Politician
	err := transaction.WithContext(ctx).
		Preload("Promises").
		Preload("Bills").
		Preload("Projects").
		Preload("Controversies").
		Preload("Tenures").
		Where("id = ?", id).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *politicianRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Politician, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Politician
	if err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListActiveByCurrentOffice returns active politicians whose current tenure
// (end_date IS NULL) is in the given office.
func (r *politicianRepo) ListActiveByCurrentOffice(ctx context.Context, tx *gorm.DB, officeID uuid.UUID) ([]*types.Politician, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Politician
	if err := transaction.WithContext(ctx).
		Joins("JOIN tenure ON tenure.politician_id = politician.id").
		Where("tenure.office_id = ? AND tenure.end_date IS NULL AND tenure.deleted_at IS NULL", officeID).
		Where("politician.is_active = ?", true).
		Order("politician.created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *politicianRepo) UpdatePerformanceScore(ctx context.Context, tx *gorm.DB, id uuid.UUID, score float64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Politician{}).
		Where("id = ?", id).
		Update("performance_score", score).Error
}
