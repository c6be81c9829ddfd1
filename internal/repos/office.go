package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/types"
)

type OfficeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, offices []*types.Office) ([]*types.Office, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Office, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Office, error)
}

type officeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOfficeRepo(db *gorm.DB, baseLog *logger.Logger) OfficeRepo {
	return &officeRepo{db: db, log: baseLog.With("repo", "OfficeRepo")}
}

func (r *officeRepo) Create(ctx context.Context, tx *gorm.DB, offices []*types.Office) ([]*types.Office, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(offices) == 0 {
		return []*types.Office{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&offices).Error; err != nil {
		return nil, err
	}
	return offices, nil
}

func (r *officeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Office, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var o types.Office
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *officeRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Office, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Office
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
