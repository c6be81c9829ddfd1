package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/types"
)

type BillRepo interface {
	Create(ctx context.Context, tx *gorm.DB, bills []*types.Bill) ([]*types.Bill, error)
	ListByPolitician(ctx context.Context, tx *gorm.DB, politicianID uuid.UUID) ([]*types.Bill, error)
}

type billRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBillRepo(db *gorm.DB, baseLog *logger.Logger) BillRepo {
	return &billRepo{db: db, log: baseLog.With("repo", "BillRepo")}
}

func (r *billRepo) Create(ctx context.Context, tx *gorm.DB, bills []*types.Bill) ([]*types.Bill, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(bills) == 0 {
		return []*types.Bill{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *billRepo) ListByPolitician(ctx context.Context, tx *gorm.DB, politicianID uuid.UUID) ([]*types.Bill, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Bill
	if err := transaction.WithContext(ctx).
		Where("politician_id = ?", politicianID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
