package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/types"
)

type RankingRepo interface {
	// ReplaceForOffice rewrites the office's ranking wholesale inside one
	// transaction: upserts the new contiguous ranks and deletes rows for
	// politicians no longer holding the office.
	ReplaceForOffice(ctx context.Context, tx *gorm.DB, officeID uuid.UUID, rankings []*types.Ranking) error
	ListByOffice(ctx context.Context, tx *gorm.DB, officeID uuid.UUID) ([]*types.Ranking, error)
}

type rankingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRankingRepo(db *gorm.DB, baseLog *logger.Logger) RankingRepo {
	return &rankingRepo{db: db, log: baseLog.With("repo", "RankingRepo")}
}

func (r *rankingRepo) ReplaceForOffice(ctx context.Context, tx *gorm.DB, officeID uuid.UUID, rankings []*types.Ranking) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		keep := make([]uuid.UUID, 0, len(rankings))
		for _, rank := range rankings {
			keep = append(keep, rank.PoliticianID)
		}
		q := txx.Where("office_id = ?", officeID)
		if len(keep) > 0 {
			q = q.Where("politician_id NOT IN ?", keep)
		}
		if err := q.Delete(&types.Ranking{}).Error; err != nil {
			return err
		}
		if len(rankings) == 0 {
			return nil
		}
		return txx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "politician_id"}, {Name: "office_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rank", "total_score", "updated_at"}),
		}).Create(&rankings).Error
	})
}

func (r *rankingRepo) ListByOffice(ctx context.Context, tx *gorm.DB, officeID uuid.UUID) ([]*types.Ranking, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Ranking
	if err := transaction.WithContext(ctx).
		Where("office_id = ?", officeID).
		Order("rank ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
