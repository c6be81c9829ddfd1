package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/metrics"
	"github.com/civiclens/civitas-backend/internal/repos"
	"github.com/civiclens/civitas-backend/internal/types"
)

// Composite weights are a policy constant, not derived. Any change must be
// versioned: historical scores are not recomputed retroactively.
const (
	WeightPromiseFulfillment  = 0.30
	WeightLegislativeActivity = 0.20
	WeightProjectCompletion   = 0.15
	WeightPublicSentiment     = 0.15
	WeightMediaPresence       = 0.10
	WeightControversyImpact   = 0.10 // subtracted, not added
)

const (
	MetricPromiseFulfillment  = "promise_fulfillment"
	MetricLegislativeActivity = "legislative_activity"
	MetricProjectCompletion   = "project_completion"
	MetricPublicSentiment     = "public_sentiment"
	MetricMediaPresence       = "media_presence"
	MetricControversyImpact   = "controversy_impact"
)

type ScoreBreakdown struct {
	PromiseFulfillment  float64 `json:"promise_fulfillment"`
	LegislativeActivity float64 `json:"legislative_activity"`
	ProjectCompletion   float64 `json:"project_completion"`
	PublicSentiment     float64 `json:"public_sentiment"`
	MediaPresence       float64 `json:"media_presence"`
	ControversyImpact   float64 `json:"controversy_impact"`
	TotalScore          float64 `json:"total_score"`
}

type ScoringService interface {
	// CalculateScore computes the full breakdown without persisting anything.
	// Unknown politician ids propagate as repos.ErrNotFound.
	CalculateScore(ctx context.Context, politicianID uuid.UUID) (*ScoreBreakdown, error)
	// RecalculateAndStore computes the breakdown and upserts the composite
	// score plus the per-metric Score rows.
	RecalculateAndStore(ctx context.Context, politicianID uuid.UUID) (*ScoreBreakdown, error)
	// UpdateAllScores recomputes every active politician sequentially, then
	// refreshes rankings. A single politician's failure is logged and skipped.
	UpdateAllScores(ctx context.Context) error
	// UpdateRankings rebuilds the contiguous per-office ranking wholesale.
	UpdateRankings(ctx context.Context) error
}

type scoringService struct {
	db             *gorm.DB
	log            *logger.Logger
	politicianRepo repos.PoliticianRepo
	officeRepo     repos.OfficeRepo
	metricRepo     repos.MetricRepo
	scoreRepo      repos.ScoreRepo
	rankingRepo    repos.RankingRepo
	sentiment      SentimentService
	media          MediaService
}

func NewScoringService(
	db *gorm.DB,
	baseLog *logger.Logger,
	politicianRepo repos.PoliticianRepo,
	officeRepo repos.OfficeRepo,
	metricRepo repos.MetricRepo,
	scoreRepo repos.ScoreRepo,
	rankingRepo repos.RankingRepo,
	sentiment SentimentService,
	media MediaService,
) ScoringService {
	return &scoringService{
		db:             db,
		log:            baseLog.With("service", "ScoringService"),
		politicianRepo: politicianRepo,
		officeRepo:     officeRepo,
		metricRepo:     metricRepo,
		scoreRepo:      scoreRepo,
		rankingRepo:    rankingRepo,
		sentiment:      sentiment,
		media:          media,
	}
}

func (s *scoringService) CalculateScore(ctx context.Context, politicianID uuid.UUID) (*ScoreBreakdown, error) {
	politician, err := s.politicianRepo.GetByIDWithRecords(ctx, nil, politicianID)
	if err != nil {
		return nil, err
	}
	return s.computeBreakdown(ctx, politician), nil
}

func (s *scoringService) computeBreakdown(ctx context.Context, politician *types.Politician) *ScoreBreakdown {
	bd := &ScoreBreakdown{
		PromiseFulfillment:  metrics.PromiseFulfillment(politician.Promises),
		LegislativeActivity: metrics.LegislativeActivity(politician.Bills),
		ProjectCompletion:   metrics.ProjectCompletion(politician.Projects),
		ControversyImpact:   metrics.ControversyImpact(politician.Controversies),
	}

	// The two external signals are issued concurrently and joined before
	// composing the total; each degrades to its own neutral default on
	// failure, so neither goroutine can return an error.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bd.PublicSentiment = s.sentiment.PublicSentiment(gctx, politician.Name)
		return nil
	})
	g.Go(func() error {
		bd.MediaPresence = s.media.MediaPresence(gctx, politician.Name)
		return nil
	})
	_ = g.Wait()

	bd.TotalScore = ComposeTotal(bd)
	return bd
}

// ComposeTotal applies the fixed weight table, subtracts the controversy
// penalty and clamps to [0,100], rounded to one decimal.
func ComposeTotal(bd *ScoreBreakdown) float64 {
	total := bd.PromiseFulfillment*WeightPromiseFulfillment +
		bd.LegislativeActivity*WeightLegislativeActivity +
		bd.ProjectCompletion*WeightProjectCompletion +
		bd.PublicSentiment*WeightPublicSentiment +
		bd.MediaPresence*WeightMediaPresence -
		bd.ControversyImpact*WeightControversyImpact
	return math.Round(clamp(0, 100, total)*10) / 10
}

func (s *scoringService) RecalculateAndStore(ctx context.Context, politicianID uuid.UUID) (*ScoreBreakdown, error) {
	politician, err := s.politicianRepo.GetByIDWithRecords(ctx, nil, politicianID)
	if err != nil {
		return nil, err
	}
	bd := s.computeBreakdown(ctx, politician)
	if err := s.persistBreakdown(ctx, politician, bd); err != nil {
		return nil, err
	}
	return bd, nil
}

// persistBreakdown writes the composite score and the six Score rows in one
// transaction. Score persistence upserts on (politician, metric); repeated
// recomputes never append rows.
func (s *scoringService) persistBreakdown(ctx context.Context, politician *types.Politician, bd *ScoreBreakdown) error {
	officeID := currentOfficeID(politician)
	now := time.Now()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.politicianRepo.UpdatePerformanceScore(ctx, tx, politician.ID, bd.TotalScore); err != nil {
			return err
		}
		if officeID == nil {
			// No current tenure: the composite still updates, but metric rows
			// are office-scoped and have nowhere to attach.
			s.log.Debug("Politician has no current tenure, skipping metric rows", "politician_id", politician.ID)
			return nil
		}

		defs := []struct {
			name   string
			weight float64
			value  float64
		}{
			{MetricPromiseFulfillment, WeightPromiseFulfillment, bd.PromiseFulfillment},
			{MetricLegislativeActivity, WeightLegislativeActivity, bd.LegislativeActivity},
			{MetricProjectCompletion, WeightProjectCompletion, bd.ProjectCompletion},
			{MetricPublicSentiment, WeightPublicSentiment, bd.PublicSentiment},
			{MetricMediaPresence, WeightMediaPresence, bd.MediaPresence},
			{MetricControversyImpact, WeightControversyImpact, bd.ControversyImpact},
		}
		scores := make([]*types.Score, 0, len(defs))
		for _, def := range defs {
			metric, err := s.metricRepo.EnsureByName(ctx, tx, *officeID, def.name, def.weight)
			if err != nil {
				return err
			}
			scores = append(scores, &types.Score{
				ID:           uuid.New(),
				PoliticianID: politician.ID,
				MetricID:     metric.ID,
				Value:        def.value,
				CalculatedAt: now,
			})
		}
		return s.scoreRepo.Upsert(ctx, tx, scores)
	})
}

func currentOfficeID(politician *types.Politician) *uuid.UUID {
	for i := range politician.Tenures {
		if politician.Tenures[i].EndDate == nil {
			id := politician.Tenures[i].OfficeID
			return &id
		}
	}
	return nil
}

// UpdateAllScores walks politicians one at a time on purpose: sequential
// recompute bounds concurrent load on the external AI and search services.
func (s *scoringService) UpdateAllScores(ctx context.Context) error {
	politicians, err := s.politicianRepo.ListActive(ctx, nil)
	if err != nil {
		return err
	}

	updated, failed := 0, 0
	for _, p := range politicians {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := s.RecalculateAndStore(ctx, p.ID); err != nil {
			failed++
			s.log.Error("Score update failed for politician", "politician_id", p.ID, "name", p.Name, "error", err)
			continue
		}
		updated++
	}
	s.log.Info("Score update batch finished", "updated", updated, "failed", failed)

	return s.UpdateRankings(ctx)
}

func (s *scoringService) UpdateRankings(ctx context.Context) error {
	offices, err := s.officeRepo.List(ctx, nil)
	if err != nil {
		return err
	}

	for _, office := range offices {
		holders, err := s.politicianRepo.ListActiveByCurrentOffice(ctx, nil, office.ID)
		if err != nil {
			s.log.Error("Ranking update failed for office", "office_id", office.ID, "error", err)
			continue
		}
		// An office with zero current holders simply produces no rows.
		if len(holders) == 0 {
			if err := s.rankingRepo.ReplaceForOffice(ctx, nil, office.ID, nil); err != nil {
				s.log.Error("Ranking cleanup failed for office", "office_id", office.ID, "error", err)
			}
			continue
		}

		// Score descending; ties keep the repo's stable creation order so a
		// recompute with unchanged scores cannot reshuffle ranks.
		sort.SliceStable(holders, func(i, j int) bool {
			return holders[i].PerformanceScore > holders[j].PerformanceScore
		})

		rankings := make([]*types.Ranking, 0, len(holders))
		for i, p := range holders {
			rankings = append(rankings, &types.Ranking{
				ID:           uuid.New(),
				PoliticianID: p.ID,
				OfficeID:     office.ID,
				Rank:         i + 1,
				TotalScore:   p.PerformanceScore,
			})
		}
		if err := s.rankingRepo.ReplaceForOffice(ctx, nil, office.ID, rankings); err != nil {
			s.log.Error("Ranking update failed for office", "office_id", office.ID, "error", err)
		}
	}
	return nil
}
