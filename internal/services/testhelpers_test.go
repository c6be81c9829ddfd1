package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/repos"
	"github.com/civiclens/civitas-backend/internal/types"
)

// The production schema leans on postgres defaults (uuid_generate_v4, now)
// that sqlite cannot evaluate, so tests create the tables directly. Every
// test row carries an explicit id.
var testSchema = []string{
	`CREATE TABLE politician (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		party TEXT,
		bio TEXT,
		photo_url TEXT,
		performance_score REAL NOT NULL DEFAULT 0,
		is_active NUMERIC NOT NULL DEFAULT true,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE office (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		level TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE tenure (
		id TEXT PRIMARY KEY,
		politician_id TEXT NOT NULL,
		office_id TEXT NOT NULL,
		start_date DATETIME NOT NULL,
		end_date DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE metric (
		id TEXT PRIMARY KEY,
		office_id TEXT NOT NULL,
		name TEXT NOT NULL,
		weight REAL NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME,
		UNIQUE (office_id, name)
	)`,
	`CREATE TABLE score (
		id TEXT PRIMARY KEY,
		politician_id TEXT NOT NULL,
		metric_id TEXT NOT NULL,
		value REAL NOT NULL,
		calculated_at DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (politician_id, metric_id)
	)`,
	`CREATE TABLE ranking (
		id TEXT PRIMARY KEY,
		politician_id TEXT NOT NULL,
		office_id TEXT NOT NULL,
		"rank" INTEGER NOT NULL,
		total_score REAL NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (politician_id, office_id)
	)`,
	`CREATE TABLE promise (
		id TEXT PRIMARY KEY,
		politician_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'PENDING_VERIFICATION',
		date_promised DATETIME,
		submitted_by_id TEXT,
		source_url TEXT,
		upvotes INTEGER NOT NULL DEFAULT 0,
		downvotes INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE bill (
		id TEXT PRIMARY KEY,
		politician_id TEXT NOT NULL,
		title TEXT NOT NULL,
		summary TEXT,
		status TEXT NOT NULL DEFAULT 'PROPOSED',
		date_proposed DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE project (
		id TEXT PRIMARY KEY,
		politician_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'PENDING_VERIFICATION',
		location TEXT,
		submitted_by_id TEXT,
		source_url TEXT,
		upvotes INTEGER NOT NULL DEFAULT 0,
		downvotes INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE controversy (
		id TEXT PRIMARY KEY,
		politician_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		severity TEXT NOT NULL DEFAULT 'LOW',
		is_verified NUMERIC NOT NULL DEFAULT false,
		submitted_by_id TEXT,
		source_url TEXT,
		upvotes INTEGER NOT NULL DEFAULT 0,
		downvotes INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE vote (
		id TEXT PRIMARY KEY,
		item_type TEXT NOT NULL,
		item_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		vote_type TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (item_type, item_id, user_id)
	)`,
	`CREATE TABLE "user" (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		display_name TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`,
	`CREATE TABLE verification_log (
		id TEXT PRIMARY KEY,
		item_type TEXT NOT NULL,
		item_id TEXT NOT NULL,
		is_verified NUMERIC NOT NULL,
		confidence REAL NOT NULL,
		reasoning TEXT,
		suggested_action TEXT NOT NULL,
		fact_checks TEXT,
		applied_outcome TEXT,
		created_at DATETIME
	)`,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A single connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	for _, stmt := range testSchema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create test schema: %v", err)
		}
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return log
}

type testRepos struct {
	politician  repos.PoliticianRepo
	office      repos.OfficeRepo
	metric      repos.MetricRepo
	score       repos.ScoreRepo
	ranking     repos.RankingRepo
	promise     repos.PromiseRepo
	project     repos.ProjectRepo
	controversy repos.ControversyRepo
	vote        repos.VoteRepo
	user        repos.UserRepo
	verifLog    repos.VerificationLogRepo
}

func newTestRepos(db *gorm.DB, log *logger.Logger) *testRepos {
	return &testRepos{
		politician:  repos.NewPoliticianRepo(db, log),
		office:      repos.NewOfficeRepo(db, log),
		metric:      repos.NewMetricRepo(db, log),
		score:       repos.NewScoreRepo(db, log),
		ranking:     repos.NewRankingRepo(db, log),
		promise:     repos.NewPromiseRepo(db, log),
		project:     repos.NewProjectRepo(db, log),
		controversy: repos.NewControversyRepo(db, log),
		vote:        repos.NewVoteRepo(db, log),
		user:        repos.NewUserRepo(db, log),
		verifLog:    repos.NewVerificationLogRepo(db, log),
	}
}

func seedOffice(t *testing.T, r *testRepos, name string) *types.Office {
	t.Helper()
	created, err := r.office.Create(context.Background(), nil, []*types.Office{{
		ID:    uuid.New(),
		Name:  name,
		Level: "federal",
	}})
	if err != nil {
		t.Fatalf("failed to seed office: %v", err)
	}
	return created[0]
}

func seedPolitician(t *testing.T, r *testRepos, name string, score float64) *types.Politician {
	t.Helper()
	created, err := r.politician.Create(context.Background(), nil, []*types.Politician{{
		ID:               uuid.New(),
		Name:             name,
		Party:            "Independent",
		PerformanceScore: score,
		IsActive:         true,
	}})
	if err != nil {
		t.Fatalf("failed to seed politician: %v", err)
	}
	return created[0]
}

func seedUser(t *testing.T, r *testRepos, email string) *types.User {
	t.Helper()
	created, err := r.user.Create(context.Background(), nil, []*types.User{{
		ID:          uuid.New(),
		Email:       email,
		DisplayName: "Test User",
	}})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return created[0]
}

func seedCurrentTenure(t *testing.T, db *gorm.DB, politicianID, officeID uuid.UUID) {
	t.Helper()
	tenure := &types.Tenure{
		ID:           uuid.New(),
		PoliticianID: politicianID,
		OfficeID:     officeID,
		StartDate:    time.Now().AddDate(-1, 0, 0),
	}
	if err := db.Create(tenure).Error; err != nil {
		t.Fatalf("failed to seed tenure: %v", err)
	}
}

// fakeAIClient implements ai.Client with a canned payload or error.
type fakeAIClient struct {
	payload map[string]interface{}
	err     error
	calls   int
}

func (f *fakeAIClient) CompleteJSON(ctx context.Context, system, user string) (map[string]interface{}, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

type fixedSentiment struct{ value float64 }

func (f fixedSentiment) PublicSentiment(ctx context.Context, name string) float64 { return f.value }

type fixedMedia struct{ value float64 }

func (f fixedMedia) MediaPresence(ctx context.Context, name string) float64 { return f.value }

var errBoom = fmt.Errorf("boom")
