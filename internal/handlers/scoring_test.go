package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/scheduler"
)

func TestUpdateAll_SharesSchedulerGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	sched := scheduler.New(log)
	block := make(chan struct{})
	started := make(chan struct{})
	var runs int32
	if err := sched.Register(JobScoreUpdate, time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		close(started)
		<-block
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := NewScoringHandler(log, nil, sched)
	router := gin.New()
	router.POST("/api/scores/update-all", h.UpdateAll)

	fire := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/scores/update-all", nil)
		router.ServeHTTP(w, req)
		return w
	}

	if w := fire(); w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatalf("batch job never started")
	}

	// A second trigger while the batch is in flight is accepted but skipped.
	if w := fire(); w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 for overlapping trigger, got %d", w.Code)
	}
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&runs); got != 1 {
		t.Fatalf("expected overlapping trigger to be skipped, got %d runs", got)
	}
	close(block)
}
