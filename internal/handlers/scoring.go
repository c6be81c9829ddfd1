package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/repos"
	"github.com/civiclens/civitas-backend/internal/scheduler"
	"github.com/civiclens/civitas-backend/internal/services"
)

// Background job names shared between registration and manual triggers.
const (
	JobScoreUpdate   = "score_update"
	JobRankingUpdate = "ranking_update"
)

type ScoringHandler struct {
	log            *logger.Logger
	scoringService services.ScoringService
	scheduler      *scheduler.Scheduler
}

func NewScoringHandler(log *logger.Logger, scoringService services.ScoringService, sched *scheduler.Scheduler) *ScoringHandler {
	return &ScoringHandler{
		log:            log.With("handler", "ScoringHandler"),
		scoringService: scoringService,
		scheduler:      sched,
	}
}

// Recalculate recomputes one politician synchronously and returns the full
// breakdown.
func (h *ScoringHandler) Recalculate(c *gin.Context) {
	politicianID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_politician_id", err)
		return
	}

	breakdown, err := h.scoringService.RecalculateAndStore(c.Request.Context(), politicianID)
	if errors.Is(err, repos.ErrNotFound) {
		RespondError(c, http.StatusNotFound, "politician_not_found", err)
		return
	}
	if err != nil {
		h.log.Error("Recalculate failed", "politician_id", politicianID, "error", err)
		RespondError(c, http.StatusInternalServerError, "recalculate_failed", err)
		return
	}
	RespondOK(c, gin.H{"politician_id": politicianID, "breakdown": breakdown})
}

// UpdateAll fires the score_update job through the scheduler so manual and
// scheduled runs share the same in-flight guard; a busy batch skips instead
// of overlapping. The response returns before any score is recomputed.
func (h *ScoringHandler) UpdateAll(c *gin.Context) {
	if err := h.scheduler.Trigger(JobScoreUpdate); err != nil {
		h.log.Error("Background score update trigger failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "score_update_failed", err)
		return
	}
	RespondAccepted(c, gin.H{"status": "accepted"})
}
