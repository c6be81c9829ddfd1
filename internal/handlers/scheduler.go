package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/scheduler"
)

type SchedulerHandler struct {
	log       *logger.Logger
	scheduler *scheduler.Scheduler
}

func NewSchedulerHandler(log *logger.Logger, sched *scheduler.Scheduler) *SchedulerHandler {
	return &SchedulerHandler{
		log:       log.With("handler", "SchedulerHandler"),
		scheduler: sched,
	}
}

func (h *SchedulerHandler) Status(c *gin.Context) {
	RespondOK(c, gin.H{"jobs": h.scheduler.Status()})
}

// RunJob manually triggers a registered job. A busy job skips, which is still
// a 202: the trigger was accepted, the run was just not needed.
func (h *SchedulerHandler) RunJob(c *gin.Context) {
	name := c.Param("name")
	if err := h.scheduler.Trigger(name); err != nil {
		if errors.Is(err, scheduler.ErrUnknownJob) {
			RespondError(c, http.StatusNotFound, "unknown_job", err)
			return
		}
		h.log.Error("Manual job trigger failed", "job", name, "error", err)
		RespondError(c, http.StatusInternalServerError, "job_trigger_failed", err)
		return
	}
	RespondAccepted(c, gin.H{"job": name, "status": "triggered"})
}
