package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/repos"
	"github.com/civiclens/civitas-backend/internal/requestdata"
	"github.com/civiclens/civitas-backend/internal/services"
)

type SubmissionHandler struct {
	log               *logger.Logger
	submissionService services.SubmissionService
}

func NewSubmissionHandler(log *logger.Logger, submissionService services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		log:               log.With("handler", "SubmissionHandler"),
		submissionService: submissionService,
	}
}

type submitRequest struct {
	Kind        string `json:"kind" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	SourceURL   string `json:"source_url"`
	Severity    string `json:"severity"`
	Location    string `json:"location"`
}

// Submit creates the pending record and returns 202 immediately; AI
// verification happens on the background queue.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	politicianID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_politician_id", err)
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	record, err := h.submissionService.Submit(c.Request.Context(), politicianID, req.Kind, services.SubmissionInput{
		Title:       req.Title,
		Description: req.Description,
		SourceURL:   req.SourceURL,
		Severity:    req.Severity,
		Location:    req.Location,
	}, rd.UserID)
	if errors.Is(err, services.ErrUnknownSubmitter) {
		RespondError(c, http.StatusUnauthorized, "unknown_user", err)
		return
	}
	if errors.Is(err, repos.ErrNotFound) {
		RespondError(c, http.StatusNotFound, "politician_not_found", err)
		return
	}
	if errors.Is(err, services.ErrInvalidSubmissionKind) {
		RespondError(c, http.StatusBadRequest, "invalid_submission_kind", err)
		return
	}
	if err != nil {
		h.log.Error("Submission failed", "politician_id", politicianID, "kind", req.Kind, "error", err)
		RespondError(c, http.StatusInternalServerError, "submission_failed", err)
		return
	}
	RespondAccepted(c, gin.H{"submission": record, "status": "pending_review"})
}
