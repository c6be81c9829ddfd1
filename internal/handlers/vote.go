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

type VoteHandler struct {
	log         *logger.Logger
	voteService services.VoteService
}

func NewVoteHandler(log *logger.Logger, voteService services.VoteService) *VoteHandler {
	return &VoteHandler{
		log:         log.With("handler", "VoteHandler"),
		voteService: voteService,
	}
}

type voteRequest struct {
	ItemType string    `json:"item_type" binding:"required"`
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	VoteType string    `json:"vote_type" binding:"required"`
}

func (h *VoteHandler) Cast(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	action, err := h.voteService.Vote(c.Request.Context(), req.ItemType, req.ItemID, rd.UserID, req.VoteType)
	if errors.Is(err, services.ErrInvalidVoteType) || errors.Is(err, services.ErrInvalidVoteItemType) {
		RespondError(c, http.StatusBadRequest, "invalid_vote", err)
		return
	}
	if errors.Is(err, repos.ErrNotFound) {
		RespondError(c, http.StatusNotFound, "item_not_found", err)
		return
	}
	if err != nil {
		h.log.Error("Vote failed", "item_type", req.ItemType, "item_id", req.ItemID, "error", err)
		RespondError(c, http.StatusInternalServerError, "vote_failed", err)
		return
	}
	RespondOK(c, gin.H{"action": action})
}
