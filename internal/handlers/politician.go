package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/repos"
)

type PoliticianHandler struct {
	log            *logger.Logger
	politicianRepo repos.PoliticianRepo
	rankingRepo    repos.RankingRepo
	officeRepo     repos.OfficeRepo
}

func NewPoliticianHandler(
	log *logger.Logger,
	politicianRepo repos.PoliticianRepo,
	rankingRepo repos.RankingRepo,
	officeRepo repos.OfficeRepo,
) *PoliticianHandler {
	return &PoliticianHandler{
		log:            log.With("handler", "PoliticianHandler"),
		politicianRepo: politicianRepo,
		rankingRepo:    rankingRepo,
		officeRepo:     officeRepo,
	}
}

func (h *PoliticianHandler) List(c *gin.Context) {
	politicians, err := h.politicianRepo.ListActive(c.Request.Context(), nil)
	if err != nil {
		h.log.Error("Failed to list politicians", "error", err)
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"politicians": politicians})
}

func (h *PoliticianHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_politician_id", err)
		return
	}
	politician, err := h.politicianRepo.GetByIDWithRecords(c.Request.Context(), nil, id)
	if errors.Is(err, repos.ErrNotFound) {
		RespondError(c, http.StatusNotFound, "politician_not_found", err)
		return
	}
	if err != nil {
		h.log.Error("Failed to load politician", "politician_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "load_failed", err)
		return
	}
	RespondOK(c, gin.H{"politician": politician})
}

func (h *PoliticianHandler) OfficeRankings(c *gin.Context) {
	officeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_office_id", err)
		return
	}
	if _, err := h.officeRepo.GetByID(c.Request.Context(), nil, officeID); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "office_not_found", err)
			return
		}
		h.log.Error("Failed to load office", "office_id", officeID, "error", err)
		RespondError(c, http.StatusInternalServerError, "load_failed", err)
		return
	}
	rankings, err := h.rankingRepo.ListByOffice(c.Request.Context(), nil, officeID)
	if err != nil {
		h.log.Error("Failed to list rankings", "office_id", officeID, "error", err)
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"rankings": rankings})
}
