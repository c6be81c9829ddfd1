package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/repos"
	"github.com/civiclens/civitas-backend/internal/types"
)

var (
	ErrInvalidVoteType     = fmt.Errorf("invalid vote type")
	ErrInvalidVoteItemType = fmt.Errorf("invalid vote item type")
)

// VoteAction is the applied result of one Vote call.
type VoteAction string

const (
	VoteActionAdded   VoteAction = "added"
	VoteActionRemoved VoteAction = "removed"
	VoteActionChanged VoteAction = "changed"
)

type VoteService interface {
	// Vote applies the three-way toggle for (item, user): no prior vote adds,
	// same type removes, opposite type changes. The vote row mutation and the
	// denormalized tally update commit in one transaction.
	Vote(ctx context.Context, itemType string, itemID, userID uuid.UUID, voteType string) (VoteAction, error)
}

type voteService struct {
	db              *gorm.DB
	log             *logger.Logger
	voteRepo        repos.VoteRepo
	projectRepo     repos.ProjectRepo
	promiseRepo     repos.PromiseRepo
	controversyRepo repos.ControversyRepo
}

func NewVoteService(
	db *gorm.DB,
	baseLog *logger.Logger,
	voteRepo repos.VoteRepo,
	projectRepo repos.ProjectRepo,
	promiseRepo repos.PromiseRepo,
	controversyRepo repos.ControversyRepo,
) VoteService {
	return &voteService{
		db:              db,
		log:             baseLog.With("service", "VoteService"),
		voteRepo:        voteRepo,
		projectRepo:     projectRepo,
		promiseRepo:     promiseRepo,
		controversyRepo: controversyRepo,
	}
}

func (s *voteService) Vote(ctx context.Context, itemType string, itemID, userID uuid.UUID, voteType string) (VoteAction, error) {
	// Validation failures reject synchronously, before any state mutation.
	if !types.ValidVoteType(voteType) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVoteType, voteType)
	}
	if !types.ValidVoteItemType(itemType) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVoteItemType, itemType)
	}
	if userID == uuid.Nil {
		return "", fmt.Errorf("voter is required")
	}
	if err := s.itemExists(ctx, itemType, itemID); err != nil {
		return "", err
	}

	var action VoteAction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.voteRepo.GetByItemAndUser(ctx, tx, itemType, itemID, userID)
		if err != nil {
			return err
		}

		switch {
		case existing == nil:
			if _, err := s.voteRepo.Create(ctx, tx, &types.Vote{
				ID:       uuid.New(),
				ItemType: itemType,
				ItemID:   itemID,
				UserID:   userID,
				VoteType: voteType,
			}); err != nil {
				return err
			}
			if err := s.adjustTally(ctx, tx, itemType, itemID, voteType, 1); err != nil {
				return err
			}
			action = VoteActionAdded

		case existing.VoteType == voteType:
			if err := s.voteRepo.DeleteByID(ctx, tx, existing.ID); err != nil {
				return err
			}
			if err := s.adjustTally(ctx, tx, itemType, itemID, voteType, -1); err != nil {
				return err
			}
			action = VoteActionRemoved

		default:
			if err := s.voteRepo.UpdateType(ctx, tx, existing.ID, voteType); err != nil {
				return err
			}
			if err := s.adjustTally(ctx, tx, itemType, itemID, existing.VoteType, -1); err != nil {
				return err
			}
			if err := s.adjustTally(ctx, tx, itemType, itemID, voteType, 1); err != nil {
				return err
			}
			action = VoteActionChanged
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return action, nil
}

func (s *voteService) itemExists(ctx context.Context, itemType string, itemID uuid.UUID) error {
	switch itemType {
	case types.VoteItemProject:
		_, err := s.projectRepo.GetByID(ctx, nil, itemID)
		return err
	case types.VoteItemPromise:
		_, err := s.promiseRepo.GetByID(ctx, nil, itemID)
		return err
	case types.VoteItemControversy:
		_, err := s.controversyRepo.GetByID(ctx, nil, itemID)
		return err
	}
	return fmt.Errorf("%w: %q", ErrInvalidVoteItemType, itemType)
}

func (s *voteService) adjustTally(ctx context.Context, tx *gorm.DB, itemType string, itemID uuid.UUID, voteType string, delta int) error {
	switch itemType {
	case types.VoteItemProject:
		return s.projectRepo.AdjustTally(ctx, tx, itemID, voteType, delta)
	case types.VoteItemPromise:
		return s.promiseRepo.AdjustTally(ctx, tx, itemID, voteType, delta)
	case types.VoteItemControversy:
		return s.controversyRepo.AdjustTally(ctx, tx, itemID, voteType, delta)
	}
	return fmt.Errorf("%w: %q", ErrInvalidVoteItemType, itemType)
}
