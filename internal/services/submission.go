package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/repos"
	"github.com/civiclens/civitas-backend/internal/types"
	"github.com/civiclens/civitas-backend/internal/utils"
)

var (
	ErrInvalidSubmissionKind = fmt.Errorf("invalid submission kind")
	ErrUnknownSubmitter      = fmt.Errorf("unknown submitter")
)

type SubmissionInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SourceURL   string `json:"source_url,omitempty"`
	// Controversies only.
	Severity string `json:"severity,omitempty"`
	// Projects only.
	Location string `json:"location,omitempty"`
}

// SubmissionRecord is the caller-facing view of a freshly created submission.
// Creation always succeeds in a pending state; verification happens later.
type SubmissionRecord struct {
	Kind         string    `json:"kind"`
	ID           uuid.UUID `json:"id"`
	PoliticianID uuid.UUID `json:"politician_id"`
	Title        string    `json:"title"`
	Status       string    `json:"status"`
}

type verificationTask struct {
	kind   string
	itemID uuid.UUID
	input  VerificationInput
}

type SubmissionService interface {
	// Submit validates the kind, creates the pending record and enqueues the
	// verification task. The caller never blocks on AI verification.
	Submit(ctx context.Context, politicianID uuid.UUID, kind string, input SubmissionInput, submitterID uuid.UUID) (*SubmissionRecord, error)
	// StartWorker consumes the verification queue until ctx is cancelled.
	StartWorker(ctx context.Context)
	// ProcessNext drains one queued task synchronously; returns false when
	// the queue is empty. Used by tests and graceful shutdown.
	ProcessNext(ctx context.Context) bool
}

type submissionService struct {
	db              *gorm.DB
	log             *logger.Logger
	politicianRepo  repos.PoliticianRepo
	userRepo        repos.UserRepo
	projectRepo     repos.ProjectRepo
	promiseRepo     repos.PromiseRepo
	controversyRepo repos.ControversyRepo
	verification    VerificationService
	queue           chan verificationTask
}

func NewSubmissionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	politicianRepo repos.PoliticianRepo,
	userRepo repos.UserRepo,
	projectRepo repos.ProjectRepo,
	promiseRepo repos.PromiseRepo,
	controversyRepo repos.ControversyRepo,
	verification VerificationService,
) SubmissionService {
	queueSize := utils.GetEnvAsInt("SUBMISSION_QUEUE_SIZE", 256, baseLog)
	if queueSize < 1 {
		queueSize = 256
	}
	return &submissionService{
		db:              db,
		log:             baseLog.With("service", "SubmissionService"),
		politicianRepo:  politicianRepo,
		userRepo:        userRepo,
		projectRepo:     projectRepo,
		promiseRepo:     promiseRepo,
		controversyRepo: controversyRepo,
		verification:    verification,
		queue:           make(chan verificationTask, queueSize),
	}
}

func (s *submissionService) Submit(ctx context.Context, politicianID uuid.UUID, kind string, input SubmissionInput, submitterID uuid.UUID) (*SubmissionRecord, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	switch kind {
	case SubmissionKindProject, SubmissionKindAchievement, SubmissionKindControversy:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSubmissionKind, kind)
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("submission title is required")
	}
	if submitterID == uuid.Nil {
		return nil, fmt.Errorf("submitter is required")
	}
	known, err := s.userRepo.Exists(ctx, nil, submitterID)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSubmitter, submitterID)
	}

	politician, err := s.politicianRepo.GetByID(ctx, nil, politicianID)
	if err != nil {
		return nil, err
	}

	record, err := s.createPending(ctx, politician.ID, kind, input, submitterID)
	if err != nil {
		return nil, err
	}

	task := verificationTask{
		kind:   kind,
		itemID: record.ID,
		input: VerificationInput{
			Kind:        kind,
			Title:       input.Title,
			Description: input.Description,
			SubjectName: politician.Name,
			SourceURL:   input.SourceURL,
		},
	}
	select {
	case s.queue <- task:
	default:
		// A full queue leaves the record pending for manual review rather
		// than blocking the request.
		s.log.Warn("Verification queue full, submission left pending", "kind", kind, "item_id", record.ID)
	}

	return record, nil
}

func (s *submissionService) createPending(ctx context.Context, politicianID uuid.UUID, kind string, input SubmissionInput, submitterID uuid.UUID) (*SubmissionRecord, error) {
	switch kind {
	case SubmissionKindProject:
		project := &types.Project{
			ID:            uuid.New(),
			PoliticianID:  politicianID,
			Title:         input.Title,
			Description:   input.Description,
			Status:        types.ProjectStatusPendingVerification,
			Location:      input.Location,
			SubmittedByID: &submitterID,
			SourceURL:     input.SourceURL,
		}
		if _, err := s.projectRepo.Create(ctx, nil, []*types.Project{project}); err != nil {
			return nil, err
		}
		return &SubmissionRecord{Kind: kind, ID: project.ID, PoliticianID: politicianID, Title: project.Title, Status: project.Status}, nil

	case SubmissionKindAchievement:
		promise := &types.Promise{
			ID:            uuid.New(),
			PoliticianID:  politicianID,
			Title:         input.Title,
			Description:   input.Description,
			Status:        types.PromiseStatusPendingVerification,
			SubmittedByID: &submitterID,
			SourceURL:     input.SourceURL,
		}
		if _, err := s.promiseRepo.Create(ctx, nil, []*types.Promise{promise}); err != nil {
			return nil, err
		}
		return &SubmissionRecord{Kind: kind, ID: promise.ID, PoliticianID: politicianID, Title: promise.Title, Status: promise.Status}, nil

	case SubmissionKindControversy:
		severity := strings.ToUpper(strings.TrimSpace(input.Severity))
		switch severity {
		case types.ControversySeverityLow, types.ControversySeverityMedium, types.ControversySeverityHigh:
		case "":
			severity = types.ControversySeverityLow
		default:
			return nil, fmt.Errorf("invalid controversy severity %q", input.Severity)
		}
		controversy := &types.Controversy{
			ID:            uuid.New(),
			PoliticianID:  politicianID,
			Title:         input.Title,
			Description:   input.Description,
			Severity:      severity,
			IsVerified:    false,
			SubmittedByID: &submitterID,
			SourceURL:     input.SourceURL,
		}
		if _, err := s.controversyRepo.Create(ctx, nil, []*types.Controversy{controversy}); err != nil {
			return nil, err
		}
		return &SubmissionRecord{Kind: kind, ID: controversy.ID, PoliticianID: politicianID, Title: controversy.Title, Status: "unverified"}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidSubmissionKind, kind)
}

func (s *submissionService) StartWorker(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case task := <-s.queue:
				s.handleTask(ctx, task)
			}
		}
	}()
}

func (s *submissionService) ProcessNext(ctx context.Context) bool {
	select {
	case task := <-s.queue:
		s.handleTask(ctx, task)
		return true
	default:
		return false
	}
}

func (s *submissionService) handleTask(ctx context.Context, task verificationTask) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Verification task panic", "kind", task.kind, "item_id", task.itemID, "panic", r)
		}
	}()

	result := s.verification.Verify(ctx, task.input)
	outcome, err := s.verification.ApplyOutcome(ctx, task.kind, task.itemID, result)
	if err != nil {
		s.log.Error("Verification outcome failed to apply", "kind", task.kind, "item_id", task.itemID, "error", err)
		return
	}
	s.log.Info("Verification task finished",
		"kind", task.kind,
		"item_id", task.itemID,
		"suggested_action", result.SuggestedAction,
		"confidence", result.Confidence,
		"outcome", outcome,
	)
}
