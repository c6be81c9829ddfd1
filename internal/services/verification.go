package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/civiclens/civitas-backend/internal/clients/ai"
	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/repos"
	"github.com/civiclens/civitas-backend/internal/types"
)

const (
	SubmissionKindProject     = "project"
	SubmissionKindAchievement = "achievement"
	SubmissionKindControversy = "controversy"
)

const (
	ActionApprove     = "approve"
	ActionReject      = "reject"
	ActionNeedsReview = "needs_review"
)

// Auto-transition thresholds. Controversy approval carries a stricter bar
// because a false positive causes public reputational harm; controversies are
// never auto-rejected, only verified or left pending.
const (
	AutoApproveConfidence           = 70.0
	AutoRejectConfidence            = 80.0
	ControversyAutoVerifyConfidence = 85.0
	defaultSafeConfidence           = 30.0
	maxFactChecks                   = 5
)

const (
	OutcomeApproved      = "approved"
	OutcomeRejected      = "rejected"
	OutcomeVerified      = "verified"
	OutcomePendingReview = "pending_review"
)

type VerificationResult struct {
	IsVerified      bool     `json:"is_verified"`
	Confidence      float64  `json:"confidence"`
	Reasoning       string   `json:"reasoning"`
	SuggestedAction string   `json:"suggested_action"`
	FactChecks      []string `json:"fact_checks,omitempty"`
}

type VerificationInput struct {
	Kind        string
	Title       string
	Description string
	SubjectName string
	SourceURL   string
}

type VerificationService interface {
	// Verify asks the AI service for a credibility verdict. It never fails:
	// any error on the external path returns the default-safe result
	// (needs_review, confidence 30), which can never auto-approve anything.
	Verify(ctx context.Context, input VerificationInput) *VerificationResult
	// ApplyOutcome maps an advisory verdict to the conditional state
	// transition on the submitted record and writes the audit log row.
	ApplyOutcome(ctx context.Context, kind string, itemID uuid.UUID, result *VerificationResult) (string, error)
}

type verificationService struct {
	db              *gorm.DB
	log             *logger.Logger
	aiCli           ai.Client
	projectRepo     repos.ProjectRepo
	promiseRepo     repos.PromiseRepo
	controversyRepo repos.ControversyRepo
	logRepo         repos.VerificationLogRepo
}

func NewVerificationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	aiCli ai.Client,
	projectRepo repos.ProjectRepo,
	promiseRepo repos.PromiseRepo,
	controversyRepo repos.ControversyRepo,
	logRepo repos.VerificationLogRepo,
) VerificationService {
	return &verificationService{
		db:              db,
		log:             baseLog.With("service", "VerificationService"),
		aiCli:           aiCli,
		projectRepo:     projectRepo,
		promiseRepo:     promiseRepo,
		controversyRepo: controversyRepo,
		logRepo:         logRepo,
	}
}

func defaultSafeResult(reason string) *VerificationResult {
	return &VerificationResult{
		IsVerified:      false,
		Confidence:      defaultSafeConfidence,
		Reasoning:       reason,
		SuggestedAction: ActionNeedsReview,
	}
}

const verifySystemPrompt = `You are a civic fact-checking assistant. A member of the public has submitted an unverified claim about a politician. Judge the factual plausibility of the claim against well-known public-record context. Be conservative: when you cannot corroborate, say so.

Respond with JSON only:
{
  "is_verified": <true if the claim is plausibly accurate>,
  "confidence": <0-100>,
  "reasoning": "<short explanation>",
  "suggested_action": "approve" | "reject" | "needs_review",
  "fact_checks": ["<up to 5 short notes on specific checkable points>"]
}`

func (s *verificationService) Verify(ctx context.Context, input VerificationInput) *VerificationResult {
	if s.aiCli == nil {
		s.log.Warn("Verification gate has no AI client, returning default-safe result", "kind", input.Kind, "title", input.Title)
		return defaultSafeResult("AI verification unavailable; manual review required")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Submission type: %s\n", input.Kind)
	fmt.Fprintf(&sb, "Politician: %s\n", input.SubjectName)
	fmt.Fprintf(&sb, "Claim title: %s\n", input.Title)
	fmt.Fprintf(&sb, "Claim description: %s\n", input.Description)
	if input.SourceURL != "" {
		fmt.Fprintf(&sb, "Cited source URL: %s\n", input.SourceURL)
	}

	payload, err := s.aiCli.CompleteJSON(ctx, verifySystemPrompt, sb.String())
	if err != nil {
		s.log.Warn("AI verification call failed, returning default-safe result", "kind", input.Kind, "title", input.Title, "error", err)
		return defaultSafeResult("AI verification failed; manual review required")
	}
	return coerceVerificationResult(payload)
}

// coerceVerificationResult validates the model payload field by field; any
// shape problem degrades that field rather than trusting the raw value.
func coerceVerificationResult(payload map[string]interface{}) *VerificationResult {
	out := &VerificationResult{
		Confidence:      defaultSafeConfidence,
		SuggestedAction: ActionNeedsReview,
	}
	if v, ok := payload["is_verified"].(bool); ok {
		out.IsVerified = v
	}
	if v, ok := payload["confidence"].(float64); ok {
		out.Confidence = clamp(0, 100, v)
	}
	if v, ok := payload["reasoning"].(string); ok {
		out.Reasoning = v
	}
	if v, ok := payload["suggested_action"].(string); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case ActionApprove:
			out.SuggestedAction = ActionApprove
		case ActionReject:
			out.SuggestedAction = ActionReject
		default:
			out.SuggestedAction = ActionNeedsReview
		}
	}
	if rawChecks, ok := payload["fact_checks"].([]interface{}); ok {
		for _, rc := range rawChecks {
			if len(out.FactChecks) == maxFactChecks {
				break
			}
			if s, ok := rc.(string); ok && strings.TrimSpace(s) != "" {
				out.FactChecks = append(out.FactChecks, s)
			}
		}
	}
	return out
}

func (s *verificationService) ApplyOutcome(ctx context.Context, kind string, itemID uuid.UUID, result *VerificationResult) (string, error) {
	var outcome string
	var err error
	switch kind {
	case SubmissionKindProject:
		outcome, err = s.applyProject(ctx, itemID, result)
	case SubmissionKindAchievement:
		outcome, err = s.applyAchievement(ctx, itemID, result)
	case SubmissionKindControversy:
		outcome, err = s.applyControversy(ctx, itemID, result)
	default:
		return "", fmt.Errorf("unknown submission kind %q", kind)
	}
	if err != nil {
		return "", err
	}
	s.recordLog(ctx, kind, itemID, result, outcome)
	return outcome, nil
}

func (s *verificationService) applyProject(ctx context.Context, itemID uuid.UUID, result *VerificationResult) (string, error) {
	switch {
	case result.SuggestedAction == ActionApprove && result.Confidence >= AutoApproveConfidence:
		return OutcomeApproved, s.projectRepo.UpdateStatus(ctx, nil, itemID, types.ProjectStatusOngoing)
	case result.SuggestedAction == ActionReject && result.Confidence >= AutoRejectConfidence:
		return OutcomeRejected, s.projectRepo.UpdateStatus(ctx, nil, itemID, types.ProjectStatusRejected)
	default:
		return OutcomePendingReview, nil
	}
}

func (s *verificationService) applyAchievement(ctx context.Context, itemID uuid.UUID, result *VerificationResult) (string, error) {
	switch {
	case result.SuggestedAction == ActionApprove && result.Confidence >= AutoApproveConfidence:
		return OutcomeApproved, s.promiseRepo.UpdateStatus(ctx, nil, itemID, types.PromiseStatusFulfilled)
	case result.SuggestedAction == ActionReject && result.Confidence >= AutoRejectConfidence:
		return OutcomeRejected, s.promiseRepo.UpdateStatus(ctx, nil, itemID, types.PromiseStatusRejected)
	default:
		return OutcomePendingReview, nil
	}
}

func (s *verificationService) applyControversy(ctx context.Context, itemID uuid.UUID, result *VerificationResult) (string, error) {
	if result.SuggestedAction == ActionApprove && result.Confidence >= ControversyAutoVerifyConfidence {
		return OutcomeVerified, s.controversyRepo.MarkVerified(ctx, nil, itemID)
	}
	return OutcomePendingReview, nil
}

// recordLog is best effort; the state transition is already committed and an
// audit write failure should not undo it.
func (s *verificationService) recordLog(ctx context.Context, kind string, itemID uuid.UUID, result *VerificationResult, outcome string) {
	if s.logRepo == nil {
		return
	}
	var checks []byte
	if len(result.FactChecks) > 0 {
		checks, _ = json.Marshal(result.FactChecks)
	}
	row := &types.VerificationLog{
		ID:              uuid.New(),
		ItemType:        kind,
		ItemID:          itemID,
		IsVerified:      result.IsVerified,
		Confidence:      result.Confidence,
		Reasoning:       result.Reasoning,
		SuggestedAction: result.SuggestedAction,
		FactChecks:      checks,
		AppliedOutcome:  outcome,
	}
	if _, err := s.logRepo.Create(ctx, nil, []*types.VerificationLog{row}); err != nil {
		s.log.Warn("Failed to write verification log", "item_type", kind, "item_id", itemID, "error", err)
	}
}
