package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/civiclens/civitas-backend/internal/repos"
	"github.com/civiclens/civitas-backend/internal/types"
)

func newSubmissionFixture(t *testing.T, cli *fakeAIClient) (*testRepos, SubmissionService, *types.Politician, *types.User) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	r := newTestRepos(db, log)
	var verification VerificationService
	if cli == nil {
		verification = NewVerificationService(db, log, nil, r.project, r.promise, r.controversy, r.verifLog)
	} else {
		verification = NewVerificationService(db, log, cli, r.project, r.promise, r.controversy, r.verifLog)
	}
	svc := NewSubmissionService(db, log, r.politician, r.user, r.project, r.promise, r.controversy, verification)
	p := seedPolitician(t, r, "Jane Roe", 0)
	u := seedUser(t, r, "submitter@example.com")
	return r, svc, p, u
}

func TestSubmit_RejectsInvalidInput(t *testing.T) {
	_, svc, p, u := newSubmissionFixture(t, nil)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, p.ID, "rumor", SubmissionInput{Title: "x"}, u.ID); !errors.Is(err, ErrInvalidSubmissionKind) {
		t.Fatalf("expected ErrInvalidSubmissionKind, got %v", err)
	}
	if _, err := svc.Submit(ctx, p.ID, SubmissionKindProject, SubmissionInput{Title: "  "}, u.ID); err == nil {
		t.Fatalf("expected error for blank title")
	}
	if _, err := svc.Submit(ctx, p.ID, SubmissionKindProject, SubmissionInput{Title: "x"}, uuid.Nil); err == nil {
		t.Fatalf("expected error for missing submitter")
	}
	if _, err := svc.Submit(ctx, p.ID, SubmissionKindProject, SubmissionInput{Title: "x"}, uuid.New()); !errors.Is(err, ErrUnknownSubmitter) {
		t.Fatalf("expected ErrUnknownSubmitter, got %v", err)
	}
	if _, err := svc.Submit(ctx, uuid.New(), SubmissionKindProject, SubmissionInput{Title: "x"}, u.ID); !errors.Is(err, repos.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown politician, got %v", err)
	}
}

func TestSubmit_ProjectStartsPendingThenVerifies(t *testing.T) {
	cli := &fakeAIClient{payload: map[string]interface{}{
		"is_verified":      true,
		"confidence":       float64(92),
		"reasoning":        "matches public records",
		"suggested_action": "approve",
	}}
	r, svc, p, u := newSubmissionFixture(t, cli)
	ctx := context.Background()

	record, err := svc.Submit(ctx, p.ID, SubmissionKindProject, SubmissionInput{
		Title:    "Water treatment plant",
		Location: "Springfield",
	}, u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Status != types.ProjectStatusPendingVerification {
		t.Fatalf("expected pending status on submit, got %q", record.Status)
	}

	// Nothing transitions until the queue is drained.
	stored, err := r.project.GetByID(ctx, nil, record.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != types.ProjectStatusPendingVerification {
		t.Fatalf("expected status pending before processing, got %q", stored.Status)
	}

	if !svc.ProcessNext(ctx) {
		t.Fatalf("expected one queued task")
	}
	if svc.ProcessNext(ctx) {
		t.Fatalf("expected queue drained")
	}

	stored, err = r.project.GetByID(ctx, nil, record.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != types.ProjectStatusOngoing {
		t.Fatalf("expected ONGOING after verification, got %q", stored.Status)
	}
	if cli.calls != 1 {
		t.Fatalf("expected one AI call, got %d", cli.calls)
	}
}

func TestSubmit_AchievementLowConfidenceStaysPending(t *testing.T) {
	cli := &fakeAIClient{payload: map[string]interface{}{
		"is_verified":      true,
		"confidence":       float64(55),
		"suggested_action": "approve",
	}}
	r, svc, p, u := newSubmissionFixture(t, cli)
	ctx := context.Background()

	record, err := svc.Submit(ctx, p.ID, SubmissionKindAchievement, SubmissionInput{Title: "Paved 50 roads"}, u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.ProcessNext(ctx) {
		t.Fatalf("expected one queued task")
	}

	stored, err := r.promise.GetByID(ctx, nil, record.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != types.PromiseStatusPendingVerification {
		t.Fatalf("expected low-confidence approval to stay pending, got %q", stored.Status)
	}
}

func TestSubmit_ControversySeverity(t *testing.T) {
	r, svc, p, u := newSubmissionFixture(t, nil)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, p.ID, SubmissionKindControversy, SubmissionInput{
		Title:    "Scandal",
		Severity: "catastrophic",
	}, u.ID); err == nil {
		t.Fatalf("expected error for invalid severity")
	}

	record, err := svc.Submit(ctx, p.ID, SubmissionKindControversy, SubmissionInput{Title: "Scandal"}, u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, err := r.controversy.GetByID(ctx, nil, record.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Severity != types.ControversySeverityLow {
		t.Fatalf("expected omitted severity to default LOW, got %q", stored.Severity)
	}
	if stored.IsVerified {
		t.Fatalf("expected controversy to start unverified")
	}
}

func TestSubmit_AIFailureLeavesRecordPending(t *testing.T) {
	cli := &fakeAIClient{err: errBoom}
	r, svc, p, u := newSubmissionFixture(t, cli)
	ctx := context.Background()

	record, err := svc.Submit(ctx, p.ID, SubmissionKindProject, SubmissionInput{Title: "New library"}, u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.ProcessNext(ctx) {
		t.Fatalf("expected one queued task")
	}

	stored, err := r.project.GetByID(ctx, nil, record.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != types.ProjectStatusPendingVerification {
		t.Fatalf("expected default-safe pending status, got %q", stored.Status)
	}

	// The default-safe verdict is still audited.
	logs, err := r.verifLog.ListByItem(ctx, nil, SubmissionKindProject, record.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 1 || logs[0].AppliedOutcome != OutcomePendingReview {
		t.Fatalf("expected one pending_review audit row, got %+v", logs)
	}
}
