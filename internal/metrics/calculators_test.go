package metrics

import (
	"testing"

	"github.com/civiclens/civitas-backend/internal/types"
)

func promisesWith(fulfilled, inProgress, broken, pending int) []types.Promise {
	out := make([]types.Promise, 0, fulfilled+inProgress+broken+pending)
	add := func(n int, status string) {
		for i := 0; i < n; i++ {
			out = append(out, types.Promise{Status: status})
		}
	}
	add(fulfilled, types.PromiseStatusFulfilled)
	add(inProgress, types.PromiseStatusInProgress)
	add(broken, types.PromiseStatusBroken)
	add(pending, types.PromiseStatusPendingVerification)
	return out
}

func TestPromiseFulfillment_EmptyIsNeutral(t *testing.T) {
	if got := PromiseFulfillment(nil); got != 50 {
		t.Fatalf("expected neutral 50, got %v", got)
	}
}

func TestPromiseFulfillment_MixedResolvedStatuses(t *testing.T) {
	// 2 fulfilled, 1 in progress, 1 broken: (200+50+0)/4 = 62.5 -> 62.
	got := PromiseFulfillment(promisesWith(2, 1, 1, 0))
	if got != 62 {
		t.Fatalf("expected 62, got %v", got)
	}
	// 30 fulfilled, 20 in progress, 12 broken: 4000/62 = 64.52 -> 65.
	got = PromiseFulfillment(promisesWith(30, 20, 12, 0))
	if got != 65 {
		t.Fatalf("expected 65, got %v", got)
	}
}

func TestPromiseFulfillment_IgnoresPendingAndRejected(t *testing.T) {
	promises := promisesWith(1, 0, 0, 5)
	promises = append(promises, types.Promise{Status: types.PromiseStatusRejected})
	if got := PromiseFulfillment(promises); got != 100 {
		t.Fatalf("expected pending/rejected rows to be ignored, got %v", got)
	}
}

func TestPromiseFulfillment_AllBroken(t *testing.T) {
	if got := PromiseFulfillment(promisesWith(0, 0, 4, 0)); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestLegislativeActivity_EmptyIsNeutral(t *testing.T) {
	if got := LegislativeActivity(nil); got != 50 {
		t.Fatalf("expected neutral 50, got %v", got)
	}
}

func TestLegislativeActivity_VolumeCapsAtFifty(t *testing.T) {
	bills := make([]types.Bill, 20)
	for i := range bills {
		bills[i] = types.Bill{Status: types.BillStatusPassed}
	}
	if got := LegislativeActivity(bills); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
}

func TestLegislativeActivity_PassRateComponent(t *testing.T) {
	bills := []types.Bill{
		{Status: types.BillStatusPassed},
		{Status: types.BillStatusRejected},
		{Status: types.BillStatusProposed},
		{Status: types.BillStatusInCommittee},
	}
	// quantity 4*5=20, pass rate 1/4*50=12.5
	if got := LegislativeActivity(bills); got != 32.5 {
		t.Fatalf("expected 32.5, got %v", got)
	}
}

func TestProjectCompletion_EmptyIsNeutral(t *testing.T) {
	if got := ProjectCompletion(nil); got != 50 {
		t.Fatalf("expected neutral 50, got %v", got)
	}
}

func TestProjectCompletion_WeightsStatuses(t *testing.T) {
	projects := []types.Project{
		{Status: types.ProjectStatusCompleted},
		{Status: types.ProjectStatusOngoing},
		{Status: types.ProjectStatusAbandoned},
		{Status: types.ProjectStatusPendingVerification},
		{Status: types.ProjectStatusRejected},
	}
	// (100+60+0)/3 = 53.33 -> 53; gated rows ignored
	if got := ProjectCompletion(projects); got != 53 {
		t.Fatalf("expected 53, got %v", got)
	}
}

func TestControversyImpact_UnverifiedDontCount(t *testing.T) {
	controversies := []types.Controversy{
		{Severity: types.ControversySeverityHigh, IsVerified: false},
		{Severity: types.ControversySeverityMedium, IsVerified: false},
	}
	if got := ControversyImpact(controversies); got != 0 {
		t.Fatalf("expected 0 for unverified controversies, got %v", got)
	}
}

func TestControversyImpact_SeverityWeights(t *testing.T) {
	controversies := []types.Controversy{
		{Severity: types.ControversySeverityHigh, IsVerified: true},
		{Severity: types.ControversySeverityMedium, IsVerified: true},
		{Severity: types.ControversySeverityLow, IsVerified: true},
	}
	if got := ControversyImpact(controversies); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
}

func TestControversyImpact_CapsAtHundred(t *testing.T) {
	controversies := make([]types.Controversy, 10)
	for i := range controversies {
		controversies[i] = types.Controversy{Severity: types.ControversySeverityHigh, IsVerified: true}
	}
	if got := ControversyImpact(controversies); got != 100 {
		t.Fatalf("expected cap at 100, got %v", got)
	}
}
