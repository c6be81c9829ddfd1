// Package metrics holds the deterministic sub-score calculators. Every
// function is pure: no I/O, no clock, output fully determined by the input
// collection. All results are in [0, 100].
package metrics

import (
	"math"

	"github.com/civiclens/civitas-backend/internal/types"
)

const neutralScore = 50

// PromiseFulfillment scores fulfilled promises against broken ones. Only
// resolved promises count; rows still pending verification or rejected by the
// gate never influence the public score. No resolved promises -> neutral 50.
func PromiseFulfillment(promises []types.Promise) float64 {
	var fulfilled, inProgress, broken int
	for _, p := range promises {
		switch p.Status {
		case types.PromiseStatusFulfilled:
			fulfilled++
		case types.PromiseStatusInProgress:
			inProgress++
		case types.PromiseStatusBroken:
			broken++
		}
	}
	total := fulfilled + inProgress + broken
	if total == 0 {
		return neutralScore
	}
	// Round half to even: a 62.5 average reads as 62, not 63.
	return math.RoundToEven(float64(fulfilled*100+inProgress*50+broken*0) / float64(total))
}

// LegislativeActivity sums a volume component and a pass-rate component, each
// capped at 50. Empty -> neutral 50.
func LegislativeActivity(bills []types.Bill) float64 {
	if len(bills) == 0 {
		return neutralScore
	}
	quantityScore := math.Min(50, float64(len(bills))*5)

	passed := 0
	for _, b := range bills {
		if b.Status == types.BillStatusPassed {
			passed++
		}
	}
	passRate := float64(25)
	if len(bills) > 0 {
		passRate = float64(passed) / float64(len(bills)) * 50
	}
	return quantityScore + passRate
}

// ProjectCompletion weighs completed projects at 100, ongoing at 60 and
// abandoned at 0. Only projects past the verification gate count. No such
// projects -> neutral 50.
func ProjectCompletion(projects []types.Project) float64 {
	var completed, ongoing, abandoned int
	for _, p := range projects {
		switch p.Status {
		case types.ProjectStatusCompleted:
			completed++
		case types.ProjectStatusOngoing:
			ongoing++
		case types.ProjectStatusAbandoned:
			abandoned++
		}
	}
	total := completed + ongoing + abandoned
	if total == 0 {
		return neutralScore
	}
	return math.RoundToEven(float64(completed*100+ongoing*60+abandoned*0) / float64(total))
}

// ControversyImpact is a penalty, not a score: verified controversies add
// severity-weighted points (HIGH 30, MEDIUM 15, LOW 5) up to a cap of 100.
// Nothing verified -> 0, no penalty.
func ControversyImpact(controversies []types.Controversy) float64 {
	impact := 0.0
	for _, c := range controversies {
		if !c.IsVerified {
			continue
		}
		switch c.Severity {
		case types.ControversySeverityHigh:
			impact += 30
		case types.ControversySeverityMedium:
			impact += 15
		case types.ControversySeverityLow:
			impact += 5
		}
	}
	return math.Min(100, impact)
}
