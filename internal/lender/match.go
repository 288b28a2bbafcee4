package lender

import (
	"fmt"

	"github.com/dealdesk/dealpilot/internal/deal"
	"github.com/dealdesk/dealpilot/pkg/constants"
	"github.com/dealdesk/dealpilot/pkg/format"
	"github.com/dealdesk/dealpilot/pkg/mathutil"
)

// SelectScore picks the bureau score a rule evaluates: the preferred
// bureau's score when provided, otherwise the highest of whatever scores
// were provided, otherwise 0. A zero effective score keeps the lender out
// of auto-approval alerts but does not affect LTV/PTI matching.
func SelectScore(rule Rule, scores deal.Scores) int {
	if preferred := scores.ByBureau(rule.PreferredBureau); preferred > 0 {
		return preferred
	}
	return scores.Highest()
}

// MatchLenders returns the names of all lenders whose eligibility ceilings
// the deal satisfies: LTV <= maxLTV and PTI <= maxPTI, both inclusive.
// Results follow rule set insertion order with no further sorting.
func MatchLenders(metrics deal.Metrics, rs *RuleSet) []string {
	var matches []string
	for _, name := range rs.names {
		rule := rs.rules[name]
		if metrics.LTV <= rule.MaxLTV && metrics.PTI <= rule.MaxPTI {
			matches = append(matches, name)
		}
	}
	return matches
}

// Alert describes a near-miss: a small LTV reduction would move a
// high-score applicant into a lender's auto-approval zone.
type Alert struct {
	Lender    string  `json:"lender"`
	DeltaLTV  float64 `json:"deltaLtv"`
	Reduction float64 `json:"reduction"`
	Message   string  `json:"message"`
}

// ComputeAlerts evaluates every lender for a near-miss auto-approval alert.
// A lender alerts when the effective score meets its auto-approval score and
// the deal's LTV is above the auto-approval LTV by at most five points.
// Lenders already at or below the threshold get no alert, and lenders more
// than five points over are too far for a nudge. Alerting is deliberately
// independent of MatchLenders: a lender can alert even while failing the
// max-LTV/max-PTI gate, since the alert points at a different deal shape.
//
// baseValue is the LTV denominator from the deal; it converts the LTV delta
// into the currency reduction quoted in the alert message.
func ComputeAlerts(metrics deal.Metrics, rs *RuleSet, scores deal.Scores, baseValue float64) []Alert {
	var alerts []Alert
	for _, name := range rs.names {
		rule := rs.rules[name]
		if SelectScore(rule, scores) < rule.AutoApprovalScore {
			continue
		}
		delta := metrics.LTV - rule.AutoApprovalLTV
		if delta <= 0 || delta > constants.AlertWindowPercent {
			continue
		}
		reduction := mathutil.ApplyPercentage(baseValue, delta)
		alerts = append(alerts, Alert{
			Lender:    name,
			DeltaLTV:  delta,
			Reduction: reduction,
			Message: fmt.Sprintf("%s: reduce LTV by %.2f%% (about %s) to reach auto-approval",
				name, delta, format.Currency(reduction)),
		})
	}
	return alerts
}
