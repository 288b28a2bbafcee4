// Package lender defines the per-lender eligibility rules and implements the
// matching, smart-alert, and checklist operations over a rule set.
package lender

import (
	"fmt"

	"github.com/dealdesk/dealpilot/internal/deal"
	"github.com/dealdesk/dealpilot/pkg/constants"
)

// ValuationBase identifies which backend valuation a lender uses. It is
// informational only and does not participate in the metric computation.
type ValuationBase string

const (
	BaseInvoice ValuationBase = "Invoice"
	BaseMSRP    ValuationBase = "MSRP"
	BaseBook    ValuationBase = "Book"
)

// Valid reports whether the valuation base is one of the known values.
func (b ValuationBase) Valid() bool {
	switch b {
	case BaseInvoice, BaseMSRP, BaseBook:
		return true
	}
	return false
}

// Rule holds one lender's eligibility thresholds and funding checklist.
// Every field must be specified; the checklist may be empty.
type Rule struct {
	MaxLTV            float64       `yaml:"maxLtv" json:"maxLtv"`
	MaxPTI            float64       `yaml:"maxPti" json:"maxPti"`
	AutoApprovalLTV   float64       `yaml:"autoApprovalLtv" json:"autoApprovalLtv"`
	AutoApprovalScore int           `yaml:"autoApprovalScore" json:"autoApprovalScore"`
	PreferredBureau   deal.Bureau   `yaml:"preferredBureau" json:"preferredBureau"`
	BackendBase       ValuationBase `yaml:"backendBase" json:"backendBase"`
	Checklist         []string      `yaml:"checklist" json:"checklist"`
}

// Validate checks the enum fields and numeric sanity of a rule. Mutations
// go through this at the boundary so a loaded rule set never needs
// re-validation.
func (r Rule) Validate() error {
	if !r.PreferredBureau.Valid() {
		return fmt.Errorf("invalid preferred bureau %q", r.PreferredBureau)
	}
	if !r.BackendBase.Valid() {
		return fmt.Errorf("invalid backend valuation base %q", r.BackendBase)
	}
	if r.MaxLTV < 0 || r.MaxPTI < 0 || r.AutoApprovalLTV < 0 {
		return fmt.Errorf("rule thresholds must be non-negative")
	}
	if r.AutoApprovalScore < 0 {
		return fmt.Errorf("auto-approval score must be non-negative")
	}
	return nil
}

// DefaultRule returns the baseline rule inserted when a lender is added by
// name only. The caller is expected to edit the values afterward.
func DefaultRule() Rule {
	return Rule{
		MaxLTV:            constants.DefaultRuleMaxLTV,
		MaxPTI:            constants.DefaultRuleMaxPTI,
		AutoApprovalLTV:   constants.DefaultRuleAutoLTV,
		AutoApprovalScore: constants.DefaultRuleAutoScore,
		PreferredBureau:   deal.BureauTU,
		BackendBase:       BaseInvoice,
		Checklist:         []string{},
	}
}

// DefaultRuleSet returns the built-in rule set used when no persisted rules
// exist yet.
func DefaultRuleSet() *RuleSet {
	rs := NewRuleSet()
	rs.Upsert("SSFCU", Rule{
		MaxLTV:            115,
		MaxPTI:            15,
		AutoApprovalLTV:   100,
		AutoApprovalScore: 720,
		PreferredBureau:   deal.BureauTU,
		BackendBase:       BaseBook,
		Checklist: []string{
			"Signed credit application",
			"Proof of income",
			"Proof of residence",
			"Buyer's order",
		},
	})
	rs.Upsert("BOA", Rule{
		MaxLTV:            120,
		MaxPTI:            18,
		AutoApprovalLTV:   105,
		AutoApprovalScore: 700,
		PreferredBureau:   deal.BureauEX,
		BackendBase:       BaseInvoice,
		Checklist: []string{
			"Signed credit application",
			"Proof of income",
			"Driver's license copy",
			"Buyer's order",
		},
	})
	rs.Upsert("TD", Rule{
		MaxLTV:            125,
		MaxPTI:            20,
		AutoApprovalLTV:   110,
		AutoApprovalScore: 680,
		PreferredBureau:   deal.BureauEQ,
		BackendBase:       BaseBook,
		Checklist: []string{
			"Signed credit application",
			"Proof of insurance",
			"Buyer's order",
		},
	})
	rs.Upsert("GTCU", Rule{
		MaxLTV:            130,
		MaxPTI:            15,
		AutoApprovalLTV:   100,
		AutoApprovalScore: 700,
		PreferredBureau:   deal.BureauTU,
		BackendBase:       BaseMSRP,
		Checklist: []string{
			"Signed credit application",
			"Proof of income",
			"Proof of insurance",
			"Membership application",
		},
	})
	return rs
}
