package validation

import (
	"fmt"

	"github.com/dealdesk/dealpilot/internal/deal"
	"github.com/dealdesk/dealpilot/pkg/constants"
)

// CheckDealInput enforces the form-level input contract and returns
// warnings: term in [1,120] when provided, bureau scores in [300,900] when
// provided, currency fields non-negative. Violations are warnings rather
// than errors because the metrics calculator tolerates any of these values;
// the warnings exist so the UI collaborator can surface them.
func CheckDealInput(input deal.Input) []string {
	var warnings []string

	if input.TermMonths != 0 &&
		(input.TermMonths < constants.MinTermMonths || input.TermMonths > constants.MaxTermMonths) {
		warnings = append(warnings, fmt.Sprintf("term of %d months is outside [%d, %d]",
			input.TermMonths, constants.MinTermMonths, constants.MaxTermMonths))
	}

	for _, check := range []struct {
		name  string
		value float64
	}{
		{"amount financed", input.AmountFinanced},
		{"base value", input.BaseValue},
		{"annual rate", input.AnnualRate},
		{"monthly income", input.MonthlyIncome},
		{"existing installments", input.ExistingInstallments},
		{"trade-in payment", input.TradeInPayment},
	} {
		if check.value < 0 {
			warnings = append(warnings, fmt.Sprintf("%s must not be negative, got %.2f",
				check.name, check.value))
		}
	}

	for _, score := range []struct {
		bureau deal.Bureau
		value  int
	}{
		{deal.BureauTU, input.Scores.TU},
		{deal.BureauEX, input.Scores.EX},
		{deal.BureauEQ, input.Scores.EQ},
	} {
		if score.value != 0 &&
			(score.value < constants.MinBureauScore || score.value > constants.MaxBureauScore) {
			warnings = append(warnings, fmt.Sprintf("%s score of %d is outside [%d, %d]",
				score.bureau, score.value, constants.MinBureauScore, constants.MaxBureauScore))
		}
	}

	if input.Condition != "" &&
		input.Condition != deal.ConditionNew && input.Condition != deal.ConditionUsed {
		warnings = append(warnings, fmt.Sprintf("unknown vehicle condition %q", input.Condition))
	}

	return warnings
}
