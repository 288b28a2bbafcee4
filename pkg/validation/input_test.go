package validation

import (
	"testing"

	"github.com/dealdesk/dealpilot/internal/deal"
)

func TestCheckDealInput(t *testing.T) {
	tests := []struct {
		name         string
		input        deal.Input
		wantWarnings int
	}{
		{
			name: "Well formed deal",
			input: deal.Input{
				Condition:      deal.ConditionNew,
				AmountFinanced: 30000,
				BaseValue:      32000,
				TermMonths:     72,
				AnnualRate:     7.5,
				MonthlyIncome:  5000,
				Scores:         deal.Scores{TU: 710},
			},
			wantWarnings: 0,
		},
		{
			name:         "Empty form is tolerated",
			input:        deal.Input{},
			wantWarnings: 0,
		},
		{
			name:         "Term over bound",
			input:        deal.Input{TermMonths: 121},
			wantWarnings: 1,
		},
		{
			name:         "Term under bound is only possible as negative",
			input:        deal.Input{TermMonths: -6},
			wantWarnings: 1,
		},
		{
			name:         "Score below floor",
			input:        deal.Input{Scores: deal.Scores{EX: 299}},
			wantWarnings: 1,
		},
		{
			name:         "Score above ceiling",
			input:        deal.Input{Scores: deal.Scores{EQ: 901}},
			wantWarnings: 1,
		},
		{
			name:         "Boundary scores are fine",
			input:        deal.Input{Scores: deal.Scores{TU: 300, EX: 900}},
			wantWarnings: 0,
		},
		{
			name:         "Negative currency fields",
			input:        deal.Input{AmountFinanced: -1, MonthlyIncome: -500},
			wantWarnings: 2,
		},
		{
			name:         "Unknown condition",
			input:        deal.Input{Condition: "Refurbished"},
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := CheckDealInput(tt.input)
			if len(warnings) != tt.wantWarnings {
				t.Errorf("CheckDealInput() = %v, expected %d warnings", warnings, tt.wantWarnings)
			}
		})
	}
}
