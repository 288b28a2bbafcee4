package deal

import (
	"math"
	"testing"
)

const tolerance = 0.01

func TestComputePayment(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		annualRate float64
		termMonths int
		expected   float64
	}{
		{
			name:       "Typical 72 month deal",
			amount:     35000,
			annualRate: 8.5,
			termMonths: 72,
			expected:   35000 * (1 + 0.085*6) / 72,
		},
		{
			name:       "Zero rate divides principal by term",
			amount:     12000,
			annualRate: 0,
			termMonths: 60,
			expected:   200,
		},
		{
			name:       "Zero term yields zero payment",
			amount:     25000,
			annualRate: 6.0,
			termMonths: 0,
			expected:   0,
		},
		{
			name:       "Negative term treated as unset",
			amount:     25000,
			annualRate: 6.0,
			termMonths: -12,
			expected:   0,
		},
		{
			name:       "Zero amount",
			amount:     0,
			annualRate: 9.9,
			termMonths: 48,
			expected:   0,
		},
		{
			name:       "Twelve month term",
			amount:     12000,
			annualRate: 10,
			termMonths: 12,
			expected:   1100, // 12000 * 1.10 / 12
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputePayment(tt.amount, tt.annualRate, tt.termMonths)
			if math.Abs(result-tt.expected) > tolerance {
				t.Errorf("ComputePayment() = %.4f, expected %.4f", result, tt.expected)
			}
		})
	}
}

func TestComputeMetrics(t *testing.T) {
	// Reference deal: income=6000, amount=35000, base=37000, term=72,
	// rate=8.5, existing=500, tradeIn=0.
	input := Input{
		Condition:            ConditionUsed,
		AmountFinanced:       35000,
		BaseValue:            37000,
		TermMonths:           72,
		AnnualRate:           8.5,
		MonthlyIncome:        6000,
		ExistingInstallments: 500,
	}

	metrics := ComputeMetrics(input)

	expectedPayment := 35000 * (1 + 0.085*6) / 72
	if math.Abs(metrics.Payment-expectedPayment) > tolerance {
		t.Errorf("Payment = %.4f, expected %.4f", metrics.Payment, expectedPayment)
	}

	expectedDTI := (500 + expectedPayment) / 6000 * 100
	if math.Abs(metrics.DTI-expectedDTI) > tolerance {
		t.Errorf("DTI = %.4f, expected %.4f", metrics.DTI, expectedDTI)
	}

	expectedPTI := expectedPayment / 6000 * 100
	if math.Abs(metrics.PTI-expectedPTI) > tolerance {
		t.Errorf("PTI = %.4f, expected %.4f", metrics.PTI, expectedPTI)
	}

	if math.Abs(metrics.LTV-94.5945945946) > tolerance {
		t.Errorf("LTV = %.4f, expected 94.5946", metrics.LTV)
	}
}

func TestComputeMetricsDegenerateDenominators(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		check func(t *testing.T, m Metrics)
	}{
		{
			name: "Zero income zeroes DTI and PTI",
			input: Input{
				AmountFinanced: 20000,
				BaseValue:      22000,
				TermMonths:     60,
				AnnualRate:     7,
			},
			check: func(t *testing.T, m Metrics) {
				if m.DTI != 0 {
					t.Errorf("DTI = %v, expected 0 for zero income", m.DTI)
				}
				if m.PTI != 0 {
					t.Errorf("PTI = %v, expected 0 for zero income", m.PTI)
				}
				if m.LTV == 0 {
					t.Error("LTV should still compute with zero income")
				}
			},
		},
		{
			name: "Zero base value zeroes LTV only",
			input: Input{
				AmountFinanced: 20000,
				TermMonths:     60,
				AnnualRate:     7,
				MonthlyIncome:  4000,
			},
			check: func(t *testing.T, m Metrics) {
				if m.LTV != 0 {
					t.Errorf("LTV = %v, expected 0 for zero base value", m.LTV)
				}
				if m.PTI == 0 {
					t.Error("PTI should still compute with zero base value")
				}
			},
		},
		{
			name:  "All zero input produces all zero metrics",
			input: Input{},
			check: func(t *testing.T, m Metrics) {
				if m.Payment != 0 || m.DTI != 0 || m.PTI != 0 || m.LTV != 0 {
					t.Errorf("expected zero metrics, got %+v", m)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ComputeMetrics(tt.input))
		})
	}
}

func TestNetInstallmentNeverNegative(t *testing.T) {
	// Trade-in payment larger than existing obligations must clamp the net
	// installment to zero, so DTI equals PTI.
	input := Input{
		AmountFinanced:       15000,
		BaseValue:            16000,
		TermMonths:           48,
		AnnualRate:           6,
		MonthlyIncome:        5000,
		ExistingInstallments: 300,
		TradeInPayment:       800,
	}

	metrics := ComputeMetrics(input)
	if math.Abs(metrics.DTI-metrics.PTI) > 1e-9 {
		t.Errorf("DTI = %v and PTI = %v should be equal when trade-in exceeds obligations",
			metrics.DTI, metrics.PTI)
	}
}

func TestComputeMetricsIdempotent(t *testing.T) {
	input := Input{
		Condition:            ConditionNew,
		AmountFinanced:       28000,
		BaseValue:            30000,
		TermMonths:           66,
		AnnualRate:           5.9,
		MonthlyIncome:        5500,
		ExistingInstallments: 420,
		TradeInPayment:       150,
		Scores:               Scores{TU: 710, EX: 695},
	}

	first := ComputeMetrics(input)
	second := ComputeMetrics(input)
	if first != second {
		t.Errorf("ComputeMetrics is not idempotent: %+v != %+v", first, second)
	}
}

func TestScoresByBureau(t *testing.T) {
	scores := Scores{TU: 710, EQ: 680}

	tests := []struct {
		name     string
		bureau   Bureau
		expected int
	}{
		{name: "Provided TU", bureau: BureauTU, expected: 710},
		{name: "Missing EX", bureau: BureauEX, expected: 0},
		{name: "Provided EQ", bureau: BureauEQ, expected: 680},
		{name: "Unknown bureau", bureau: Bureau("XX"), expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scores.ByBureau(tt.bureau); got != tt.expected {
				t.Errorf("ByBureau(%s) = %d, expected %d", tt.bureau, got, tt.expected)
			}
		})
	}
}

func TestScoresHighest(t *testing.T) {
	tests := []struct {
		name     string
		scores   Scores
		expected int
	}{
		{name: "All provided", scores: Scores{TU: 700, EX: 720, EQ: 690}, expected: 720},
		{name: "One provided", scores: Scores{EQ: 655}, expected: 655},
		{name: "None provided", scores: Scores{}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scores.Highest(); got != tt.expected {
				t.Errorf("Highest() = %d, expected %d", got, tt.expected)
			}
		})
	}
}
