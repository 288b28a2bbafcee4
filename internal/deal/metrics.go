package deal

import (
	"github.com/dealdesk/dealpilot/pkg/constants"
	"github.com/dealdesk/dealpilot/pkg/mathutil"
)

// Metrics holds the derived affordability metrics for a deal. All values
// keep full floating-point precision; rounding to two decimals is a display
// concern, not part of this contract.
type Metrics struct {
	Payment float64 `json:"payment"`
	DTI     float64 `json:"dti"`
	PTI     float64 `json:"pti"`
	LTV     float64 `json:"ltv"`
}

// ComputePayment estimates the monthly payment using a simple-interest
// approximation:
//
//	payment = amount * (1 + rate/100 * term/12) / term
//
// This is intentionally not an amortized-payment formula; the crude estimate
// is part of the output contract and must not be "improved". A term of zero
// (incomplete form) yields a payment of 0.
func ComputePayment(amountFinanced, annualRatePercent float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	years := float64(termMonths) / constants.MonthsPerYear
	factor := 1 + (annualRatePercent/constants.PercentageMultiplier)*years
	return amountFinanced * factor / float64(termMonths)
}

// ComputeMetrics derives the full metric set for a deal. It is a pure
// function: identical input yields identical output, and it never fails.
// Degenerate denominators (zero income, zero base value, zero term) all
// degrade to 0 so an incomplete form still produces a displayable result.
func ComputeMetrics(input Input) Metrics {
	payment := ComputePayment(input.AmountFinanced, input.AnnualRate, input.TermMonths)

	// The extinguished trade-in payment reduces the debt load but never
	// drives it negative.
	netInstallment := mathutil.Max(input.ExistingInstallments-input.TradeInPayment, 0)

	return Metrics{
		Payment: payment,
		DTI:     mathutil.CalculatePercentage(netInstallment+payment, input.MonthlyIncome),
		PTI:     mathutil.CalculatePercentage(payment, input.MonthlyIncome),
		LTV:     mathutil.CalculatePercentage(input.AmountFinanced, input.BaseValue),
	}
}
