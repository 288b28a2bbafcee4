// Package deal defines the data structures for a single deal evaluation and
// derives the affordability metrics (estimated payment, DTI, PTI, LTV) used
// by the lender matcher.
package deal

// Condition indicates whether the vehicle on the deal is new or used. The
// base value supplied with the deal is expected to be the invoice/MSRP
// equivalent for new vehicles and the book/retail equivalent for used ones.
type Condition string

const (
	ConditionNew  Condition = "New"
	ConditionUsed Condition = "Used"
)

// Bureau identifies one of the three credit-reporting sources.
type Bureau string

const (
	BureauTU Bureau = "TU"
	BureauEX Bureau = "EX"
	BureauEQ Bureau = "EQ"
)

// Valid reports whether the bureau is one of the three known sources.
func (b Bureau) Valid() bool {
	switch b {
	case BureauTU, BureauEX, BureauEQ:
		return true
	}
	return false
}

// Scores holds the bureau scores reported for the applicant. A zero value
// means the score for that bureau was not provided.
type Scores struct {
	TU int `yaml:"tu,omitempty" json:"tu,omitempty"`
	EX int `yaml:"ex,omitempty" json:"ex,omitempty"`
	EQ int `yaml:"eq,omitempty" json:"eq,omitempty"`
}

// ByBureau returns the score reported for the given bureau, or 0 when that
// bureau's score was not provided.
func (s Scores) ByBureau(b Bureau) int {
	switch b {
	case BureauTU:
		return s.TU
	case BureauEX:
		return s.EX
	case BureauEQ:
		return s.EQ
	}
	return 0
}

// Highest returns the maximum of the provided scores, or 0 when no score
// was provided at all.
func (s Scores) Highest() int {
	highest := s.TU
	if s.EX > highest {
		highest = s.EX
	}
	if s.EQ > highest {
		highest = s.EQ
	}
	return highest
}

// Input holds the raw numeric inputs for one deal evaluation. Inputs are
// constructed fresh per evaluation from form data and discarded after use;
// zero values are tolerated everywhere (see ComputeMetrics).
type Input struct {
	Condition            Condition `yaml:"condition" json:"condition"`
	AmountFinanced       float64   `yaml:"amountFinanced" json:"amountFinanced"`
	BaseValue            float64   `yaml:"baseValue" json:"baseValue"`
	TermMonths           int       `yaml:"termMonths" json:"termMonths"`
	AnnualRate           float64   `yaml:"annualRate" json:"annualRate"`
	MonthlyIncome        float64   `yaml:"monthlyIncome" json:"monthlyIncome"`
	ExistingInstallments float64   `yaml:"existingInstallments" json:"existingInstallments"`
	TradeInPayment       float64   `yaml:"tradeInPayment" json:"tradeInPayment"`
	Scores               Scores    `yaml:"scores,omitempty" json:"scores,omitempty"`
}
