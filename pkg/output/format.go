// Package output provides utilities for formatting and displaying deal
// evaluation results.
package output

import (
	"fmt"
	"strings"

	"github.com/dealdesk/dealpilot/internal/deal"
	"github.com/dealdesk/dealpilot/internal/lender"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Evaluation aggregates everything one deal submission produced.
type Evaluation struct {
	Metrics         deal.Metrics
	Matches         []string
	Alerts          []lender.Alert
	ChecklistLender string
	Checklist       []string
	Warnings        []string
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(eval Evaluation) {
	p := message.NewPrinter(language.English)

	for _, warning := range eval.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}

	fmt.Printf("--- Deal metrics ---\n")
	fmt.Printf("Metric            | Value\n")
	fmt.Printf("______            | _____\n")
	_, _ = p.Printf("Estimated payment | $%.2f\n", eval.Metrics.Payment)
	_, _ = p.Printf("DTI               | %.2f%%\n", eval.Metrics.DTI)
	_, _ = p.Printf("PTI               | %.2f%%\n", eval.Metrics.PTI)
	_, _ = p.Printf("LTV               | %.2f%%\n", eval.Metrics.LTV)

	fmt.Printf("\n--- Matching lenders ---\n")
	if len(eval.Matches) == 0 {
		fmt.Printf("(none)\n")
	}
	for _, name := range eval.Matches {
		fmt.Printf("%s\n", name)
	}

	fmt.Printf("\n--- Smart alerts ---\n")
	if len(eval.Alerts) == 0 {
		fmt.Printf("(none)\n")
	}
	for _, alert := range eval.Alerts {
		fmt.Printf("%s\n", alert.Message)
	}

	if eval.ChecklistLender != "" {
		fmt.Printf("\n--- Funding checklist for %s ---\n", eval.ChecklistLender)
		if len(eval.Checklist) == 0 {
			fmt.Printf("(no documents required)\n")
		}
		for i, doc := range eval.Checklist {
			fmt.Printf("%d. %s\n", i+1, doc)
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(eval Evaluation) {
	fmt.Printf("\"metric\",\"value\"\n")
	fmt.Printf("\"payment\",\"%.2f\"\n", eval.Metrics.Payment)
	fmt.Printf("\"dti\",\"%.2f\"\n", eval.Metrics.DTI)
	fmt.Printf("\"pti\",\"%.2f\"\n", eval.Metrics.PTI)
	fmt.Printf("\"ltv\",\"%.2f\"\n", eval.Metrics.LTV)
	fmt.Printf("\"matches\",\"%s\"\n", strings.Join(eval.Matches, ";"))

	for _, alert := range eval.Alerts {
		fmt.Printf("\"alert\",\"%s\"\n", alert.Message)
	}
	if eval.ChecklistLender != "" {
		fmt.Printf("\"checklist (%s)\",\"%s\"\n", eval.ChecklistLender, strings.Join(eval.Checklist, ";"))
	}
}
