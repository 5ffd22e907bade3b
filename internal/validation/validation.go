// Package validation decides whether both sides of a case are ready for adjudication.
package validation

import (
	"fmt"

	"argprep/internal/model"
	"argprep/internal/sequence"
)

const (
	// CaseImbalanceTolerance is the point-count difference allowed between sides.
	CaseImbalanceTolerance = 2
	// WordDifferenceRatio is the share of side A's word count above which a word gap is flagged.
	WordDifferenceRatio = 0.5
)

// Validate builds the readiness report for two side records. It never fails:
// problems are reported as issues (blocking) or warnings.
func Validate(a, b model.SideResult) model.ValidationReport {
	r := model.ValidationReport{
		Issues:   []string{},
		Warnings: []string{},
	}

	if a.CombinedText == "" {
		r.Issues = append(r.Issues, "Side A has no arguments")
	}
	if b.CombinedText == "" {
		r.Issues = append(r.Issues, "Side B has no arguments")
	}

	pointsA, pointsB := len(a.AllPoints), len(b.AllPoints)
	ok, msg := sequence.ValidateBalance(pointsA, pointsB, CaseImbalanceTolerance)
	switch {
	case !ok:
		r.Issues = append(r.Issues, msg)
	case msg != "":
		r.Warnings = append(r.Warnings, msg)
	}

	// The threshold is relative to side A only.
	wordsA, wordsB := a.Summary.TotalWords, b.Summary.TotalWords
	if diff := wordsA - wordsB; float64(abs(diff)) > float64(wordsA)*WordDifferenceRatio {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Significant word count difference: A=%d, B=%d", wordsA, wordsB))
	}

	r.IsValid = len(r.Issues) == 0
	r.Statistics = model.Statistics{
		SideA: model.SideStatistics{Points: pointsA, Words: wordsA, Files: a.Summary.FileCount},
		SideB: model.SideStatistics{Points: pointsB, Words: wordsB, Files: b.Summary.FileCount},
	}
	return r
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
