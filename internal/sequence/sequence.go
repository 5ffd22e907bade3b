// Package sequence tracks the order in which the two sides of a case submitted
// material and reports round structure and turn-taking imbalance.
//
// The entry list is owned and persisted by the caller; nothing here keeps state.
package sequence

import (
	"fmt"
	"sort"

	"argprep/internal/model"
)

const (
	// DefaultRoundTolerance is the submission-count difference tolerated between sides.
	DefaultRoundTolerance = 1
	// MaxFollowUps bounds the follow-up rounds a case store accepts per case.
	MaxFollowUps = 5
)

// Record returns the entry to append for a new submission. Order is len(entries)+1.
func Record(entries []model.SequenceEntry, side model.Side, text string, pointCount int) model.SequenceEntry {
	return model.SequenceEntry{
		Side:       side,
		Order:      len(entries) + 1,
		Text:       text,
		PointCount: pointCount,
	}
}

// Summarize sorts entries by Order, partitions them by side and annotates
// consecutive submissions from the same side. BalanceNote carries the
// ValidateBalance message at DefaultRoundTolerance. The input slice is not modified.
func Summarize(entries []model.SequenceEntry) model.SequenceSummary {
	sorted := make([]model.SequenceEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	s := model.SequenceSummary{
		SideA: []model.SequenceEntry{},
		SideB: []model.SequenceEntry{},
		Order: make([]string, 0, len(sorted)),
	}
	for i := range sorted {
		e := &sorted[i]
		if i > 0 && e.Side == sorted[i-1].Side {
			e.Warning = fmt.Sprintf("Multiple consecutive arguments from Side %s", e.Side)
		}
		switch e.Side {
		case model.SideA:
			s.SideA = append(s.SideA, *e)
		case model.SideB:
			s.SideB = append(s.SideB, *e)
		}
		s.Order = append(s.Order, fmt.Sprintf("Round %d: Side %s", i+1, e.Side))
	}
	s.TotalRounds = max(len(s.SideA), len(s.SideB))
	s.IsBalanced = len(s.SideA) == len(s.SideB)
	_, s.BalanceNote = ValidateBalance(len(s.SideA), len(s.SideB), DefaultRoundTolerance)
	return s
}

// ValidateBalance reports whether two counts are within maxDifference of each other.
// A difference of exactly maxDifference is valid but carries a message.
func ValidateBalance(countA, countB, maxDifference int) (bool, string) {
	diff := countA - countB
	if diff < 0 {
		diff = -diff
	}
	if diff > maxDifference {
		return false, fmt.Sprintf("Imbalanced arguments: Side A has %d, Side B has %d", countA, countB)
	}
	if diff == maxDifference {
		larger := model.SideB
		if countA > countB {
			larger = model.SideA
		}
		return true, fmt.Sprintf("Side %s has one more argument", larger)
	}
	return true, ""
}
