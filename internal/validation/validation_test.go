package validation

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"argprep/internal/model"
)

func side(s model.Side, text string, points, words, files int) model.SideResult {
	r := model.SideResult{Side: s, CombinedText: text}
	for i := 0; i < points; i++ {
		r.AllPoints = append(r.AllPoints, model.ArgumentPoint{Index: strconv.Itoa(i + 1), Content: "p"})
	}
	r.Summary = model.Summary{FileCount: files, TotalWords: words, TotalPoints: points}
	return r
}

func TestValidate_Balanced(t *testing.T) {
	r := Validate(side(model.SideA, "a", 3, 100, 1), side(model.SideB, "b", 3, 120, 2))

	assert.True(t, r.IsValid)
	assert.Empty(t, r.Issues)
	assert.Empty(t, r.Warnings)
	assert.Equal(t, model.Statistics{
		SideA: model.SideStatistics{Points: 3, Words: 100, Files: 1},
		SideB: model.SideStatistics{Points: 3, Words: 120, Files: 2},
	}, r.Statistics)
}

func TestValidate_EmptySide(t *testing.T) {
	r := Validate(side(model.SideA, "", 0, 0, 0), side(model.SideB, "reply", 1, 10, 1))

	assert.False(t, r.IsValid)
	assert.Contains(t, r.Issues, "Side A has no arguments")
	assert.NotContains(t, r.Issues, "Side B has no arguments")
	assert.Equal(t, 10, r.Statistics.SideB.Words)
}

func TestValidate_BothEmpty(t *testing.T) {
	r := Validate(model.SideResult{}, model.SideResult{})
	assert.False(t, r.IsValid)
	assert.Equal(t, []string{"Side A has no arguments", "Side B has no arguments"}, r.Issues)
}

func TestValidate_PointImbalance(t *testing.T) {
	t.Run("beyond tolerance is an issue", func(t *testing.T) {
		r := Validate(side(model.SideA, "a", 6, 100, 1), side(model.SideB, "b", 3, 100, 1))
		assert.False(t, r.IsValid)
		assert.Equal(t, []string{"Imbalanced arguments: Side A has 6, Side B has 3"}, r.Issues)
	})

	t.Run("at tolerance is a warning", func(t *testing.T) {
		r := Validate(side(model.SideA, "a", 5, 100, 1), side(model.SideB, "b", 3, 100, 1))
		assert.True(t, r.IsValid)
		assert.Equal(t, []string{"Side A has one more argument"}, r.Warnings)
	})

	t.Run("within tolerance is silent", func(t *testing.T) {
		r := Validate(side(model.SideA, "a", 4, 100, 1), side(model.SideB, "b", 3, 100, 1))
		assert.True(t, r.IsValid)
		assert.Empty(t, r.Warnings)
	})
}

// The word-count threshold is anchored to side A: the same absolute gap is
// flagged or not depending on which side is larger.
func TestValidate_WordDifferenceAnchoredToSideA(t *testing.T) {
	r := Validate(side(model.SideA, "a", 3, 100, 1), side(model.SideB, "b", 3, 151, 1))
	assert.True(t, r.IsValid)
	assert.Equal(t, []string{"Significant word count difference: A=100, B=151"}, r.Warnings)

	r = Validate(side(model.SideA, "a", 3, 100, 1), side(model.SideB, "b", 3, 150, 1))
	assert.Empty(t, r.Warnings, "exactly 50% of A is not flagged")

	r = Validate(side(model.SideA, "a", 3, 151, 1), side(model.SideB, "b", 3, 100, 1))
	assert.Empty(t, r.Warnings, "51 is below 50% of 151")

	r = Validate(side(model.SideA, "a", 3, 0, 1), side(model.SideB, "b", 3, 1, 1))
	if assert.Len(t, r.Warnings, 1) {
		assert.True(t, strings.HasPrefix(r.Warnings[0], "Significant word count difference"))
	}
}
