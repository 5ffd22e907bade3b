package preprocess

import (
	"regexp"
	"strings"

	"argprep/internal/model"
)

// DetectSampleLines is how many non-empty lines Detect inspects.
const DetectSampleLines = 20

type markerPattern struct {
	format model.EnumerationFormat
	re     *regexp.Regexp
}

// markerPatterns is evaluated in order; earlier entries win ties.
var markerPatterns = []markerPattern{
	{model.Numbered, regexp.MustCompile(`^\s*(\d+)[.):]`)},
	{model.Lettered, regexp.MustCompile(`^\s*([a-zA-Z])[.):]`)},
	{model.Roman, regexp.MustCompile(`^\s*([ivxIVX]+)[.):]`)},
	{model.Bullet, regexp.MustCompile(`^\s*[-*•◦▪]`)},
}

// patternFor returns the marker pattern of a format, or nil for Paragraph.
func patternFor(f model.EnumerationFormat) *regexp.Regexp {
	for _, p := range markerPatterns {
		if p.format == f {
			return p.re
		}
	}
	return nil
}

// SampleLines returns the first DetectSampleLines non-empty trimmed lines of text.
func SampleLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
		if len(lines) == DetectSampleLines {
			break
		}
	}
	return lines
}

// CountMarkers counts, per marker format, how many lines match its pattern.
// A line may count toward several formats.
func CountMarkers(lines []string) map[model.EnumerationFormat]int {
	counts := make(map[model.EnumerationFormat]int, len(markerPatterns))
	for _, p := range markerPatterns {
		counts[p.format] = 0
	}
	for _, line := range lines {
		for _, p := range markerPatterns {
			if p.re.MatchString(line) {
				counts[p.format]++
			}
		}
	}
	return counts
}

// Detect classifies the dominant enumeration style of text.
// Ties go to Numbered, Lettered, Roman, Bullet in that order; no match at all yields Paragraph.
func Detect(text string) model.EnumerationFormat {
	counts := CountMarkers(SampleLines(text))
	best, top := model.Paragraph, 0
	for _, p := range markerPatterns {
		if c := counts[p.format]; c > top {
			best, top = p.format, c
		}
	}
	return best
}
