package preprocess

import (
	"regexp"
	"strconv"
	"strings"

	"argprep/internal/model"
)

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// Segment splits text into ordered argument points according to format.
// It never fails; a marker format with no matching line yields no points.
func Segment(text string, format model.EnumerationFormat) []model.ArgumentPoint {
	switch format {
	case model.Paragraph:
		return segmentParagraphs(text)
	case model.Numbered, model.Lettered, model.Roman, model.Bullet:
		return segmentMarkers(text, patternFor(format))
	default:
		return []model.ArgumentPoint{}
	}
}

func segmentParagraphs(text string) []model.ArgumentPoint {
	points := []model.ArgumentPoint{}
	for _, block := range paragraphBreak.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		points = append(points, model.ArgumentPoint{
			Index:   strconv.Itoa(len(points) + 1),
			Content: block,
		})
	}
	return points
}

func segmentMarkers(text string, re *regexp.Regexp) []model.ArgumentPoint {
	points := []model.ArgumentPoint{}
	var (
		open    bool
		index   string
		content strings.Builder
	)
	flush := func() {
		if c := strings.TrimSpace(content.String()); c != "" {
			points = append(points, model.ArgumentPoint{Index: index, Content: c})
		}
		content.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		if m := re.FindStringSubmatchIndex(line); m != nil {
			flush()
			open = true
			if len(m) >= 4 && m[2] >= 0 {
				index = line[m[2]:m[3]]
			} else {
				index = strconv.Itoa(len(points) + 1)
			}
			content.WriteString(strings.TrimSpace(line[m[1]:]))
			continue
		}
		line = strings.TrimSpace(line)
		if !open || line == "" {
			continue
		}
		if content.Len() > 0 {
			content.WriteByte(' ')
		}
		content.WriteString(line)
	}
	flush()
	return points
}
