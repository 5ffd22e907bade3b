package model

import "strings"

// FileMetadata holds the statistics computed for one processed file.
type FileMetadata struct {
	WordCount  int     `json:"word_count"`
	CharCount  int     `json:"char_count"`
	PointCount int     `json:"point_count"`
	Format     string  `json:"format_detected"`
	FileSizeKB float64 `json:"file_size_kb"`
}

// FileResult is one processed file. It is not modified after creation.
type FileResult struct {
	Filename    string            `json:"filename"`
	RawText     string            `json:"raw_text"`
	CleanedText string            `json:"cleaned_text"`
	Format      EnumerationFormat `json:"format"`
	Points      []ArgumentPoint   `json:"points"`
	Metadata    FileMetadata      `json:"metadata"`
}

// Summary aggregates the statistics of all files of one side.
type Summary struct {
	FileCount   int                 `json:"file_count"`
	TotalWords  int                 `json:"total_words"`
	TotalPoints int                 `json:"total_points"`
	FormatsUsed []EnumerationFormat `json:"formats_used"`
}

// SideResult is the complete submission state of one side.
// It only grows: later batches are folded in with Append.
type SideResult struct {
	Side         Side            `json:"side"`
	Files        []FileResult    `json:"files"`
	CombinedText string          `json:"combined_text"`
	AllPoints    []ArgumentPoint `json:"all_points"`
	Summary      Summary         `json:"summary"`
}

// NewSideResult folds files, in order, into a side record.
func NewSideResult(side Side, files []FileResult) SideResult {
	r := SideResult{Side: side, Files: []FileResult{}, AllPoints: []ArgumentPoint{}}
	for _, f := range files {
		r.add(f)
	}
	r.finish()
	return r
}

// Append returns a copy of r with the files of other added after its own.
func (r SideResult) Append(other SideResult) SideResult {
	out := SideResult{Side: r.Side, Files: []FileResult{}, AllPoints: []ArgumentPoint{}}
	if out.Side == "" {
		out.Side = other.Side
	}
	for _, f := range r.Files {
		out.add(f)
	}
	for _, f := range other.Files {
		out.add(f)
	}
	out.finish()
	return out
}

func (r *SideResult) add(f FileResult) {
	r.Files = append(r.Files, f)
	r.AllPoints = append(r.AllPoints, f.Points...)
	r.Summary.TotalWords += f.Metadata.WordCount
	seen := false
	for _, ff := range r.Summary.FormatsUsed {
		if ff == f.Format {
			seen = true
			break
		}
	}
	if !seen {
		r.Summary.FormatsUsed = append(r.Summary.FormatsUsed, f.Format)
	}
}

func (r *SideResult) finish() {
	texts := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		texts = append(texts, f.CleanedText)
	}
	r.CombinedText = strings.TrimSpace(strings.Join(texts, "\n\n"))
	r.Summary.FileCount = len(r.Files)
	r.Summary.TotalPoints = len(r.AllPoints)
	if r.Summary.FormatsUsed == nil {
		r.Summary.FormatsUsed = []EnumerationFormat{}
	}
}
