package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"argprep/internal/model"
	"argprep/internal/preprocess"
)

// Metrics holds the preprocessing and case-readiness collectors.
type Metrics struct {
	filesProcessed *prometheus.CounterVec
	rejections     *prometheus.CounterVec
	pointsPerFile  prometheus.Histogram
	submissions    *prometheus.CounterVec
	validations    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		filesProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argprep_files_processed_total",
				Help: "Files successfully preprocessed, by detected enumeration format.",
			},
			[]string{"format"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argprep_batch_rejections_total",
				Help: "Upload batches rejected by preprocessing, by reason.",
			},
			[]string{"reason"},
		),
		pointsPerFile: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "argprep_points_per_file",
			Help:    "Number of argument points segmented from one file.",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21, 34, 55},
		}),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argprep_submissions_total",
				Help: "Accepted submissions recorded in case sequences.",
			},
			[]string{"side", "kind"},
		),
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "argprep_validations_total",
				Help: "Case validations, by outcome.",
			},
			[]string{"outcome"},
		),
	}

	for _, c := range []prometheus.Collector{m.filesProcessed, m.rejections, m.pointsPerFile, m.submissions, m.validations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeFiles(files []model.FileResult) {
	if m == nil {
		return
	}
	for _, f := range files {
		m.filesProcessed.WithLabelValues(f.Format.String()).Inc()
		m.pointsPerFile.Observe(float64(len(f.Points)))
	}
}

func (m *Metrics) observeRejection(err error) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(RejectionReason(err)).Inc()
}

func (m *Metrics) observeSubmission(side model.Side, kind string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(string(side), kind).Inc()
}

func (m *Metrics) observeValidation(valid bool) {
	if m == nil {
		return
	}
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	m.validations.WithLabelValues(outcome).Inc()
}

// RejectionReason maps a preprocessing failure to a stable snake_case label.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, preprocess.ErrUnsupportedExtension):
		return "unsupported_extension"
	case errors.Is(err, preprocess.ErrFileTooLarge):
		return "file_too_large"
	case errors.Is(err, preprocess.ErrUnreadableDocument):
		return "unreadable_document"
	case errors.Is(err, preprocess.ErrDecodeFailed):
		return "decode_failed"
	case errors.Is(err, preprocess.ErrInsufficientContent):
		return "insufficient_content"
	case errors.Is(err, preprocess.ErrNoFiles):
		return "no_files"
	default:
		return "other"
	}
}
