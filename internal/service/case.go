package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"argprep/internal/messaging"
	"argprep/internal/model"
	"argprep/internal/preprocess"
	"argprep/internal/repository"
	"argprep/internal/sequence"
	"argprep/internal/storage"
	"argprep/internal/validation"
)

var (
	ErrIDRequired    = errors.New("id is required")
	ErrCaseNotFound  = errors.New("case not found")
	ErrFileNotFound  = errors.New("file not found")
	ErrCaseExists    = errors.New("case already exists")
	ErrInvalidState  = errors.New("operation not allowed in current case status")
	ErrFollowUpLimit = fmt.Errorf("maximum follow-ups (%d) reached", sequence.MaxFollowUps)
	ErrCaseNotReady  = errors.New("case is not ready for adjudication")
	ErrEmptyArgument = errors.New("argument text is empty")
)

const (
	// ArgumentFilename names typed arguments in a side's file list.
	ArgumentFilename = "argument.txt"
	// LinkExpiry is the lifetime of presigned download links.
	LinkExpiry = 15 * time.Minute

	appendAttempts = 3
)

// Submission kinds, used as the "kind" label of argprep_submissions_total.
const (
	KindUpload   = "upload"
	KindArgument = "argument"
	KindFollowUp = "follow_up"
)

// CaseListResult is the service-level DTO for paginated cases.
type CaseListResult struct {
	Items []model.Case `json:"data"`
	Total int          `json:"total"`
}

// CaseView is a case with both side records rebuilt from its stored files.
type CaseView struct {
	Case               model.Case            `json:"case"`
	SideA              model.SideResult      `json:"side_a"`
	SideB              model.SideResult      `json:"side_b"`
	Sequence           model.SequenceSummary `json:"sequence"`
	FollowUpsRemaining int                   `json:"follow_ups_remaining"`
}

// StoredFile is the short form of an accepted file.
type StoredFile struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Points   int    `json:"points"`
}

// SubmissionResult describes an accepted batch and its place in the case sequence.
type SubmissionResult struct {
	CaseID             string        `json:"case_id"`
	Side               model.Side    `json:"side"`
	Summary            model.Summary `json:"summary"`
	Position           int           `json:"argument_sequence_position"`
	Files              []StoredFile  `json:"files"`
	FollowUpsRemaining *int          `json:"follow_ups_remaining,omitempty"`
}

// ValidationResult is a validation report plus, once anything was submitted,
// the round structure of the case.
type ValidationResult struct {
	model.ValidationReport
	Sequence *model.SequenceSummary `json:"sequence,omitempty"`
}

// CaseService defines the case-level use cases around the preprocessing core.
type CaseService interface {
	// Preview preprocesses a batch without storing anything.
	Preview(ctx context.Context, side model.Side, files []model.UploadedFile) (model.SideResult, error)

	// Create opens a new case. An empty id gets a generated UUID.
	Create(ctx context.Context, id string) (*model.Case, error)

	// Get returns the case with both side records and its sequence summary.
	Get(ctx context.Context, id string) (*CaseView, error)

	// List returns cases using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*CaseListResult, error)

	// Upload preprocesses a batch of files for one side, stores the raw bytes in object
	// storage and records the batch as one submission. Storage is rolled back if the DB save fails.
	Upload(ctx context.Context, caseID string, side model.Side, files []model.UploadedFile) (*SubmissionResult, error)

	// SubmitArgument records typed argument text for one side.
	SubmitArgument(ctx context.Context, caseID string, side model.Side, text string) (*SubmissionResult, error)

	// FollowUp records a follow-up argument after a verdict, at most sequence.MaxFollowUps per case.
	FollowUp(ctx context.Context, caseID string, side model.Side, text string) (*SubmissionResult, error)

	// Validate reports whether the case may proceed to adjudication.
	Validate(ctx context.Context, caseID string) (*ValidationResult, error)

	// RequestAdjudication validates the case and, if valid, hands it to the adjudicator.
	// An invalid case yields the report together with ErrCaseNotReady.
	RequestAdjudication(ctx context.Context, caseID string) (*ValidationResult, error)

	// MarkAdjudicated records that the adjudicator delivered a verdict.
	MarkAdjudicated(ctx context.Context, caseID string) (*model.Case, error)

	// FileLink returns a presigned download URL for a stored upload.
	FileLink(ctx context.Context, caseID, fileID string) (string, error)

	// Statistics returns store-wide case, document and follow-up counts.
	Statistics(ctx context.Context) (*model.CaseStats, error)
}

// caseService is a concrete implementation of CaseService.
type caseService struct {
	store     storage.Storage
	repo      repository.CaseRepository
	publisher messaging.Publisher
	metrics   *Metrics
	log       zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewCaseService constructs a new CaseService. metrics may be nil.
func NewCaseService(store storage.Storage, repo repository.CaseRepository, publisher messaging.Publisher, metrics *Metrics, log zerolog.Logger) CaseService {
	return &caseService{
		store:     store,
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		log:       log.With().Str("component", "case_service").Logger(),
		tracer:    otel.Tracer("argprep/internal/service"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *caseService) start(ctx context.Context, name, caseID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "CaseService."+name, trace.WithAttributes(attribute.String("case.id", caseID)))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *caseService) Preview(ctx context.Context, side model.Side, files []model.UploadedFile) (sr model.SideResult, err error) {
	ctx, span := s.tracer.Start(ctx, "CaseService.Preview", trace.WithAttributes(
		attribute.String("case.side", string(side)),
		attribute.Int("files.count", len(files)),
	))
	defer func() { finish(span, err) }()

	sr, err = preprocess.ProcessSide(ctx, files, side)
	if err != nil {
		s.metrics.observeRejection(err)
		return model.SideResult{}, err
	}
	s.metrics.observeFiles(sr.Files)
	return sr, nil
}

func (s *caseService) Create(ctx context.Context, id string) (c *model.Case, err error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.New().String()
	}
	ctx, span := s.start(ctx, "Create", id)
	defer func() { finish(span, err) }()

	if _, err := s.repo.GetCase(ctx, id); err == nil {
		return nil, ErrCaseExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	now := s.now()
	c, err = s.repo.CreateCase(ctx, &model.Case{
		ID:        id,
		Status:    model.StatusCollecting,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrCaseExists
		}
		return nil, err
	}
	s.log.Info().Str("case_id", id).Msg("case created")
	return c, nil
}

func (s *caseService) getCase(ctx context.Context, id string) (*model.Case, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.repo.GetCase(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	return c, nil
}

// sides rebuilds both side records from the stored files of a case.
func (s *caseService) sides(ctx context.Context, caseID string) (model.SideResult, model.SideResult, error) {
	files, err := s.repo.ListFiles(ctx, caseID)
	if err != nil {
		return model.SideResult{}, model.SideResult{}, err
	}
	var a, b []model.FileResult
	for _, f := range files {
		switch f.Side {
		case model.SideA:
			a = append(a, f.Result)
		case model.SideB:
			b = append(b, f.Result)
		}
	}
	return model.NewSideResult(model.SideA, a), model.NewSideResult(model.SideB, b), nil
}

func (s *caseService) Get(ctx context.Context, id string) (v *CaseView, err error) {
	ctx, span := s.start(ctx, "Get", id)
	defer func() { finish(span, err) }()

	c, err := s.getCase(ctx, id)
	if err != nil {
		return nil, err
	}
	a, b, err := s.sides(ctx, id)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListSequence(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CaseView{
		Case:               *c,
		SideA:              a,
		SideB:              b,
		Sequence:           sequence.Summarize(entries),
		FollowUpsRemaining: max(sequence.MaxFollowUps-c.FollowUpCount, 0),
	}, nil
}

// List returns paginated cases without exposing repository types.
func (s *caseService) List(ctx context.Context, limit, offset int) (*CaseListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.ListCases(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &CaseListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *caseService) Upload(ctx context.Context, caseID string, side model.Side, files []model.UploadedFile) (res *SubmissionResult, err error) {
	ctx, span := s.start(ctx, "Upload", caseID)
	span.SetAttributes(attribute.String("case.side", string(side)), attribute.Int("files.count", len(files)))
	defer func() { finish(span, err) }()

	c, err := s.getCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.Status != model.StatusCollecting {
		return nil, fmt.Errorf("%w: case is %s", ErrInvalidState, c.Status)
	}

	sr, err := preprocess.ProcessSide(ctx, files, side)
	if err != nil {
		s.metrics.observeRejection(err)
		return nil, err
	}
	s.metrics.observeFiles(sr.Files)

	res, err = s.submit(ctx, caseID, model.StatusCollecting, side, files, sr)
	if err != nil {
		return nil, err
	}
	s.metrics.observeSubmission(side, KindUpload)
	return res, nil
}

func (s *caseService) SubmitArgument(ctx context.Context, caseID string, side model.Side, text string) (res *SubmissionResult, err error) {
	ctx, span := s.start(ctx, "SubmitArgument", caseID)
	span.SetAttributes(attribute.String("case.side", string(side)))
	defer func() { finish(span, err) }()

	c, err := s.getCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.Status != model.StatusCollecting {
		return nil, fmt.Errorf("%w: case is %s", ErrInvalidState, c.Status)
	}

	file, sr, err := s.analyzeText(side, text)
	if err != nil {
		return nil, err
	}
	res, err = s.submit(ctx, caseID, model.StatusCollecting, side, []model.UploadedFile{file}, sr)
	if err != nil {
		return nil, err
	}
	s.metrics.observeSubmission(side, KindArgument)
	return res, nil
}

func (s *caseService) FollowUp(ctx context.Context, caseID string, side model.Side, text string) (res *SubmissionResult, err error) {
	ctx, span := s.start(ctx, "FollowUp", caseID)
	span.SetAttributes(attribute.String("case.side", string(side)))
	defer func() { finish(span, err) }()

	c, err := s.getCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.Status != model.StatusAdjudicated {
		return nil, fmt.Errorf("%w: cannot submit follow-up before verdict", ErrInvalidState)
	}
	if c.FollowUpCount >= sequence.MaxFollowUps {
		return nil, ErrFollowUpLimit
	}

	file, sr, err := s.analyzeText(side, text)
	if err != nil {
		return nil, err
	}

	used, err := s.repo.IncrementFollowUps(ctx, caseID, sequence.MaxFollowUps)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFollowUpLimit
		}
		return nil, err
	}

	res, err = s.submit(ctx, caseID, model.StatusAdjudicated, side, []model.UploadedFile{file}, sr)
	if err != nil {
		return nil, err
	}
	remaining := sequence.MaxFollowUps - used
	res.FollowUpsRemaining = &remaining
	s.metrics.observeSubmission(side, KindFollowUp)
	return res, nil
}

// analyzeText turns typed argument text into the single-file batch it is stored as.
func (s *caseService) analyzeText(side model.Side, text string) (model.UploadedFile, model.SideResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return model.UploadedFile{}, model.SideResult{}, ErrEmptyArgument
	}
	if utf8.RuneCountInString(trimmed) < preprocess.MinContentChars {
		err := &preprocess.PreprocessError{Filename: ArgumentFilename, Err: preprocess.ErrInsufficientContent}
		s.metrics.observeRejection(err)
		return model.UploadedFile{}, model.SideResult{}, err
	}
	fr := preprocess.Analyze(ArgumentFilename, trimmed, int64(len(trimmed)))
	s.metrics.observeFiles([]model.FileResult{fr})
	file := model.UploadedFile{Filename: ArgumentFilename, Side: side, Content: []byte(trimmed)}
	return file, model.NewSideResult(side, []model.FileResult{fr}), nil
}

// submit stores the raw bytes of an accepted batch and records it as the next
// entry of the case sequence. The case must still be in status expected when the
// entry is written. Stored objects are removed if the DB save fails.
func (s *caseService) submit(ctx context.Context, caseID string, expected model.CaseStatus, side model.Side, uploads []model.UploadedFile, sr model.SideResult) (*SubmissionResult, error) {
	now := s.now()
	files := make([]model.CaseFile, 0, len(uploads))
	keys := make([]string, 0, len(uploads))

	for i, u := range uploads {
		fileID := uuid.New().String()
		ext := preprocess.Extension(u.Filename)
		key := storage.ObjectKey(caseID, side, fileID, ext)

		_, err := s.store.Put(ctx, key, bytes.NewReader(u.Content), storage.PutObjectOptions{
			Size:        int64(len(u.Content)),
			ContentType: storage.ContentTypeFor(ext),
			Metadata: map[string]string{
				"original-filename": u.Filename,
			},
		})
		if err != nil {
			s.rollback(ctx, keys)
			return nil, fmt.Errorf("upload to storage: %w", err)
		}
		keys = append(keys, key)

		files = append(files, model.CaseFile{
			ID:          fileID,
			CaseID:      caseID,
			Side:        side,
			StoragePath: key,
			Result:      sr.Files[i],
			CreatedAt:   now,
		})
	}

	entry, err := s.appendSubmission(ctx, caseID, expected, side, files, sr)
	if err != nil {
		if delErr := s.rollbackErr(ctx, keys); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, fmt.Errorf("%w: case status changed during submission", ErrInvalidState)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	stored := make([]StoredFile, 0, len(files))
	for _, f := range files {
		stored = append(stored, StoredFile{ID: f.ID, Filename: f.Result.Filename, Points: len(f.Result.Points)})
	}

	s.log.Info().
		Str("case_id", caseID).
		Str("side", string(side)).
		Int("order", entry.Order).
		Int("files", len(files)).
		Int("points", entry.PointCount).
		Msg("submission recorded")

	return &SubmissionResult{
		CaseID:   caseID,
		Side:     side,
		Summary:  sr.Summary,
		Position: entry.Order,
		Files:    stored,
	}, nil
}

// appendSubmission retries when another submission for the same case was
// recorded between reading the sequence and writing the new entry.
func (s *caseService) appendSubmission(ctx context.Context, caseID string, expected model.CaseStatus, side model.Side, files []model.CaseFile, sr model.SideResult) (model.SequenceEntry, error) {
	var err error
	for attempt := 0; attempt < appendAttempts; attempt++ {
		var entries []model.SequenceEntry
		entries, err = s.repo.ListSequence(ctx, caseID)
		if err != nil {
			return model.SequenceEntry{}, err
		}
		entry := sequence.Record(entries, side, sr.CombinedText, len(sr.AllPoints))
		err = s.repo.AppendSubmission(ctx, caseID, expected, files, entry)
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, repository.ErrSequenceConflict) {
			return model.SequenceEntry{}, err
		}
		s.log.Warn().Str("case_id", caseID).Int("attempt", attempt+1).Msg("sequence conflict, retrying")
	}
	return model.SequenceEntry{}, err
}

func (s *caseService) rollback(ctx context.Context, keys []string) {
	if err := s.rollbackErr(ctx, keys); err != nil {
		s.log.Error().Err(err).Strs("keys", keys).Msg("rollback delete failed")
	}
}

func (s *caseService) rollbackErr(ctx context.Context, keys []string) error {
	var errs []error
	for _, k := range keys {
		if err := s.store.Delete(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// validate also returns the rebuilt side records so callers can forward them.
func (s *caseService) validate(ctx context.Context, caseID string) (*ValidationResult, model.SideResult, model.SideResult, error) {
	a, b, err := s.sides(ctx, caseID)
	if err != nil {
		return nil, a, b, err
	}
	entries, err := s.repo.ListSequence(ctx, caseID)
	if err != nil {
		return nil, a, b, err
	}
	res := &ValidationResult{ValidationReport: validation.Validate(a, b)}
	if len(entries) > 0 {
		summary := sequence.Summarize(entries)
		res.Sequence = &summary
	}
	s.metrics.observeValidation(res.IsValid)
	return res, a, b, nil
}

func (s *caseService) Validate(ctx context.Context, caseID string) (res *ValidationResult, err error) {
	ctx, span := s.start(ctx, "Validate", caseID)
	defer func() { finish(span, err) }()

	if _, err := s.getCase(ctx, caseID); err != nil {
		return nil, err
	}
	res, _, _, err = s.validate(ctx, caseID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Bool("case.valid", res.IsValid))
	return res, nil
}

func (s *caseService) RequestAdjudication(ctx context.Context, caseID string) (res *ValidationResult, err error) {
	ctx, span := s.start(ctx, "RequestAdjudication", caseID)
	defer func() { finish(span, err) }()

	c, err := s.getCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.Status == model.StatusAwaitingVerdict {
		return nil, fmt.Errorf("%w: adjudication already requested", ErrInvalidState)
	}

	res, a, b, err := s.validate(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if !res.IsValid {
		return res, ErrCaseNotReady
	}

	ev := &messaging.AdjudicationRequested{
		CaseID:      caseID,
		SideA:       sideArgument(a),
		SideB:       sideArgument(b),
		Order:       []string{},
		RequestedAt: s.now(),
	}
	if res.Sequence != nil {
		ev.Order = res.Sequence.Order
	}
	if err := s.publisher.PublishAdjudicationRequested(ctx, ev); err != nil {
		return nil, fmt.Errorf("publish adjudication request: %w", err)
	}
	if err := s.repo.UpdateStatus(ctx, caseID, model.StatusAwaitingVerdict); err != nil {
		return nil, err
	}
	s.log.Info().Str("case_id", caseID).Msg("adjudication requested")
	return res, nil
}

func sideArgument(r model.SideResult) messaging.SideArgument {
	return messaging.SideArgument{
		CombinedText: r.CombinedText,
		PointCount:   r.Summary.TotalPoints,
		FileCount:    r.Summary.FileCount,
	}
}

func (s *caseService) MarkAdjudicated(ctx context.Context, caseID string) (c *model.Case, err error) {
	ctx, span := s.start(ctx, "MarkAdjudicated", caseID)
	defer func() { finish(span, err) }()

	c, err = s.getCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.Status != model.StatusAwaitingVerdict {
		return nil, fmt.Errorf("%w: no adjudication pending", ErrInvalidState)
	}
	if err := s.repo.UpdateStatus(ctx, caseID, model.StatusAdjudicated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	c.Status = model.StatusAdjudicated
	c.UpdatedAt = s.now()
	return c, nil
}

func (s *caseService) FileLink(ctx context.Context, caseID, fileID string) (string, error) {
	if caseID == "" || fileID == "" {
		return "", ErrIDRequired
	}
	f, err := s.repo.GetFile(ctx, caseID, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrFileNotFound
		}
		return "", err
	}
	return s.store.PresignGet(ctx, f.StoragePath, LinkExpiry)
}

func (s *caseService) Statistics(ctx context.Context) (st *model.CaseStats, err error) {
	ctx, span := s.tracer.Start(ctx, "CaseService.Statistics")
	defer func() { finish(span, err) }()

	return s.repo.Stats(ctx)
}
