// Package repository contains data access layer abstractions for the case store.
// Implementations live in subpackages (e.g., postgres).
package repository

import (
	"context"
	"errors"

	"argprep/internal/model"
)

// ErrSequenceConflict is returned by AppendSubmission when another submission
// was recorded for the case after the caller read its sequence.
var ErrSequenceConflict = errors.New("sequence order conflict")

// ErrStatusConflict is returned by AppendSubmission when the locked case row is
// no longer in the status the caller checked.
var ErrStatusConflict = errors.New("case status changed")

// CaseRepository defines data access for cases using SQL queries only.
// No business logic here; strictly persistence operations.
// Lookups of a missing case return sql.ErrNoRows.
type CaseRepository interface {
	// CreateCase inserts a new case header and returns the stored row.
	CreateCase(ctx context.Context, c *model.Case) (*model.Case, error)

	// GetCase returns a case header by ID.
	GetCase(ctx context.Context, id string) (*model.Case, error)

	// ListCases returns a page of case headers, newest first, and the total count.
	ListCases(ctx context.Context, pq PageQuery) (*PageResult[model.Case], error)

	// ListFiles returns every processed file of a case in submission order.
	ListFiles(ctx context.Context, caseID string) ([]model.CaseFile, error)

	// GetFile returns one processed file of a case.
	GetFile(ctx context.Context, caseID, fileID string) (*model.CaseFile, error)

	// ListSequence returns the submission sequence of a case ordered by Order.
	ListSequence(ctx context.Context, caseID string) ([]model.SequenceEntry, error)

	// AppendSubmission stores the files of one accepted batch together with its
	// sequence entry in a single transaction. The case must still be in status
	// expected (ErrStatusConflict) and entry.Order must be the next order of the
	// case (ErrSequenceConflict).
	AppendSubmission(ctx context.Context, caseID string, expected model.CaseStatus, files []model.CaseFile, entry model.SequenceEntry) error

	// UpdateStatus sets the lifecycle status of a case.
	UpdateStatus(ctx context.Context, id string, status model.CaseStatus) error

	// IncrementFollowUps atomically bumps the follow-up counter while it is below limit
	// and returns the new value. It returns sql.ErrNoRows if the case is missing or at the limit.
	IncrementFollowUps(ctx context.Context, id string, limit int) (int, error)

	// Stats aggregates case, document and follow-up counts across all cases.
	Stats(ctx context.Context) (*model.CaseStats, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
