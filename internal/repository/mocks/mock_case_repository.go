package mocks

import (
	"context"

	"argprep/internal/model"
	"argprep/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockCaseRepository struct {
	mock.Mock
}

func (m *MockCaseRepository) CreateCase(ctx context.Context, c *model.Case) (*model.Case, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Case), args.Error(1)
}

func (m *MockCaseRepository) GetCase(ctx context.Context, id string) (*model.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Case), args.Error(1)
}

func (m *MockCaseRepository) ListCases(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Case], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Case]), args.Error(1)
}

func (m *MockCaseRepository) ListFiles(ctx context.Context, caseID string) ([]model.CaseFile, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CaseFile), args.Error(1)
}

func (m *MockCaseRepository) GetFile(ctx context.Context, caseID, fileID string) (*model.CaseFile, error) {
	args := m.Called(ctx, caseID, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CaseFile), args.Error(1)
}

func (m *MockCaseRepository) ListSequence(ctx context.Context, caseID string) ([]model.SequenceEntry, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SequenceEntry), args.Error(1)
}

func (m *MockCaseRepository) AppendSubmission(ctx context.Context, caseID string, expected model.CaseStatus, files []model.CaseFile, entry model.SequenceEntry) error {
	args := m.Called(ctx, caseID, expected, files, entry)
	return args.Error(0)
}

func (m *MockCaseRepository) UpdateStatus(ctx context.Context, id string, status model.CaseStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockCaseRepository) IncrementFollowUps(ctx context.Context, id string, limit int) (int, error) {
	args := m.Called(ctx, id, limit)
	return args.Int(0), args.Error(1)
}

func (m *MockCaseRepository) Stats(ctx context.Context) (*model.CaseStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CaseStats), args.Error(1)
}
