package mocks

import (
	"context"

	"argprep/internal/model"
	"argprep/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockCaseService struct {
	mock.Mock
}

func (m *MockCaseService) Preview(ctx context.Context, side model.Side, files []model.UploadedFile) (model.SideResult, error) {
	args := m.Called(ctx, side, files)
	return args.Get(0).(model.SideResult), args.Error(1)
}

func (m *MockCaseService) Create(ctx context.Context, id string) (*model.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Case), args.Error(1)
}

func (m *MockCaseService) Get(ctx context.Context, id string) (*service.CaseView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CaseView), args.Error(1)
}

func (m *MockCaseService) List(ctx context.Context, limit, offset int) (*service.CaseListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CaseListResult), args.Error(1)
}

func (m *MockCaseService) Upload(ctx context.Context, caseID string, side model.Side, files []model.UploadedFile) (*service.SubmissionResult, error) {
	args := m.Called(ctx, caseID, side, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmissionResult), args.Error(1)
}

func (m *MockCaseService) SubmitArgument(ctx context.Context, caseID string, side model.Side, text string) (*service.SubmissionResult, error) {
	args := m.Called(ctx, caseID, side, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmissionResult), args.Error(1)
}

func (m *MockCaseService) FollowUp(ctx context.Context, caseID string, side model.Side, text string) (*service.SubmissionResult, error) {
	args := m.Called(ctx, caseID, side, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmissionResult), args.Error(1)
}

func (m *MockCaseService) Validate(ctx context.Context, caseID string) (*service.ValidationResult, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ValidationResult), args.Error(1)
}

func (m *MockCaseService) RequestAdjudication(ctx context.Context, caseID string) (*service.ValidationResult, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ValidationResult), args.Error(1)
}

func (m *MockCaseService) MarkAdjudicated(ctx context.Context, caseID string) (*model.Case, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Case), args.Error(1)
}

func (m *MockCaseService) FileLink(ctx context.Context, caseID, fileID string) (string, error) {
	args := m.Called(ctx, caseID, fileID)
	return args.String(0), args.Error(1)
}

func (m *MockCaseService) Statistics(ctx context.Context) (*model.CaseStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CaseStats), args.Error(1)
}
