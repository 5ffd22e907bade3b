package mocks

import (
	"context"

	"argprep/internal/messaging"
	"github.com/stretchr/testify/mock"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishAdjudicationRequested(ctx context.Context, event *messaging.AdjudicationRequested) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
