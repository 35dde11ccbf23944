package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
)

// MockLogger records calls with the format arguments collapsed into one
// slice, so expectations always take ctx, format and args.
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debugf(ctx context.Context, format string, args ...any) {
	m.Called(ctx, format, args)
}

func (m *MockLogger) Infof(ctx context.Context, format string, args ...any) {
	m.Called(ctx, format, args)
}

func (m *MockLogger) Warnf(ctx context.Context, format string, args ...any) {
	m.Called(ctx, format, args)
}

func (m *MockLogger) Errorf(ctx context.Context, err error, format string, args ...any) {
	m.Called(ctx, err, format, args)
}

func (m *MockLogger) WithFields(fields map[string]any) ports.Logger {
	args := m.Called(fields)
	if l, ok := args.Get(0).(ports.Logger); ok {
		return l
	}
	return m
}

// AllowAll makes every logging call a no-op expectation.
func (m *MockLogger) AllowAll() *MockLogger {
	m.On("Debugf", mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	m.On("Infof", mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	m.On("Warnf", mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	m.On("Errorf", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	m.On("WithFields", mock.Anything).Maybe().Return(m)
	return m
}

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Wait(ctx context.Context, logger ports.Logger) error {
	args := m.Called(ctx, logger)
	return args.Error(0)
}

type MockErrorHandler struct {
	mock.Mock
}

func (m *MockErrorHandler) Handle(ctx context.Context, resourceType, resourceID string, err error) error {
	args := m.Called(ctx, resourceType, resourceID, err)
	return args.Error(0)
}
