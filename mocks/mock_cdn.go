package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCDN is a mock implementation of port.CDN.
type MockCDN struct {
	mock.Mock
}

func (m *MockCDN) Invalidate(ctx context.Context, paths []string) (string, error) {
	args := m.Called(ctx, paths)
	return args.String(0), args.Error(1)
}
