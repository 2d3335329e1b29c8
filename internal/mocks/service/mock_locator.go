// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"context"

	"cafefinder/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockLocator is a mock of service.Locator.
type MockLocator struct {
	mock.Mock
}

// NewMockLocator creates a mock whose expectations are asserted on cleanup.
func NewMockLocator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLocator {
	m := &MockLocator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Locate provides a mock function.
func (m *MockLocator) Locate(ctx context.Context) (entity.Point, error) {
	args := m.Called(ctx)

	return args.Get(0).(entity.Point), args.Error(1)
}
