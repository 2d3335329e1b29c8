// Package repository provides testify mocks for the domain repositories.
package repository

import (
	"context"

	"cafefinder/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockPrimarySource is a mock of repository.PrimarySource.
type MockPrimarySource struct {
	mock.Mock
}

// NewMockPrimarySource creates a mock whose expectations are asserted on cleanup.
func NewMockPrimarySource(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPrimarySource {
	m := &MockPrimarySource{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// FindCafes provides a mock function.
func (m *MockPrimarySource) FindCafes(ctx context.Context, origin entity.Point, radiusMeters int) ([]entity.OSMElement, error) {
	args := m.Called(ctx, origin, radiusMeters)

	var elements []entity.OSMElement
	if v := args.Get(0); v != nil {
		elements = v.([]entity.OSMElement)
	}

	return elements, args.Error(1)
}

// MockFallbackSource is a mock of repository.FallbackSource.
type MockFallbackSource struct {
	mock.Mock
}

// NewMockFallbackSource creates a mock whose expectations are asserted on cleanup.
func NewMockFallbackSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFallbackSource {
	m := &MockFallbackSource{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// LoadAll provides a mock function.
func (m *MockFallbackSource) LoadAll(ctx context.Context) ([]entity.DatasetRecord, error) {
	args := m.Called(ctx)

	var records []entity.DatasetRecord
	if v := args.Get(0); v != nil {
		records = v.([]entity.DatasetRecord)
	}

	return records, args.Error(1)
}
