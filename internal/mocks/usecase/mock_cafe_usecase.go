// Package usecase provides testify mocks for the application use cases.
package usecase

import (
	"context"

	"cafefinder/internal/domain/entity"
	"cafefinder/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// MockCafeUsecase is a mock of usecase.CafeUsecase.
type MockCafeUsecase struct {
	mock.Mock
}

// NewMockCafeUsecase creates a mock whose expectations are asserted on cleanup.
func NewMockCafeUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCafeUsecase {
	m := &MockCafeUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// FindNearby provides a mock function.
func (m *MockCafeUsecase) FindNearby(ctx context.Context, origin entity.Point, radiusMeters int) (*usecase.NearbyResult, error) {
	args := m.Called(ctx, origin, radiusMeters)

	var result *usecase.NearbyResult
	if v := args.Get(0); v != nil {
		result = v.(*usecase.NearbyResult)
	}

	return result, args.Error(1)
}

// Filter provides a mock function.
func (m *MockCafeUsecase) Filter(cafes []entity.Cafe, query string) []entity.Cafe {
	args := m.Called(cafes, query)

	var filtered []entity.Cafe
	if v := args.Get(0); v != nil {
		filtered = v.([]entity.Cafe)
	}

	return filtered
}
