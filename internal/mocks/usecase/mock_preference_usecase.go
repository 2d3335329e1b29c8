package usecase

import (
	"context"

	"cafefinder/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockPreferenceUsecase is a mock of usecase.PreferenceUsecase.
type MockPreferenceUsecase struct {
	mock.Mock
}

// NewMockPreferenceUsecase creates a mock whose expectations are asserted on cleanup.
func NewMockPreferenceUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPreferenceUsecase {
	m := &MockPreferenceUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Load provides a mock function.
func (m *MockPreferenceUsecase) Load(ctx context.Context, scope string) entity.Preferences {
	args := m.Called(ctx, scope)

	return args.Get(0).(entity.Preferences)
}

// Save provides a mock function.
func (m *MockPreferenceUsecase) Save(ctx context.Context, scope string, partial entity.Preferences) error {
	args := m.Called(ctx, scope, partial)

	return args.Error(0)
}
