package repository

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPreferenceRepository is a mock of repository.PreferenceRepository.
type MockPreferenceRepository struct {
	mock.Mock
}

// NewMockPreferenceRepository creates a mock whose expectations are asserted on cleanup.
func NewMockPreferenceRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPreferenceRepository {
	m := &MockPreferenceRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Get provides a mock function.
func (m *MockPreferenceRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)

	var data []byte
	if v := args.Get(0); v != nil {
		data = v.([]byte)
	}

	return data, args.Error(1)
}

// Put provides a mock function.
func (m *MockPreferenceRepository) Put(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)

	return args.Error(0)
}
