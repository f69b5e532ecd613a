package auth

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRepository implements Repository for handler tests.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateIdentity(ctx context.Context, username, passwordHash string) (Identity, error) {
	args := m.Called(ctx, username, passwordHash)
	return args.Get(0).(Identity), args.Error(1)
}

func (m *MockRepository) FindIdentityByUsername(ctx context.Context, username string) (Identity, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(Identity), args.Error(1)
}

func (m *MockRepository) FindIdentityByID(ctx context.Context, id string) (Identity, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Identity), args.Error(1)
}

// MockSessions implements SessionRegistry for handler tests.
type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Create(ctx context.Context, identityID string) (string, error) {
	args := m.Called(ctx, identityID)
	return args.String(0), args.Error(1)
}

func (m *MockSessions) Resolve(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockSessions) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
