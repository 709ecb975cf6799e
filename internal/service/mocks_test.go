package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"mybudget/internal/model"
	"mybudget/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string, includeDeleted bool) (*model.User, error) {
	args := m.Called(ctx, username, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateColumns(ctx context.Context, id uint, values map[string]interface{}) error {
	args := m.Called(ctx, id, values)
	return args.Error(0)
}

// MockReportRepository is a mock implementation of repository.ReportRepository.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) ExpenseTotalsByCategory(ctx context.Context, userID uint, start, end time.Time) ([]repository.CategoryTotal, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CategoryTotal), args.Error(1)
}

func (m *MockReportRepository) Totals(ctx context.Context, userID uint, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, userID, start, end)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

// MockBlocklistRepository is a mock implementation of repository.BlocklistRepository.
type MockBlocklistRepository struct {
	mock.Mock
}

func (m *MockBlocklistRepository) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	args := m.Called(ctx, token, expiresAt)
	return args.Error(0)
}

func (m *MockBlocklistRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}
