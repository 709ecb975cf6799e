package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mybudget/internal/errors"
	"mybudget/internal/repository"
)

func TestReportService_MonthWindow(t *testing.T) {
	t.Run("queries cover exactly the requested month", func(t *testing.T) {
		start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

		mockRepo := new(MockReportRepository)
		mockRepo.On("ExpenseTotalsByCategory", mock.Anything, uint(1), start, end).
			Return([]repository.CategoryTotal{}, nil)

		svc := NewReportService(mockRepo, nil)
		_, err := svc.ExpensesByCategory(context.Background(), 1, 2026, 3)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("december rolls over into january", func(t *testing.T) {
		start := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

		mockRepo := new(MockReportRepository)
		mockRepo.On("Totals", mock.Anything, uint(1), start, end).
			Return(decimal.Zero, decimal.Zero, nil)

		svc := NewReportService(mockRepo, nil)
		_, err := svc.Overview(context.Background(), 1, 2025, 12)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("out-of-range month is rejected", func(t *testing.T) {
		svc := NewReportService(new(MockReportRepository), nil)

		_, err := svc.ExpensesByCategory(context.Background(), 1, 2026, 13)
		assert.ErrorIs(t, err, errors.ErrInvalidPeriod)

		_, err = svc.ExpensePercentages(context.Background(), 1, 2026, 0)
		assert.ErrorIs(t, err, errors.ErrInvalidPeriod)

		_, err = svc.Overview(context.Background(), 1, 0, 5)
		assert.ErrorIs(t, err, errors.ErrInvalidPeriod)
	})
}

func TestReportService_ExpensePercentages(t *testing.T) {
	t.Run("shares are computed against the month's income", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		mockRepo.On("Totals", mock.Anything, uint(1), mock.Anything, mock.Anything).
			Return(decimal.NewFromInt(2000), decimal.NewFromInt(700), nil)
		mockRepo.On("ExpenseTotalsByCategory", mock.Anything, uint(1), mock.Anything, mock.Anything).
			Return([]repository.CategoryTotal{
				{CategoryID: 1, CategoryName: "Groceries", TotalAmount: decimal.NewFromInt(500)},
				{CategoryID: 2, CategoryName: "Transport", TotalAmount: decimal.NewFromInt(200)},
			}, nil)

		svc := NewReportService(mockRepo, nil)
		shares, err := svc.ExpensePercentages(context.Background(), 1, 2026, 3)

		require.NoError(t, err)
		require.Len(t, shares, 2)
		assert.True(t, decimal.NewFromInt(25).Equal(shares[0].Percentage), "got %s", shares[0].Percentage)
		assert.True(t, decimal.NewFromInt(10).Equal(shares[1].Percentage), "got %s", shares[1].Percentage)
	})

	t.Run("no income yields zero shares, not a division error", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		mockRepo.On("Totals", mock.Anything, uint(1), mock.Anything, mock.Anything).
			Return(decimal.Zero, decimal.NewFromInt(300), nil)
		mockRepo.On("ExpenseTotalsByCategory", mock.Anything, uint(1), mock.Anything, mock.Anything).
			Return([]repository.CategoryTotal{
				{CategoryID: 1, CategoryName: "Groceries", TotalAmount: decimal.NewFromInt(300)},
			}, nil)

		svc := NewReportService(mockRepo, nil)
		shares, err := svc.ExpensePercentages(context.Background(), 1, 2026, 3)

		require.NoError(t, err)
		require.Len(t, shares, 1)
		assert.True(t, shares[0].Percentage.IsZero())
	})

	t.Run("shares may exceed one hundred percent when spending tops income", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		mockRepo.On("Totals", mock.Anything, uint(1), mock.Anything, mock.Anything).
			Return(decimal.NewFromInt(100), decimal.NewFromInt(150), nil)
		mockRepo.On("ExpenseTotalsByCategory", mock.Anything, uint(1), mock.Anything, mock.Anything).
			Return([]repository.CategoryTotal{
				{CategoryID: 1, CategoryName: "Rent", TotalAmount: decimal.NewFromInt(150)},
			}, nil)

		svc := NewReportService(mockRepo, nil)
		shares, err := svc.ExpensePercentages(context.Background(), 1, 2026, 3)

		require.NoError(t, err)
		require.Len(t, shares, 1)
		assert.True(t, decimal.NewFromInt(150).Equal(shares[0].Percentage), "got %s", shares[0].Percentage)
	})
}

func TestReportService_Overview(t *testing.T) {
	mockRepo := new(MockReportRepository)
	mockRepo.On("Totals", mock.Anything, uint(1), mock.Anything, mock.Anything).
		Return(decimal.NewFromInt(2000), decimal.NewFromInt(750), nil)

	svc := NewReportService(mockRepo, nil)
	overview, err := svc.Overview(context.Background(), 1, 2026, 3)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2000).Equal(overview.TotalIncome))
	assert.True(t, decimal.NewFromInt(750).Equal(overview.TotalExpenses))
	assert.True(t, decimal.NewFromInt(1250).Equal(overview.Balance))
}
