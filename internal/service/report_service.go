package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"mybudget/internal/cache"
	"mybudget/internal/errors"
	"mybudget/internal/repository"
)

const reportCacheTTL = time.Minute

// CategoryShare is a category's expense expressed as a share of the
// month's total income.
type CategoryShare struct {
	CategoryID   uint            `json:"id"`
	CategoryName string          `json:"category_name"`
	Percentage   decimal.Decimal `json:"percentage"`
}

// BudgetOverview summarises money in and out for one month.
type BudgetOverview struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Balance       decimal.Decimal `json:"balance"`
}

// ReportService computes per-month aggregate spend reports.
type ReportService interface {
	ExpensesByCategory(ctx context.Context, userID uint, year, month int) ([]repository.CategoryTotal, error)
	ExpensePercentages(ctx context.Context, userID uint, year, month int) ([]CategoryShare, error)
	Overview(ctx context.Context, userID uint, year, month int) (BudgetOverview, error)
}

type reportService struct {
	repo  repository.ReportRepository
	cache *cache.Client
}

// NewReportService builds a ReportService with a short-lived cache in front
// of the aggregate queries.
func NewReportService(repo repository.ReportRepository, cache *cache.Client) ReportService {
	return &reportService{repo: repo, cache: cache}
}

// monthWindow converts a year/month pair into a half-open [start, end)
// window covering that calendar month.
func monthWindow(year, month int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 || year < 1 {
		return time.Time{}, time.Time{}, errors.ErrInvalidPeriod
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}

func (s *reportService) ExpensesByCategory(ctx context.Context, userID uint, year, month int) ([]repository.CategoryTotal, error) {
	start, end, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("report:by-category:%d:%d-%02d", userID, year, month)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []repository.CategoryTotal
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	totals, err := s.repo.ExpenseTotalsByCategory(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("expense totals: %w", err)
	}

	if payload, err := json.Marshal(totals); err == nil {
		_ = s.cache.Set(ctx, key, payload, reportCacheTTL)
	}
	return totals, nil
}

// ExpensePercentages reports each category's expense as a percentage of
// the month's total income. With no income that month every share is zero.
func (s *reportService) ExpensePercentages(ctx context.Context, userID uint, year, month int) ([]CategoryShare, error) {
	start, end, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}

	income, _, err := s.repo.Totals(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("income total: %w", err)
	}

	totals, err := s.repo.ExpenseTotalsByCategory(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("expense totals: %w", err)
	}

	shares := make([]CategoryShare, 0, len(totals))
	for _, t := range totals {
		pct := decimal.Zero
		if !income.IsZero() {
			pct = t.TotalAmount.Div(income).Mul(decimal.NewFromInt(100)).Round(2)
		}
		shares = append(shares, CategoryShare{
			CategoryID:   t.CategoryID,
			CategoryName: t.CategoryName,
			Percentage:   pct,
		})
	}
	return shares, nil
}

func (s *reportService) Overview(ctx context.Context, userID uint, year, month int) (BudgetOverview, error) {
	start, end, err := monthWindow(year, month)
	if err != nil {
		return BudgetOverview{}, err
	}

	key := fmt.Sprintf("report:overview:%d:%d-%02d", userID, year, month)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached BudgetOverview
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	income, expenses, err := s.repo.Totals(ctx, userID, start, end)
	if err != nil {
		return BudgetOverview{}, fmt.Errorf("totals: %w", err)
	}

	overview := BudgetOverview{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Sub(expenses),
	}
	if payload, err := json.Marshal(overview); err == nil {
		_ = s.cache.Set(ctx, key, payload, reportCacheTTL)
	}
	return overview, nil
}
