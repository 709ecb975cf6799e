package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mybudget/internal/model"
)

// CategoryTotal is the aggregate expense for a single category.
type CategoryTotal struct {
	CategoryID   uint            `json:"id" gorm:"column:category_id"`
	CategoryName string          `json:"category_name" gorm:"column:category_name"`
	TotalAmount  decimal.Decimal `json:"total_amount" gorm:"column:total_amount"`
}

// ReportRepository runs aggregate queries over transactions. All queries
// take a half-open [start, end) date window.
type ReportRepository interface {
	ExpenseTotalsByCategory(ctx context.Context, userID uint, start, end time.Time) ([]CategoryTotal, error)
	// Totals returns the summed income and expense amounts for the user
	// within the window.
	Totals(ctx context.Context, userID uint, start, end time.Time) (income, expenses decimal.Decimal, err error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository builds a GORM-backed report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) ExpenseTotalsByCategory(ctx context.Context, userID uint, start, end time.Time) ([]CategoryTotal, error) {
	var rows []CategoryTotal
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("categories.id AS category_id, categories.name AS category_name, SUM(transactions.amount) AS total_amount").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.is_income = ?", userID, false).
		Where("transactions.date >= ? AND transactions.date < ?", start, end).
		Group("categories.id, categories.name").
		Order("total_amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) Totals(ctx context.Context, userID uint, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	type sums struct {
		Income   decimal.Decimal `gorm:"column:income"`
		Expenses decimal.Decimal `gorm:"column:expenses"`
	}
	var s sums
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN is_income THEN amount ELSE 0 END), 0) AS income, "+
			"COALESCE(SUM(CASE WHEN is_income THEN 0 ELSE amount END), 0) AS expenses").
		Where("user_id = ?", userID).
		Where("date >= ? AND date < ?", start, end).
		Scan(&s).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return s.Income, s.Expenses, nil
}
