package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mybudget/internal/middleware"
	"mybudget/internal/model"
	"mybudget/internal/repository"
	"mybudget/internal/service"
)

type stubReportService struct {
	totals   []repository.CategoryTotal
	shares   []service.CategoryShare
	overview service.BudgetOverview
	err      error
}

func (s *stubReportService) ExpensesByCategory(ctx context.Context, userID uint, year, month int) ([]repository.CategoryTotal, error) {
	return s.totals, s.err
}

func (s *stubReportService) ExpensePercentages(ctx context.Context, userID uint, year, month int) ([]service.CategoryShare, error) {
	return s.shares, s.err
}

func (s *stubReportService) Overview(ctx context.Context, userID uint, year, month int) (service.BudgetOverview, error) {
	return s.overview, s.err
}

func newReportEcho(svc service.ReportService, repo *mockUserRepository) *echo.Echo {
	h := NewReportHandler(svc)

	e := echo.New()
	gate := []echo.MiddlewareFunc{
		middleware.JWT(adminTestSecret),
		middleware.ResolveUser(repo),
	}
	e.GET("/api/reports/by-category/:year/:month", h.ByCategory, gate...)
	e.GET("/api/reports/percentage/:year/:month", h.Percentage, gate...)
	e.GET("/api/reports/overview/:year/:month", h.Overview, gate...)
	return e
}

func TestReportHandler_PeriodParams(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("FindByUsername", mock.Anything, "alice", false).
		Return(&model.User{ID: 2, Username: "alice", IsActive: true}, nil)
	token := adminToken(t, "alice")

	t.Run("numeric period reaches the service", func(t *testing.T) {
		e := newReportEcho(&stubReportService{totals: []repository.CategoryTotal{}}, repo)
		rec := doAdmin(e, http.MethodGet, "/api/reports/by-category/2026/3", token, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-numeric period is a bad request", func(t *testing.T) {
		e := newReportEcho(&stubReportService{}, repo)
		for _, path := range []string{
			"/api/reports/by-category/abc/3",
			"/api/reports/percentage/2026/march",
			"/api/reports/overview/2026/x",
		} {
			rec := doAdmin(e, http.MethodGet, path, token, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, path)
			assert.Contains(t, rec.Body.String(), "INVALID_PERIOD", path)
		}
	})

	t.Run("out-of-range month is a bad request", func(t *testing.T) {
		svc := service.NewReportService(nil, nil)
		e := newReportEcho(svc, repo)
		rec := doAdmin(e, http.MethodGet, "/api/reports/overview/2026/13", token, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_PERIOD")
	})
}
