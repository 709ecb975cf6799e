package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"mybudget/internal/errors"
	"mybudget/internal/middleware"
	"mybudget/internal/service"
)

// ReportHandler handles the per-month aggregate spend report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ByCategory godoc
// @Summary Total expenses per category for one month
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {array} repository.CategoryTotal
// @Failure 400 {object} errors.ErrorResponse
// @Router /reports/by-category/{year}/{month} [get]
func (h *ReportHandler) ByCategory(c echo.Context) error {
	user := middleware.CurrentUser(c)
	year, month, err := reportPeriod(c)
	if err != nil {
		return err
	}

	totals, svcErr := h.reportService.ExpensesByCategory(c.Request().Context(), user.ID, year, month)
	if svcErr != nil {
		return reportError(svcErr)
	}
	return c.JSON(http.StatusOK, totals)
}

// Percentage godoc
// @Summary Expense share of monthly income per category
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {array} service.CategoryShare
// @Failure 400 {object} errors.ErrorResponse
// @Router /reports/percentage/{year}/{month} [get]
func (h *ReportHandler) Percentage(c echo.Context) error {
	user := middleware.CurrentUser(c)
	year, month, err := reportPeriod(c)
	if err != nil {
		return err
	}

	shares, svcErr := h.reportService.ExpensePercentages(c.Request().Context(), user.ID, year, month)
	if svcErr != nil {
		return reportError(svcErr)
	}
	return c.JSON(http.StatusOK, shares)
}

// Overview godoc
// @Summary Income, expenses and balance for one month
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} service.BudgetOverview
// @Failure 400 {object} errors.ErrorResponse
// @Router /reports/overview/{year}/{month} [get]
func (h *ReportHandler) Overview(c echo.Context) error {
	user := middleware.CurrentUser(c)
	year, month, err := reportPeriod(c)
	if err != nil {
		return err
	}

	overview, svcErr := h.reportService.Overview(c.Request().Context(), user.ID, year, month)
	if svcErr != nil {
		return reportError(svcErr)
	}
	return c.JSON(http.StatusOK, overview)
}

func reportPeriod(c echo.Context) (int, int, error) {
	year, errYear := strconv.Atoi(c.Param("year"))
	month, errMonth := strconv.Atoi(c.Param("month"))
	if errYear != nil || errMonth != nil {
		return 0, 0, invalidPeriodError()
	}
	return year, month, nil
}

func reportError(err error) *echo.HTTPError {
	if err == errors.ErrInvalidPeriod {
		return invalidPeriodError()
	}
	return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
		Error: "failed to build report",
		Code:  "REPORT_FAILED",
	})
}

func invalidPeriodError() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: errors.ErrInvalidPeriod.Error(),
		Code:  "INVALID_PERIOD",
	})
}
