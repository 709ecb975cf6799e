package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"mybudget/internal/errors"
	"mybudget/internal/middleware"
	"mybudget/internal/service"
)

// CategoryHandler handles spending category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents a category create or update payload.
type CategoryRequest struct {
	Name           string          `json:"name" validate:"required,max=255"`
	BudgetedAmount decimal.Decimal `json:"budgeted_amount"`
	Description    string          `json:"description,omitempty"`
	ColorCode      string          `json:"color_code,omitempty" validate:"omitempty,max=7"`
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := middleware.CurrentUser(c)
	category, err := h.categoryService.Create(c.Request().Context(), user.ID, service.CategoryInput{
		Name:           req.Name,
		BudgetedAmount: req.BudgetedAmount,
		Description:    req.Description,
		ColorCode:      req.ColorCode,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to create category",
			Code:  "CATEGORY_CREATE_FAILED",
		})
	}
	return c.JSON(http.StatusOK, category)
}

// List godoc
// @Summary List the current user's categories
// @Tags categories
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Category
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	user := middleware.CurrentUser(c)
	categories, err := h.categoryService.List(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to list categories",
			Code:  "CATEGORY_LIST_FAILED",
		})
	}
	return c.JSON(http.StatusOK, categories)
}

// Get godoc
// @Summary Get a category
// @Tags categories
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} model.Category
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	category, err := h.categoryService.Get(c.Request().Context(), id, user.ID)
	if err != nil {
		return categoryError(err)
	}
	return c.JSON(http.StatusOK, category)
}

// Update godoc
// @Summary Update a category
// @Tags categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body CategoryRequest true "Category"
// @Success 200 {object} model.Category
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := middleware.CurrentUser(c)
	category, err := h.categoryService.Update(c.Request().Context(), id, user.ID, service.CategoryInput{
		Name:           req.Name,
		BudgetedAmount: req.BudgetedAmount,
		Description:    req.Description,
		ColorCode:      req.ColorCode,
	})
	if err != nil {
		return categoryError(err)
	}
	return c.JSON(http.StatusOK, category)
}

// Delete godoc
// @Summary Delete a category
// @Tags categories
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	if err := h.categoryService.Delete(c.Request().Context(), id, user.ID); err != nil {
		return categoryError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "category deleted successfully",
	})
}

func categoryError(err error) *echo.HTTPError {
	if err == errors.ErrNotFound {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "category not found",
			Code:  "CATEGORY_NOT_FOUND",
		})
	}
	return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
		Error: "database error",
		Code:  "DATABASE_ERROR",
	})
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
