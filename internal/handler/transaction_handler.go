package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"mybudget/internal/errors"
	"mybudget/internal/middleware"
	"mybudget/internal/service"
)

// TransactionHandler handles income/expense transaction endpoints.
type TransactionHandler struct {
	transactionService service.TransactionService
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents a transaction create or update payload.
type TransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Date        string          `json:"date" validate:"required"`
	Description string          `json:"description,omitempty" validate:"omitempty,max=255"`
	Note        string          `json:"note,omitempty"`
	Location    string          `json:"location,omitempty" validate:"omitempty,max=255"`
	CategoryID  *uint           `json:"category_id,omitempty"`
	IsIncome    bool            `json:"is_income"`
}

func (r *TransactionRequest) toInput() (service.TransactionInput, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return service.TransactionInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}
	return service.TransactionInput{
		Amount:      r.Amount,
		Date:        date,
		Description: r.Description,
		Note:        r.Note,
		Location:    r.Location,
		CategoryID:  r.CategoryID,
		IsIncome:    r.IsIncome,
	}, nil
}

// Create godoc
// @Summary Record a transaction
// @Tags transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body TransactionRequest true "Transaction"
// @Success 200 {object} model.Transaction
// @Failure 400 {object} errors.ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	tx, err := h.transactionService.Create(c.Request().Context(), user.ID, in)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to create transaction",
			Code:  "TRANSACTION_CREATE_FAILED",
		})
	}
	return c.JSON(http.StatusOK, tx)
}

// List godoc
// @Summary List the current user's transactions
// @Tags transactions
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Transaction
// @Router /transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	user := middleware.CurrentUser(c)
	txs, err := h.transactionService.List(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to list transactions",
			Code:  "TRANSACTION_LIST_FAILED",
		})
	}
	return c.JSON(http.StatusOK, txs)
}

// Get godoc
// @Summary Get a transaction
// @Tags transactions
// @Security BearerAuth
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} model.Transaction
// @Failure 404 {object} errors.ErrorResponse
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	tx, err := h.transactionService.Get(c.Request().Context(), id, user.ID)
	if err != nil {
		return transactionError(err)
	}
	return c.JSON(http.StatusOK, tx)
}

// Update godoc
// @Summary Update a transaction
// @Tags transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param request body TransactionRequest true "Transaction"
// @Success 200 {object} model.Transaction
// @Failure 404 {object} errors.ErrorResponse
// @Router /transactions/{id} [put]
func (h *TransactionHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	tx, err := h.transactionService.Update(c.Request().Context(), id, user.ID, in)
	if err != nil {
		return transactionError(err)
	}
	return c.JSON(http.StatusOK, tx)
}

// Delete godoc
// @Summary Delete a transaction
// @Tags transactions
// @Security BearerAuth
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	if err := h.transactionService.Delete(c.Request().Context(), id, user.ID); err != nil {
		return transactionError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "transaction deleted successfully",
	})
}

func transactionError(err error) *echo.HTTPError {
	if err == errors.ErrNotFound {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "transaction not found",
			Code:  "TRANSACTION_NOT_FOUND",
		})
	}
	return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
		Error: "database error",
		Code:  "DATABASE_ERROR",
	})
}
