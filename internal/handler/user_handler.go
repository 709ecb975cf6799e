package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mybudget/internal/errors"
	"mybudget/internal/middleware"
	"mybudget/internal/service"
)

// UserHandler handles profile endpoints for the resolved user.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ProfileUpdateRequest carries optional profile fields; absent fields are
// left untouched.
type ProfileUpdateRequest struct {
	FirstName      *string `json:"first_name,omitempty" validate:"omitempty,max=255"`
	LastName       *string `json:"last_name,omitempty" validate:"omitempty,max=255"`
	ProfilePicture *string `json:"profile_picture,omitempty" validate:"omitempty,max=255"`
	PhoneNumber    *string `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	Bio            *string `json:"bio,omitempty"`
	Country        *string `json:"country,omitempty" validate:"omitempty,max=100"`
	City           *string `json:"city,omitempty" validate:"omitempty,max=100"`
	PostalCode     *string `json:"postal_code,omitempty" validate:"omitempty,max=20"`
	AddressLine    *string `json:"address_line,omitempty" validate:"omitempty,max=255"`
}

// GetProfile godoc
// @Summary Get the current user's profile
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	profile, err := h.userService.GetProfile(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to load profile",
			Code:  "PROFILE_LOAD_FAILED",
		})
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Partially update the current user's profile
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ProfileUpdateRequest true "Fields to update"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/profile [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req ProfileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	updated, err := h.userService.UpdateProfile(c.Request().Context(), user.ID, service.ProfileUpdate{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		ProfilePicture: req.ProfilePicture,
		PhoneNumber:    req.PhoneNumber,
		Bio:            req.Bio,
		Country:        req.Country,
		City:           req.City,
		PostalCode:     req.PostalCode,
		AddressLine:    req.AddressLine,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to update profile",
			Code:  "PROFILE_UPDATE_FAILED",
		})
	}
	return c.JSON(http.StatusOK, updated)
}
