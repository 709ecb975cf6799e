package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"mybudget/internal/errors"
	"mybudget/internal/middleware"
	"mybudget/internal/model"
	"mybudget/internal/service"
)

// AdminHandler handles the superuser-only account management endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// RoleUpdateRequest carries the role to assign.
type RoleUpdateRequest struct {
	Role string `json:"role" validate:"required"`
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.PublicUser
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to list users",
			Code:  "LIST_USERS_FAILED",
		})
	}

	public := make([]model.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return c.JSON(http.StatusOK, public)
}

// IsSuperuser godoc
// @Summary Check whether the current user is a superuser
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/is-superuser [get]
func (h *AdminHandler) IsSuperuser(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	if !user.IsSuperuser {
		return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
			Error: "user does not have superuser privileges",
			Code:  "FORBIDDEN",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("user %s is superuser", user.Username),
	})
}

// SoftDeleteUser godoc
// @Summary Soft-delete a user
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param username path string true "Target username"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/soft-delete/{username} [patch]
func (h *AdminHandler) SoftDeleteUser(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	username := c.Param("username")

	if err := h.adminService.SoftDeleteUser(c.Request().Context(), actor, username); err != nil {
		switch err {
		case errors.ErrSelfTarget:
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "superusers cannot soft-delete themselves",
				Code:  "SELF_TARGET",
			})
		case errors.ErrUserNotFound:
			return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "USER_NOT_FOUND",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to soft-delete user",
			Code:  "SOFT_DELETE_FAILED",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("user %s has been soft-deleted", username),
	})
}

// MakeSuperuser godoc
// @Summary Grant superuser privileges
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param username path string true "Target username"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/make-superuser/{username} [patch]
func (h *AdminHandler) MakeSuperuser(c echo.Context) error {
	return h.setSuperuser(c, true)
}

// RevokeSuperuser godoc
// @Summary Revoke superuser privileges
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param username path string true "Target username"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/revoke-superuser/{username} [patch]
func (h *AdminHandler) RevokeSuperuser(c echo.Context) error {
	return h.setSuperuser(c, false)
}

func (h *AdminHandler) setSuperuser(c echo.Context, grant bool) error {
	actor := middleware.CurrentUser(c)
	username := c.Param("username")

	if err := h.adminService.SetSuperuser(c.Request().Context(), actor, username, grant); err != nil {
		switch err {
		case errors.ErrSelfTarget:
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "superusers cannot modify their own superuser status",
				Code:  "SELF_TARGET",
			})
		case errors.ErrUserNotFound:
			return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "USER_NOT_FOUND",
			})
		case errors.ErrUserDeleted:
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "USER_DELETED",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to update superuser flag",
			Code:  "SUPERUSER_UPDATE_FAILED",
		})
	}

	verb := "granted"
	if !grant {
		verb = "revoked"
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("superuser privileges %s for user %s", verb, username),
	})
}

// UpdateRole godoc
// @Summary Change a user's role
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param username path string true "Target username"
// @Param request body RoleUpdateRequest true "New role"
// @Success 200 {object} model.PublicUser
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/update-role/{username} [patch]
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	var req RoleUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor := middleware.CurrentUser(c)
	username := c.Param("username")

	user, changed, err := h.adminService.UpdateRole(c.Request().Context(), actor, username, req.Role)
	if err != nil {
		switch err {
		case errors.ErrSelfTarget:
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "superusers cannot modify their own role",
				Code:  "SELF_TARGET",
			})
		case errors.ErrInvalidRole:
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_ROLE",
			})
		case errors.ErrUserNotFound:
			return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "USER_NOT_FOUND",
			})
		case errors.ErrUserDeleted:
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "USER_DELETED",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to update role",
			Code:  "ROLE_UPDATE_FAILED",
		})
	}

	if !changed {
		return c.JSON(http.StatusOK, map[string]string{
			"message": fmt.Sprintf("user %s is already assigned the role '%s', no changes made", username, user.Role),
		})
	}
	return c.JSON(http.StatusOK, user.Public())
}
