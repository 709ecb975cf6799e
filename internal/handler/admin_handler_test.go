package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mybudget/internal/auth"
	"mybudget/internal/middleware"
	"mybudget/internal/model"
	"mybudget/internal/service"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string, includeDeleted bool) (*model.User, error) {
	args := m.Called(ctx, username, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *mockUserRepository) UpdateColumns(ctx context.Context, id uint, values map[string]interface{}) error {
	args := m.Called(ctx, id, values)
	return args.Error(0)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

const adminTestSecret = "test-secret"

// newAdminEcho mounts the admin surface behind the same gate the router
// uses, with the real admin service over the mocked repository.
func newAdminEcho(repo *mockUserRepository) *echo.Echo {
	h := NewAdminHandler(service.NewAdminService(repo))

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	gate := []echo.MiddlewareFunc{
		middleware.JWT(adminTestSecret),
		middleware.ResolveUser(repo),
	}
	e.GET("/api/admin/is-superuser", h.IsSuperuser, gate...)

	admin := e.Group("/api/admin", append(gate, middleware.RequireSuperuser())...)
	admin.GET("/users", h.ListUsers)
	admin.PATCH("/soft-delete/:username", h.SoftDeleteUser)
	admin.PATCH("/make-superuser/:username", h.MakeSuperuser)
	admin.PATCH("/revoke-superuser/:username", h.RevokeSuperuser)
	admin.PATCH("/update-role/:username", h.UpdateRole)
	return e
}

func adminToken(t *testing.T, username string) string {
	t.Helper()
	codec := auth.NewTokenCodec(adminTestSecret, 15*time.Minute, time.Hour)
	token, err := codec.IssueAccessToken(username)
	require.NoError(t, err)
	return token
}

func doAdmin(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func expectRoot(repo *mockUserRepository) {
	repo.On("FindByUsername", mock.Anything, "root", false).
		Return(&model.User{ID: 1, Username: "root", IsActive: true, IsSuperuser: true, Role: model.RoleAdministrator}, nil)
}

func TestAdminHandler_SoftDeleteStatus(t *testing.T) {
	t.Run("self-target is forbidden", func(t *testing.T) {
		repo := new(mockUserRepository)
		expectRoot(repo)

		rec := doAdmin(newAdminEcho(repo), http.MethodPatch, "/api/admin/soft-delete/root", adminToken(t, "root"), "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "SELF_TARGET")
	})

	t.Run("unknown target is not found", func(t *testing.T) {
		repo := new(mockUserRepository)
		expectRoot(repo)
		repo.On("FindByUsername", mock.Anything, "nobody", false).Return(nil, gorm.ErrRecordNotFound)

		rec := doAdmin(newAdminEcho(repo), http.MethodPatch, "/api/admin/soft-delete/nobody", adminToken(t, "root"), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "USER_NOT_FOUND")
	})

	t.Run("existing target is deleted", func(t *testing.T) {
		repo := new(mockUserRepository)
		expectRoot(repo)
		repo.On("FindByUsername", mock.Anything, "bob", false).Return(&model.User{ID: 7, Username: "bob"}, nil)
		repo.On("UpdateColumns", mock.Anything, uint(7), map[string]interface{}{"is_deleted": true}).Return(nil)

		rec := doAdmin(newAdminEcho(repo), http.MethodPatch, "/api/admin/soft-delete/bob", adminToken(t, "root"), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		repo.AssertExpectations(t)
	})
}

func TestAdminHandler_SuperuserStatus(t *testing.T) {
	// Unlike soft-delete, targeting yourself here is a bad request.
	t.Run("make-superuser self-target is a bad request", func(t *testing.T) {
		repo := new(mockUserRepository)
		expectRoot(repo)

		rec := doAdmin(newAdminEcho(repo), http.MethodPatch, "/api/admin/make-superuser/root", adminToken(t, "root"), "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "SELF_TARGET")
	})

	t.Run("revoke-superuser self-target is a bad request", func(t *testing.T) {
		repo := new(mockUserRepository)
		expectRoot(repo)

		rec := doAdmin(newAdminEcho(repo), http.MethodPatch, "/api/admin/revoke-superuser/root", adminToken(t, "root"), "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "SELF_TARGET")
	})

	t.Run("deleted target is a bad request", func(t *testing.T) {
		repo := new(mockUserRepository)
		expectRoot(repo)
		repo.On("FindByUsername", mock.Anything, "ghost", true).Return(&model.User{ID: 9, Username: "ghost", IsDeleted: true}, nil)

		rec := doAdmin(newAdminEcho(repo), http.MethodPatch, "/api/admin/make-superuser/ghost", adminToken(t, "root"), "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "USER_DELETED")
	})

	t.Run("unknown target is not found", func(t *testing.T) {
		repo := new(mockUserRepository)
		expectRoot(repo)
		repo.On("FindByUsername", mock.Anything, "nobody", true).Return(nil, gorm.ErrRecordNotFound)

		rec := doAdmin(newAdminEcho(repo), http.MethodPatch, "/api/admin/make-superuser/nobody", adminToken(t, "root"), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "USER_NOT_FOUND")
	})

	t.Run("grant succeeds", func(t *testing.T) {
		repo := new(mockUserRepository)
		expectRoot(repo)
		repo.On("FindByUsername", mock.Anything, "bob", true).Return(&model.User{ID: 7, Username: "bob"}, nil)
		repo.On("UpdateColumns", mock.Anything, uint(7), map[string]interface{}{"is_superuser": true}).Return(nil)

		rec := doAdmin(newAdminEcho(repo), http.MethodPatch, "/api/admin/make-superuser/bob", adminToken(t, "root"), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		repo.AssertExpectations(t)
	})
}

func TestAdminHandler_UpdateRoleStatus(t *testing.T) {
	t.Run("self-target is a bad request", func(t *testing.T) {
		repo := new(mockUserRepository)
		expectRoot(repo)

		rec := doAdmin(newAdminEcho(repo), http.MethodPatch, "/api/admin/update-role/root", adminToken(t, "root"), `{"role":"member"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "SELF_TARGET")
	})

	t.Run("unknown role is a bad request", func(t *testing.T) {
		repo := new(mockUserRepository)
		expectRoot(repo)

		rec := doAdmin(newAdminEcho(repo), http.MethodPatch, "/api/admin/update-role/bob", adminToken(t, "root"), `{"role":"overlord"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_ROLE")
	})

	t.Run("deleted target is a bad request", func(t *testing.T) {
		repo := new(mockUserRepository)
		expectRoot(repo)
		repo.On("FindByUsername", mock.Anything, "ghost", true).Return(&model.User{ID: 9, Username: "ghost", IsDeleted: true, Role: model.RoleMember}, nil)

		rec := doAdmin(newAdminEcho(repo), http.MethodPatch, "/api/admin/update-role/ghost", adminToken(t, "root"), `{"role":"moderator"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "USER_DELETED")
	})

	t.Run("unknown target is not found", func(t *testing.T) {
		repo := new(mockUserRepository)
		expectRoot(repo)
		repo.On("FindByUsername", mock.Anything, "nobody", true).Return(nil, gorm.ErrRecordNotFound)

		rec := doAdmin(newAdminEcho(repo), http.MethodPatch, "/api/admin/update-role/nobody", adminToken(t, "root"), `{"role":"moderator"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "USER_NOT_FOUND")
	})

	t.Run("assigning the held role is a 200 no-op", func(t *testing.T) {
		repo := new(mockUserRepository)
		expectRoot(repo)
		repo.On("FindByUsername", mock.Anything, "bob", true).Return(&model.User{ID: 7, Username: "bob", Role: model.RoleModerator}, nil)

		rec := doAdmin(newAdminEcho(repo), http.MethodPatch, "/api/admin/update-role/bob", adminToken(t, "root"), `{"role":"moderator"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "no changes made")
		repo.AssertNotCalled(t, "UpdateColumns", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("role change returns the updated user", func(t *testing.T) {
		repo := new(mockUserRepository)
		expectRoot(repo)
		repo.On("FindByUsername", mock.Anything, "bob", true).Return(&model.User{ID: 7, Username: "bob", Role: model.RoleMember}, nil)
		repo.On("UpdateColumns", mock.Anything, uint(7), map[string]interface{}{"role": model.RoleModerator}).Return(nil)

		rec := doAdmin(newAdminEcho(repo), http.MethodPatch, "/api/admin/update-role/bob", adminToken(t, "root"), `{"role":"moderator"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"moderator"`)
		repo.AssertExpectations(t)
	})
}

func TestAdminHandler_IsSuperuser(t *testing.T) {
	t.Run("superuser gets a confirmation", func(t *testing.T) {
		repo := new(mockUserRepository)
		expectRoot(repo)

		rec := doAdmin(newAdminEcho(repo), http.MethodGet, "/api/admin/is-superuser", adminToken(t, "root"), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "is superuser")
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindByUsername", mock.Anything, "alice", false).
			Return(&model.User{ID: 2, Username: "alice", IsActive: true}, nil)

		rec := doAdmin(newAdminEcho(repo), http.MethodGet, "/api/admin/is-superuser", adminToken(t, "alice"), "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
