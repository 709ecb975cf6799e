package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mybudget/internal/errors"
	"mybudget/internal/model"
)

func adminActor() *model.User {
	return &model.User{ID: 1, Username: "root", IsActive: true, IsSuperuser: true, Role: model.RoleAdministrator}
}

func TestAdminService_SoftDeleteUser(t *testing.T) {
	t.Run("marks the target deleted", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "bob", false).Return(&model.User{ID: 7, Username: "bob"}, nil)
		mockRepo.On("UpdateColumns", mock.Anything, uint(7), map[string]interface{}{"is_deleted": true}).Return(nil)

		svc := NewAdminService(mockRepo)
		require.NoError(t, svc.SoftDeleteUser(context.Background(), adminActor(), "bob"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("refuses to delete the acting account", func(t *testing.T) {
		mockRepo := new(MockUserRepository)

		svc := NewAdminService(mockRepo)
		err := svc.SoftDeleteUser(context.Background(), adminActor(), "root")

		assert.ErrorIs(t, err, errors.ErrSelfTarget)
		mockRepo.AssertNotCalled(t, "UpdateColumns", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown target", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "nobody", false).Return(nil, gorm.ErrRecordNotFound)

		svc := NewAdminService(mockRepo)
		err := svc.SoftDeleteUser(context.Background(), adminActor(), "nobody")
		assert.ErrorIs(t, err, errors.ErrUserNotFound)
	})

	t.Run("already-deleted target looks absent", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "ghost", false).Return(nil, gorm.ErrRecordNotFound)

		svc := NewAdminService(mockRepo)
		err := svc.SoftDeleteUser(context.Background(), adminActor(), "ghost")
		assert.ErrorIs(t, err, errors.ErrUserNotFound)
	})
}

func TestAdminService_SetSuperuser(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		grant         bool
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:   "grant",
			target: "bob",
			grant:  true,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "bob", true).Return(&model.User{ID: 7, Username: "bob"}, nil)
				m.On("UpdateColumns", mock.Anything, uint(7), map[string]interface{}{"is_superuser": true}).Return(nil)
			},
		},
		{
			name:   "revoke",
			target: "bob",
			grant:  false,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "bob", true).Return(&model.User{ID: 7, Username: "bob", IsSuperuser: true}, nil)
				m.On("UpdateColumns", mock.Anything, uint(7), map[string]interface{}{"is_superuser": false}).Return(nil)
			},
		},
		{
			name:          "self grant is refused",
			target:        "root",
			grant:         true,
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrSelfTarget,
		},
		{
			name:          "self revoke is refused",
			target:        "root",
			grant:         false,
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrSelfTarget,
		},
		{
			name:   "unknown target",
			target: "nobody",
			grant:  true,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "nobody", true).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
		{
			name:   "deleted target",
			target: "ghost",
			grant:  true,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "ghost", true).Return(&model.User{ID: 9, Username: "ghost", IsDeleted: true}, nil)
			},
			expectedError: errors.ErrUserDeleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAdminService(mockRepo)
			err := svc.SetSuperuser(context.Background(), adminActor(), tt.target, tt.grant)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				mockRepo.AssertNotCalled(t, "UpdateColumns", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAdminService_UpdateRole(t *testing.T) {
	t.Run("assigns a new role", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "bob", true).Return(&model.User{ID: 7, Username: "bob", Role: model.RoleMember}, nil)
		mockRepo.On("UpdateColumns", mock.Anything, uint(7), map[string]interface{}{"role": model.RoleModerator}).Return(nil)

		svc := NewAdminService(mockRepo)
		user, changed, err := svc.UpdateRole(context.Background(), adminActor(), "bob", "moderator")

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, model.RoleModerator, user.Role)
		mockRepo.AssertExpectations(t)
	})

	t.Run("role names are matched case-insensitively", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "bob", true).Return(&model.User{ID: 7, Username: "bob", Role: model.RoleMember}, nil)
		mockRepo.On("UpdateColumns", mock.Anything, uint(7), map[string]interface{}{"role": model.RoleAdministrator}).Return(nil)

		svc := NewAdminService(mockRepo)
		_, changed, err := svc.UpdateRole(context.Background(), adminActor(), "bob", "  Administrator ")

		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("assigning the held role is a no-op", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "bob", true).Return(&model.User{ID: 7, Username: "bob", Role: model.RoleModerator}, nil)

		svc := NewAdminService(mockRepo)
		user, changed, err := svc.UpdateRole(context.Background(), adminActor(), "bob", "moderator")

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, model.RoleModerator, user.Role)
		mockRepo.AssertNotCalled(t, "UpdateColumns", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown role is rejected before any lookup", func(t *testing.T) {
		mockRepo := new(MockUserRepository)

		svc := NewAdminService(mockRepo)
		_, _, err := svc.UpdateRole(context.Background(), adminActor(), "bob", "overlord")

		assert.ErrorIs(t, err, errors.ErrInvalidRole)
		mockRepo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("own role cannot be changed", func(t *testing.T) {
		svc := NewAdminService(new(MockUserRepository))
		_, _, err := svc.UpdateRole(context.Background(), adminActor(), "root", "member")
		assert.ErrorIs(t, err, errors.ErrSelfTarget)
	})

	t.Run("deleted target", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "ghost", true).Return(&model.User{ID: 9, Username: "ghost", IsDeleted: true, Role: model.RoleMember}, nil)

		svc := NewAdminService(mockRepo)
		_, _, err := svc.UpdateRole(context.Background(), adminActor(), "ghost", "moderator")
		assert.ErrorIs(t, err, errors.ErrUserDeleted)
	})
}
