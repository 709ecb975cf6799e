package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"mybudget/internal/errors"
	"mybudget/internal/logger"
	"mybudget/internal/model"
	"mybudget/internal/repository"
)

// AdminService exposes the superuser-only account management operations.
// Every mutation enforces the self-target rule: an actor may never apply a
// privilege-changing or deletion operation to their own account.
type AdminService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	SoftDeleteUser(ctx context.Context, actor *model.User, username string) error
	SetSuperuser(ctx context.Context, actor *model.User, username string, grant bool) error
	// UpdateRole returns the updated user and whether the role actually
	// changed; assigning an already-held role is a no-op.
	UpdateRole(ctx context.Context, actor *model.User, username, role string) (*model.User, bool, error)
}

type adminService struct {
	users repository.UserRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(users repository.UserRepository) AdminService {
	return &adminService{users: users}
}

func (s *adminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// SoftDeleteUser marks the target deleted. Deletion is one-way; there is no
// reinstatement operation.
func (s *adminService) SoftDeleteUser(ctx context.Context, actor *model.User, username string) error {
	if username == actor.Username {
		logger.Get().Warn().Str("actor", actor.Username).Msg("superuser attempted to soft-delete themselves")
		return errors.ErrSelfTarget
	}

	user, err := s.users.FindByUsername(ctx, username, false)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := s.users.UpdateColumns(ctx, user.ID, map[string]interface{}{"is_deleted": true}); err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}

	logger.Get().Info().Str("actor", actor.Username).Str("target", username).Msg("user soft-deleted")
	return nil
}

// SetSuperuser grants or revokes the superuser flag on the target account.
func (s *adminService) SetSuperuser(ctx context.Context, actor *model.User, username string, grant bool) error {
	if username == actor.Username {
		logger.Get().Warn().Str("actor", actor.Username).Msg("superuser attempted to modify their own superuser status")
		return errors.ErrSelfTarget
	}

	user, err := s.users.FindByUsername(ctx, username, true)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if user.IsDeleted {
		return errors.ErrUserDeleted
	}

	if err := s.users.UpdateColumns(ctx, user.ID, map[string]interface{}{"is_superuser": grant}); err != nil {
		return fmt.Errorf("update superuser flag: %w", err)
	}

	logger.Get().Info().
		Str("actor", actor.Username).
		Str("target", username).
		Bool("superuser", grant).
		Msg("superuser flag updated")
	return nil
}

func (s *adminService) UpdateRole(ctx context.Context, actor *model.User, username, role string) (*model.User, bool, error) {
	if username == actor.Username {
		logger.Get().Warn().Str("actor", actor.Username).Msg("superuser attempted to modify their own role")
		return nil, false, errors.ErrSelfTarget
	}

	// Validate against the closed role set rather than trusting the
	// caller's casing.
	role = strings.ToLower(strings.TrimSpace(role))
	if !model.ValidRole(role) {
		return nil, false, errors.ErrInvalidRole
	}

	user, err := s.users.FindByUsername(ctx, username, true)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, errors.ErrUserNotFound
		}
		return nil, false, fmt.Errorf("find user: %w", err)
	}
	if user.IsDeleted {
		return nil, false, errors.ErrUserDeleted
	}

	if strings.EqualFold(user.Role, role) {
		return user, false, nil
	}

	if err := s.users.UpdateColumns(ctx, user.ID, map[string]interface{}{"role": role}); err != nil {
		return nil, false, fmt.Errorf("update role: %w", err)
	}
	user.Role = role

	logger.Get().Info().
		Str("actor", actor.Username).
		Str("target", username).
		Str("role", role).
		Msg("user role updated")
	return user, true, nil
}
