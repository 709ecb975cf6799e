package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mybudget/internal/auth"
	"mybudget/internal/errors"
	"mybudget/internal/logger"
	"mybudget/internal/metrics"
	"mybudget/internal/model"
	"mybudget/internal/repository"
)

// RegisterInput carries the registration profile and plaintext password.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	DateOfBirth *time.Time
	Bio         string
	Country     string
	City        string
	PostalCode  string
	AddressLine string
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (auth.TokenPair, *model.User, error)
	ChangePassword(ctx context.Context, user *model.User, oldPassword, newPassword string) error
	Logout(ctx context.Context, accessToken string) error
	Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error)
}

type authService struct {
	users         repository.UserRepository
	blocklist     repository.BlocklistRepository
	codec         *auth.TokenCodec
	rotateRefresh bool
}

// NewAuthService creates a new authentication service. When rotateRefresh
// is set, a refresh token is revoked on use so each one is single-shot.
func NewAuthService(users repository.UserRepository, blocklist repository.BlocklistRepository, codec *auth.TokenCodec, rotateRefresh bool) AuthService {
	return &authService{
		users:         users,
		blocklist:     blocklist,
		codec:         codec,
		rotateRefresh: rotateRefresh,
	}
}

// Register creates a new user with a hashed password, active and without
// privileges.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, errors.ErrUserAlreadyExists
	}
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	if !auth.MeetsPolicy(in.Password) {
		return nil, errors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
		DateOfBirth:  in.DateOfBirth,
		Bio:          in.Bio,
		Country:      in.Country,
		City:         in.City,
		PostalCode:   in.PostalCode,
		AddressLine:  in.AddressLine,
		IsActive:     true,
		IsSuperuser:  false,
		Role:         model.RoleMember,
		DateJoined:   time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Two concurrent registrations race at the uniqueness constraint;
		// the loser gets a conflict, not a fault.
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.RegistrationsTotal.Inc()
	logger.Get().Info().Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Login verifies the credentials, records the login time and issues a token
// pair. Every failure collapses into the same undifferentiated error so the
// response never reveals whether the username exists.
func (s *authService) Login(ctx context.Context, username, password string) (auth.TokenPair, *model.User, error) {
	user, err := s.users.FindByUsername(ctx, username, false)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		logger.Get().Warn().Str("username", username).Msg("authentication failed")
		return auth.TokenPair{}, nil, errors.ErrInvalidCredentials
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		logger.Get().Warn().Str("username", username).Msg("authentication failed")
		return auth.TokenPair{}, nil, errors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.users.UpdateColumns(ctx, user.ID, map[string]interface{}{"last_login": now}); err != nil {
		return auth.TokenPair{}, nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLogin = &now

	pair, err := s.codec.IssuePair(user.Username)
	if err != nil {
		return auth.TokenPair{}, nil, fmt.Errorf("issue tokens: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	logger.Get().Info().Str("username", username).Msg("user authenticated")
	return pair, user, nil
}

// ChangePassword replaces the stored hash after verifying the old password
// and the new password's strength. Outstanding tokens stay valid.
func (s *authService) ChangePassword(ctx context.Context, user *model.User, oldPassword, newPassword string) error {
	if !auth.VerifyPassword(oldPassword, user.PasswordHash) {
		return errors.ErrIncorrectPassword
	}
	if !auth.MeetsPolicy(newPassword) {
		return errors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdateColumns(ctx, user.ID, map[string]interface{}{"password_hash": hash}); err != nil {
		return fmt.Errorf("store password: %w", err)
	}

	logger.Get().Info().Str("username", user.Username).Msg("password changed")
	return nil
}

// Logout pushes the presented token into the revocation ledger with its
// original expiry. The decode is defensive: a token whose expiry cannot be
// recovered cannot be revoked.
func (s *authService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.codec.Decode(accessToken)
	if err != nil {
		return errors.ErrInvalidToken
	}

	if err := s.blocklist.Revoke(ctx, accessToken, claims.ExpiresAt.Time); err != nil {
		logger.Get().Error().Err(err).Msg("revocation ledger write failed")
		return errors.ErrRevocationFailed
	}

	metrics.TokenRevocationsTotal.Inc()
	logger.Get().Info().Str("username", claims.Subject).Msg("user logged out")
	return nil
}

// Refresh validates a refresh token against expiry and the revocation
// ledger, then mints a fresh token pair for the same subject.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return auth.TokenPair{}, errors.ErrInvalidToken
	}

	revoked, err := s.blocklist.IsRevoked(ctx, refreshToken)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		logger.Get().Warn().Str("username", claims.Subject).Msg("revoked refresh token presented")
		return auth.TokenPair{}, errors.ErrInvalidToken
	}

	if s.rotateRefresh {
		if err := s.blocklist.Revoke(ctx, refreshToken, claims.ExpiresAt.Time); err != nil {
			return auth.TokenPair{}, fmt.Errorf("rotate refresh token: %w", err)
		}
		metrics.TokenRevocationsTotal.Inc()
	}

	pair, err := s.codec.IssuePair(claims.Subject)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	logger.Get().Info().Str("username", claims.Subject).Msg("access token refreshed")
	return pair, nil
}
