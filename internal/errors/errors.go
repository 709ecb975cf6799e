package errors

import "errors"

var (
	// ErrInvalidCredentials is returned on any login failure. It deliberately
	// does not distinguish an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrUserAlreadyExists is returned when the username or email is taken.
	ErrUserAlreadyExists = errors.New("username or email already registered")
	// ErrWeakPassword is returned when a password fails the policy check.
	ErrWeakPassword = errors.New("password does not meet security requirements")
	// ErrIncorrectPassword is returned when the old password does not match
	// on a password change.
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrInvalidToken is returned for malformed, tampered, expired or
	// revoked tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUserNotFound is returned when a target user is absent or excluded
	// by deletion semantics.
	ErrUserNotFound = errors.New("user not found")
	// ErrForbidden is returned when the caller lacks superuser privileges.
	ErrForbidden = errors.New("the user doesn't have enough privileges")
	// ErrSelfTarget is returned when a superuser applies a privilege or
	// deletion operation to their own account.
	ErrSelfTarget = errors.New("superusers cannot apply this operation to themselves")
	// ErrUserDeleted is returned when a privilege operation targets a
	// soft-deleted user.
	ErrUserDeleted = errors.New("cannot modify a deleted user")
	// ErrInvalidRole is returned when a role is outside the allowed set.
	ErrInvalidRole = errors.New("invalid role")
	// ErrRevocationFailed is returned when the revocation ledger write fails.
	ErrRevocationFailed = errors.New("could not process logout request")
	// ErrNotFound is returned when a requested resource does not exist or
	// is not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrInvalidPeriod is returned when a report's year/month selector is
	// out of range.
	ErrInvalidPeriod = errors.New("invalid report period")
)

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
