package auth

import (
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Decode failure kinds. Expiry is part of decode validity so that a
// tampered-but-unexpired token can never be accepted.
var (
	ErrTokenExpired   = stderrors.New("token expired")
	ErrTokenMalformed = stderrors.New("token malformed")
	ErrTokenSignature = stderrors.New("token signature invalid")
)

// Claims are the JWT claims carried by both token variants. The subject
// claim holds the username.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenPair bundles the two tokens minted on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// TokenCodec encodes and decodes signed, time-limited identity assertions.
// It is stateless; the signing key is fixed at construction and never
// rotated at runtime.
type TokenCodec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenCodec creates a codec with the given process-wide symmetric key.
func NewTokenCodec(secret string, accessTTL, refreshTTL time.Duration) *TokenCodec {
	return &TokenCodec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the configured access token lifetime.
func (c *TokenCodec) AccessTTL() time.Duration { return c.accessTTL }

// RefreshTTL returns the configured refresh token lifetime.
func (c *TokenCodec) RefreshTTL() time.Duration { return c.refreshTTL }

// IssueAccessToken mints a short-lived bearer token for the username.
func (c *TokenCodec) IssueAccessToken(username string) (string, error) {
	return c.issue(username, c.accessTTL, "")
}

// IssueRefreshToken mints a long-lived refresh token for the username.
func (c *TokenCodec) IssueRefreshToken(username string) (string, error) {
	return c.issue(username, c.refreshTTL, uuid.New().String())
}

// IssuePair mints an access and refresh token for the username.
func (c *TokenCodec) IssuePair(username string) (TokenPair, error) {
	access, err := c.IssueAccessToken(username)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := c.IssueRefreshToken(username)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

func (c *TokenCodec) issue(username string, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode validates a token and returns its claims. Failures are classified
// into ErrTokenExpired, ErrTokenSignature and ErrTokenMalformed.
func (c *TokenCodec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignature
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case stderrors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case stderrors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}
	// Both token variants carry an expiry; a signed token without one is
	// not ours and must not reach the revocation paths.
	if !token.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
