package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec() *TokenCodec {
	return NewTokenCodec("test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec()

	token, err := codec.IssueAccessToken("alice")
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Empty(t, claims.ID)
}

func TestTokenCodec_RefreshTokenCarriesID(t *testing.T) {
	codec := newTestCodec()

	token, err := codec.IssueRefreshToken("alice")
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenCodec_ExpiredToken(t *testing.T) {
	codec := NewTokenCodec("test-secret", -time.Second, -time.Second)

	token, err := codec.IssueAccessToken("alice")
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenCodec_WrongKey(t *testing.T) {
	codec := newTestCodec()
	other := NewTokenCodec("other-secret", 15*time.Minute, 7*24*time.Hour)

	token, err := other.IssueAccessToken("alice")
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := newTestCodec()

	_, err := codec.Decode("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)

	_, err = codec.Decode("")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenCodec_MissingExpiry(t *testing.T) {
	codec := newTestCodec()

	// Correctly signed but minted without an expiry claim.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = codec.Decode(signed)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenCodec_IssuePair(t *testing.T) {
	codec := newTestCodec()

	pair, err := codec.IssuePair("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "bearer", pair.TokenType)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
}
