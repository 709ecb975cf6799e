package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"mybudget/internal/auth"
	"mybudget/internal/model"
	"mybudget/internal/repository"
)

// userContextKey is where the resolved user is stored on the echo context.
const userContextKey = "currentUser"

// JWT returns the echo-jwt middleware configured to parse tokens into the
// codec's claims type. It rejects bad signatures, malformed tokens and
// expired tokens before any handler runs.
func JWT(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	})
}

// ResolveUser maps the validated token's subject to an active user record.
// It must run after JWT. The revocation ledger is deliberately not
// consulted here; only the logout and refresh paths read it, so an access
// token stays honored until natural expiry even after logout.
func ResolveUser(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok || claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByUsername(c.Request().Context(), claims.Subject, false)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if !user.IsActive {
				return echo.NewHTTPError(http.StatusUnauthorized, "inactive user")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireSuperuser rejects callers whose resolved user lacks the superuser
// flag. It must run after ResolveUser.
func RequireSuperuser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if !user.IsSuperuser {
				return echo.NewHTTPError(http.StatusForbidden, "the user doesn't have enough privileges")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user resolved by ResolveUser, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}
