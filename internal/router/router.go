package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"mybudget/internal/config"
	"mybudget/internal/handler"
	"mybudget/internal/middleware"
	"mybudget/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	users repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	adminHandler *handler.AdminHandler,
	categoryHandler *handler.CategoryHandler,
	transactionHandler *handler.TransactionHandler,
	reportHandler *handler.ReportHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Auth routes carry a write-path rate limit.
	writeLimit := echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(float64(cfg.RateLimitWrite) / 60.0),
			Burst: cfg.RateLimitWrite,
		}),
	})

	authGroup := api.Group("/auth", writeLimit)
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh-token", authHandler.Refresh)

	// Resolver middleware: validate the bearer token, then load the user.
	gate := []echo.MiddlewareFunc{
		middleware.JWT(cfg.JWTSecret),
		middleware.ResolveUser(users),
	}

	authGroup.POST("/change-password", authHandler.ChangePassword, gate...)
	authGroup.POST("/logout", authHandler.Logout, gate...)

	// Secured routes (require a resolved active user)
	secured := api.Group("", gate...)

	secured.GET("/users/profile", userHandler.GetProfile)
	secured.PATCH("/users/profile", userHandler.UpdateProfile)

	secured.POST("/categories", categoryHandler.Create)
	secured.GET("/categories", categoryHandler.List)
	secured.GET("/categories/:id", categoryHandler.Get)
	secured.PUT("/categories/:id", categoryHandler.Update)
	secured.DELETE("/categories/:id", categoryHandler.Delete)

	secured.POST("/transactions", transactionHandler.Create)
	secured.GET("/transactions", transactionHandler.List)
	secured.GET("/transactions/:id", transactionHandler.Get)
	secured.PUT("/transactions/:id", transactionHandler.Update)
	secured.DELETE("/transactions/:id", transactionHandler.Delete)

	secured.GET("/reports/by-category/:year/:month", reportHandler.ByCategory)
	secured.GET("/reports/percentage/:year/:month", reportHandler.Percentage)
	secured.GET("/reports/overview/:year/:month", reportHandler.Overview)

	// is-superuser answers for any authenticated user; the rest of the
	// admin surface sits behind the superuser gate.
	secured.GET("/admin/is-superuser", adminHandler.IsSuperuser)

	admin := api.Group("/admin", append(gate, middleware.RequireSuperuser())...)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/soft-delete/:username", adminHandler.SoftDeleteUser)
	admin.PATCH("/make-superuser/:username", adminHandler.MakeSuperuser)
	admin.PATCH("/revoke-superuser/:username", adminHandler.RevokeSuperuser)
	admin.PATCH("/update-role/:username", adminHandler.UpdateRole)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
