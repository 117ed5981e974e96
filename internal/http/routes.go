package http

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/bobimat/workshop-tasks/internal/http/middlewares"
	"github.com/bobimat/workshop-tasks/internal/http/validators"
	"github.com/bobimat/workshop-tasks/internal/metrics"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.HideBanner = true
	e.Validator = validators.New()

	e.Use(echomw.Recover())
	e.Use(requestLogger())
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/healthz", h.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	e.POST("/auth/login", h.Login)

	auth := middleware.Authenticate(h.authService)
	adminOnly := middleware.RequireAdmin

	e.POST("/auth/logout", h.Logout, auth)
	e.GET("/me", h.Me, auth)

	e.GET("/tasks", h.ListTasks, auth)
	e.POST("/tasks", h.CreateTask, auth)
	e.GET("/tasks/:id", h.GetTask, auth)
	e.GET("/tasks/:id/logs", h.TaskHistory, auth)
	e.PATCH("/tasks/:id/status", h.UpdateTaskStatus, auth)
	e.PATCH("/tasks/:id/reference", h.RenameTaskReference, auth)
	e.DELETE("/tasks/:id", h.DeleteTask, auth)

	e.GET("/logs", h.ListLogs, auth, adminOnly)
	e.GET("/logs/export", h.ExportLogs, auth, adminOnly)

	// User mutations re-check the role against the directory in the service.
	e.GET("/users", h.ListUsers, auth, adminOnly)
	e.POST("/users", h.AddUser, auth)
	e.PUT("/users/:id", h.UpdateUser, auth)
	e.DELETE("/users/:id", h.DeleteUser, auth)
}

func requestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= 500 {
					level = slog.LevelError
				}
			}
			slog.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
