package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/bobimat/workshop-tasks/internal/errors"
	model "github.com/bobimat/workshop-tasks/internal/models"
	"github.com/bobimat/workshop-tasks/internal/services"
)

const sessionKey = "workshop_session"

type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*services.Session, error)
}

// Authenticate resolves the bearer token of every request and stores the
// session in the echo context.
func Authenticate(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrUnauthenticated.Message)
			}

			sess, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				code := apperrors.StatusCode(err)
				if code >= http.StatusInternalServerError {
					return echo.NewHTTPError(code, "failed to resolve session").SetInternal(err)
				}
				return echo.NewHTTPError(code, err.Error())
			}

			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// RequireAdmin rejects sessions without the administrator role. Must run
// after Authenticate.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !CurrentSession(c).IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrForbidden.Message)
		}
		return next(c)
	}
}

func CurrentSession(c echo.Context) *services.Session {
	sess, _ := c.Get(sessionKey).(*services.Session)
	return sess
}

// Actor is the user of the current session, or nil.
func Actor(c echo.Context) *model.User {
	if sess := CurrentSession(c); sess != nil {
		return sess.User
	}
	return nil
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
