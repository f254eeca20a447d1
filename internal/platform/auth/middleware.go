package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const callerKey contextKey = "caller"

const (
	RolePatient = "patient"
	RoleAdmin   = "admin"
)

// Caller is the identity resolved from a bearer token and attached to the
// request context. The password hash never travels with it.
type Caller struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// IdentityResolver looks up a caller by id in one identity store.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, id uuid.UUID) (*Caller, error)
}

// Middleware resolves an `Authorization: Bearer <token>` header to a Caller.
// The subject is looked up in the patient store first, falling back to the
// admin store. Any failure shape maps to 401.
func Middleware(issuer *TokenIssuer, patients, admins IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
			}

			id, err := issuer.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
			}

			ctx := c.Request().Context()
			caller, err := patients.ResolveIdentity(ctx, id)
			if err != nil {
				caller, err = admins.ResolveIdentity(ctx, id)
			}
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
			}

			ctx = context.WithValue(ctx, callerKey, caller)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireAdmin rejects callers whose role is not admin. It assumes Middleware
// already ran on the route.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller := CallerFromContext(c.Request().Context())
			if caller == nil || caller.Role != RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Not authorized as an admin")
			}
			return next(c)
		}
	}
}

// CallerFromContext retrieves the resolved caller, or nil when the request
// did not pass through the auth middleware.
func CallerFromContext(ctx context.Context) *Caller {
	caller, _ := ctx.Value(callerKey).(*Caller)
	return caller
}

// WithCaller returns a context carrying the given caller. Intended for tests
// and internal dispatch.
func WithCaller(ctx context.Context, caller *Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}
