package middleware

import (
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/session"

	"github.com/gofiber/fiber/v2"
)

const (
	// SessionCookie is the name of the session token cookie.
	SessionCookie = "inkwell_session"

	// PrincipalLocal is the Fiber locals key holding the resolved Principal.
	PrincipalLocal = "principal"
	// PrincipalUserIDLocal is the Fiber locals key holding the user id for logging.
	PrincipalUserIDLocal = "userID"
)

// ResolvePrincipal resolves the session cookie into a Principal and stores
// it in locals. Requests without a valid session pass through anonymously;
// use AuthRequired to enforce authentication.
func ResolvePrincipal(store session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return c.Next()
		}

		principal, err := store.Get(c.UserContext(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				Logger.ErrorContext(c.UserContext(), "session lookup failed", "error", err.Error())
			}
			// A stale or bogus cookie is treated as anonymous.
			return c.Next()
		}

		c.Locals(PrincipalLocal, *principal)
		c.Locals(PrincipalUserIDLocal, principal.UserID)
		return c.Next()
	}
}

// AuthRequired enforces an authenticated Principal on the request.
func AuthRequired(c *fiber.Ctx) error {
	if _, ok := c.Locals(PrincipalLocal).(models.Principal); !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewAuthError())
	}
	return c.Next()
}

// RoleRequired enforces that the authenticated Principal holds the given
// role. The check runs against the current session on every call; no
// authorization decision is cached across requests.
func RoleRequired(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := c.Locals(PrincipalLocal).(models.Principal)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewAuthError())
		}
		if principal.Role != role {
			return models.RespondWithError(c, fiber.StatusForbidden, models.NewForbiddenError())
		}
		return c.Next()
	}
}

// CurrentPrincipal returns the Principal attached to the request, if any.
func CurrentPrincipal(c *fiber.Ctx) (models.Principal, bool) {
	principal, ok := c.Locals(PrincipalLocal).(models.Principal)
	return principal, ok
}
