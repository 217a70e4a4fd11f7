package http

import (
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	actorKey = "actor"
)

// ActorMiddleware resolves the caller from the gateway headers. A request
// without X-User-ID is anonymous; a malformed header is rejected.
func ActorMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := parseActor(c.Request().Header.Get(HeaderUserID), c.Request().Header.Get(HeaderUserRole))
		if err != nil {
			return err
		}
		c.Set(actorKey, actor)
		return next(c)
	}
}

// AdminOnly rejects callers that are not signed-in admins.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !actorFrom(c).IsAdmin() {
			return errs.NewAccessDeniedError("admin role required")
		}
		return next(c)
	}
}

func actorFrom(c echo.Context) kernel.Actor {
	if actor, ok := c.Get(actorKey).(kernel.Actor); ok {
		return actor
	}
	return kernel.NewAnonymousActor()
}

func parseActor(rawUserID, rawRole string) (kernel.Actor, error) {
	rawUserID = strings.TrimSpace(rawUserID)
	role := strings.ToLower(strings.TrimSpace(rawRole))

	if rawUserID == "" {
		return kernel.NewAnonymousActor(), nil
	}

	userID, err := kernel.UUIDFromString(rawUserID)
	if err != nil {
		return kernel.Actor{}, errs.NewValueIsInvalidErrorWithCause(HeaderUserID, err)
	}

	switch role {
	case "", kernel.RoleCustomer.String():
		return kernel.NewCustomerActor(userID), nil
	case kernel.RoleAdmin.String():
		return kernel.NewAdminActor(userID), nil
	default:
		return kernel.Actor{}, errs.NewValueIsInvalidError(HeaderUserRole)
	}
}
