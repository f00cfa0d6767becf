package http

import (
	"net/http"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the gateway in front of the service.
const (
	HeaderUserID          = "X-User-ID"
	HeaderUserPermissions = "X-User-Permissions"
)

const actorContextKey = "actor"

// authenticate builds the calling user.Actor from the gateway headers.
// Unknown permission names are ignored.
func authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get(HeaderUserID)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing "+HeaderUserID+" header")
		}

		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "malformed "+HeaderUserID+" header")
		}

		var perms []user.Permission
		for _, name := range strings.Split(c.Request().Header.Get(HeaderUserPermissions), ",") {
			if p, parseErr := user.ParsePermission(name); parseErr == nil {
				perms = append(perms, p)
			}
		}

		actor, err := user.NewActor(id, perms...)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}

		c.Set(actorContextKey, actor)
		return next(c)
	}
}

// requirePermission rejects actors that lack p with 403.
func requirePermission(p user.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !actorFrom(c).HasPermission(p) {
				return echo.NewHTTPError(http.StatusForbidden, "permission "+string(p)+" is required")
			}
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) user.Actor {
	actor, _ := c.Get(actorContextKey).(user.Actor)
	return actor
}
