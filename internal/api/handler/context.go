package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eparcel/eparcel-api/internal/core/domain"
	"github.com/eparcel/eparcel-api/internal/core/ports"
)

// ctxActor builds the acting identity from the claims injected by the Auth
// middleware and fast-fails before any service call:
//   - user_id must be non-empty (presence proves the middleware ran).
//   - role must be one of the three known roles; anything else means a stale
//     or tampered token and is rejected with 401.
func ctxActor(c echo.Context) (ports.Actor, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ := c.Get("role").(string)
	if !domain.Role(role).IsValid() {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token carries unknown role")
	}

	return ports.Actor{ID: id, Role: domain.Role(role)}, nil
}
