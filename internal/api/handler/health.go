package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// DependencyCheck probes a single backing service. Name appears in the
// readiness payload.
type DependencyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checks []DependencyCheck
}

func NewHealthHandler(checks ...DependencyCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Liveness handles GET /health. It only proves the process is serving.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness handles GET /health/ready. Each dependency gets a short probe
// budget; any failure flips the overall status to 503.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for _, dep := range h.checks {
		if err := dep.Check(ctx); err != nil {
			deps[dep.Name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[dep.Name] = "up"
	}

	body := map[string]any{"status": "ready", "dependencies": deps}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	return c.JSON(status, body)
}
