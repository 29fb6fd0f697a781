package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eparcel/eparcel-api/internal/core/ports"
)

// DashboardHandler serves the role-scoped dashboard counters.
type DashboardHandler struct {
	insightService ports.InsightService
}

func NewDashboardHandler(insightService ports.InsightService) *DashboardHandler {
	return &DashboardHandler{insightService: insightService}
}

// Summary handles GET /v1/dashboard/summary?analysis=true.
//
// @Summary      Dashboard counters with optional AI analysis
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        analysis  query     bool  false  "Attach a generated executive summary"
// @Success      200       {object}  dashboardSummaryResponse
// @Failure      401       {object}  errorEnvelope
// @Router       /v1/dashboard/summary [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	withAnalysis := c.QueryParam("analysis") == "true"

	summary, err := h.insightService.Summary(c.Request().Context(), actor, withAnalysis)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSummaryResponse(summary))
}
