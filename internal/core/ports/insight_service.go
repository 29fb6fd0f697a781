package ports

import "context"

// TextGenerator is the opaque external text-generation collaborator.
// Implementations may fail when no API key is configured; callers degrade to
// a static fallback message rather than surfacing the error.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DashboardSummary is the role-scoped counter set shown on the dashboard.
// Counters are computed over the parcels visible to the actor.
type DashboardSummary struct {
	TotalParcels int    `json:"total_parcels"`
	Delivered    int    `json:"delivered"`
	Pending      int    `json:"pending"`
	InTransit    int    `json:"in_transit"`
	ActiveStaff  int    `json:"active_staff,omitempty"` // admin only
	Analysis     string `json:"analysis,omitempty"`
}

// InsightService computes dashboard statistics and, on request, an
// AI-generated executive summary of them.
type InsightService interface {
	Summary(ctx context.Context, actor Actor, withAnalysis bool) (*DashboardSummary, error)
}
