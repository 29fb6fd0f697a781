package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eparcel/eparcel-api/internal/core/domain"
	"github.com/eparcel/eparcel-api/internal/core/ports"
)

const analysisUnavailable = "AI analysis unavailable."

// InsightService computes dashboard counters over the actor's visible parcels
// and optionally asks the text-generation collaborator for a short summary.
type InsightService struct {
	parcels   ports.ParcelService
	users     ports.UserRepository
	generator ports.TextGenerator
	logger    zerolog.Logger
}

func NewInsightService(parcels ports.ParcelService, users ports.UserRepository, generator ports.TextGenerator, logger zerolog.Logger) *InsightService {
	return &InsightService{parcels: parcels, users: users, generator: generator, logger: logger}
}

// Summary counts the parcels the actor can see, partitioned by status. The
// active-staff counter is admin only. When withAnalysis is set, a generated
// executive summary is attached; generation failures degrade to a static
// message instead of failing the request.
func (s *InsightService) Summary(ctx context.Context, actor ports.Actor, withAnalysis bool) (*ports.DashboardSummary, error) {
	visible, err := s.parcels.List(ctx, actor, ports.ListParcelsInput{})
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}

	summary := &ports.DashboardSummary{TotalParcels: len(visible)}
	for _, p := range visible {
		switch p.Status {
		case domain.StatusDelivered:
			summary.Delivered++
		case domain.StatusPending:
			summary.Pending++
		case domain.StatusInTransit:
			summary.InTransit++
		}
	}

	if actor.Role == domain.RoleAdmin {
		staff, err := s.users.List(ctx, domain.RoleStaff)
		if err != nil {
			return nil, fmt.Errorf("dashboard summary: staff roster: %w", err)
		}
		for _, u := range staff {
			if u.IsActive {
				summary.ActiveStaff++
			}
		}
	}

	if withAnalysis {
		summary.Analysis = s.analyze(ctx, actor.Role, summary)
	}

	return summary, nil
}

func (s *InsightService) analyze(ctx context.Context, role domain.Role, sum *ports.DashboardSummary) string {
	prompt := fmt.Sprintf(
		"You are an intelligent logistics assistant for the eParcel system. "+
			"Analyze the following statistics for a %s user and provide a brief, professional "+
			"executive summary (max 50 words) highlighting key performance indicators or action items. "+
			"Stats: total_parcels=%d delivered=%d pending=%d in_transit=%d active_staff=%d",
		role, sum.TotalParcels, sum.Delivered, sum.Pending, sum.InTransit, sum.ActiveStaff,
	)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil || text == "" {
		s.logger.Warn().Err(err).Msg("dashboard analysis generation failed")
		return analysisUnavailable
	}
	return text
}
