package handler

import (
	"time"

	"github.com/eparcel/eparcel-api/internal/core/domain"
	"github.com/eparcel/eparcel-api/internal/core/ports"
)

// dateLayout is the wire format for parcel dates. The domain stores them at
// midnight UTC already; the layout just drops the zero time-of-day.
const dateLayout = "2006-01-02"

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            string(u.Role),
		IsActive:        u.IsActive,
		AssignedClients: u.AssignedClients,
		Avatar:          u.Avatar,
	}
	if !u.CreatedAt.IsZero() {
		resp.CreatedAt = u.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func toListUsersResponse(users []*domain.User) listUsersResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return listUsersResponse{Data: out}
}

func toParcelResponse(p *domain.Parcel) parcelResponse {
	return parcelResponse{
		ID:             p.ID,
		TrackingNumber: p.TrackingNumber,
		Sender:         p.Sender,
		ClientID:       p.ClientID,
		Description:    p.Description,
		Status:         string(p.Status),
		DateCreated:    p.DateCreated.UTC().Format(dateLayout),
		DateUpdated:    p.DateUpdated.UTC().Format(dateLayout),
		HandledBy:      p.HandledBy,
	}
}

func toListParcelsResponse(parcels []*domain.Parcel) listParcelsResponse {
	out := make([]parcelResponse, len(parcels))
	for i, p := range parcels {
		out[i] = toParcelResponse(p)
	}
	return listParcelsResponse{Data: out}
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:            m.ID,
		SenderID:      m.SenderID,
		ReceiverID:    m.ReceiverID,
		Content:       m.Content,
		Timestamp:     m.Timestamp.UTC().Format(time.RFC3339),
		IsAIGenerated: m.IsAIGenerated,
	}
}

func toListMessagesResponse(messages []*domain.Message) listMessagesResponse {
	out := make([]messageResponse, len(messages))
	for i, m := range messages {
		out[i] = toMessageResponse(m)
	}
	return listMessagesResponse{Data: out}
}

func toSummaryResponse(s *ports.DashboardSummary) dashboardSummaryResponse {
	return dashboardSummaryResponse{
		TotalParcels: s.TotalParcels,
		Delivered:    s.Delivered,
		Pending:      s.Pending,
		InTransit:    s.InTransit,
		ActiveStaff:  s.ActiveStaff,
		Analysis:     s.Analysis,
	}
}
