package ports

import (
	"context"
	"time"

	"github.com/eparcel/eparcel-api/internal/core/domain"
)

// ListParcelsFilter carries all query parameters for listing parcels.
// ClientID is enforced by the service layer for CLIENT actors; empty means no
// ownership restriction (STAFF/ADMIN).
type ListParcelsFilter struct {
	ClientID string
	Status   domain.ParcelStatus // optional: exact status match
	Search   string              // optional: case-insensitive substring of tracking_number
}

// ParcelRepository defines persistence operations for parcels.
type ParcelRepository interface {
	// Create inserts the parcel and returns it with its canonical id assigned.
	// Fails with domain.ErrDuplicateParcel when the tracking number is taken.
	Create(ctx context.Context, p *domain.Parcel) (*domain.Parcel, error)
	// FindByID retrieves a parcel. When clientID is non-empty the lookup is
	// additionally filtered by ownership, so foreign parcels read as not found.
	FindByID(ctx context.Context, id string, clientID string) (*domain.Parcel, error)
	// List returns parcels matching filter, preserving stable creation order.
	List(ctx context.Context, filter ListParcelsFilter) ([]*domain.Parcel, error)
	// UpdateStatus persists the new status and re-stamps date_updated.
	UpdateStatus(ctx context.Context, id string, status domain.ParcelStatus, updated time.Time) error
	Delete(ctx context.Context, id string) error
}
