package ports

import (
	"context"

	"github.com/eparcel/eparcel-api/internal/core/domain"
)

// CreateParcelInput carries the fields staff submit when registering a parcel.
// Status, dates, and handled_by are assigned by the service.
type CreateParcelInput struct {
	TrackingNumber string
	Sender         string
	ClientID       string
	Description    string
}

// ListParcelsInput carries the optional filters of the parcel list view.
// Status accepts "All" or empty to skip status filtering.
type ListParcelsInput struct {
	Status string
	Search string
}

// ParcelService defines the parcel use cases: the role-based visibility
// filter, registration, the guarded status state machine, and deletion.
type ParcelService interface {
	// List applies the visibility rule (CLIENT sees own parcels only, STAFF
	// and ADMIN see everything) and then the optional status/search filters.
	List(ctx context.Context, actor Actor, input ListParcelsInput) ([]*domain.Parcel, error)
	// Create registers a parcel with status forced to Pending. STAFF only.
	Create(ctx context.Context, actor Actor, input CreateParcelInput) (*domain.Parcel, error)
	// Transition moves a parcel to target if the edge exists in the state
	// machine and actor's role is allowed on it. Requesting the current
	// status again is an idempotent no-op that only re-stamps date_updated.
	Transition(ctx context.Context, actor Actor, parcelID string, target domain.ParcelStatus) (*domain.Parcel, error)
	// Delete removes a parcel record. STAFF only.
	Delete(ctx context.Context, actor Actor, parcelID string) error
}
