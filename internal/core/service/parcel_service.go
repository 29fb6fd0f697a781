package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eparcel/eparcel-api/internal/api/metrics"
	"github.com/eparcel/eparcel-api/internal/core/domain"
	"github.com/eparcel/eparcel-api/internal/core/ports"
)

// TransitionDeduper absorbs duplicate transition requests (Redis-backed in
// production). A double-submitted transition inside the guard window is
// answered idempotently instead of hitting the state machine twice.
type TransitionDeduper interface {
	IsDuplicate(ctx context.Context, parcelID string, status domain.ParcelStatus) (bool, error)
	Mark(ctx context.Context, parcelID string, status domain.ParcelStatus) error
}

// ParcelService implements the visibility filter, parcel registration, the
// guarded status state machine, and deletion.
type ParcelService struct {
	parcels ports.ParcelRepository
	users   ports.UserRepository
	dedup   TransitionDeduper
	logger  zerolog.Logger
	now     func() time.Time
}

func NewParcelService(parcels ports.ParcelRepository, users ports.UserRepository, dedup TransitionDeduper, logger zerolog.Logger) *ParcelService {
	return &ParcelService{
		parcels: parcels,
		users:   users,
		dedup:   dedup,
		logger:  logger,
		now:     time.Now,
	}
}

// List applies the role-based visibility rule, then the optional filters.
// CLIENT actors are scoped to their own parcels at the repository level; STAFF
// and ADMIN see everything. The assigned_clients field is deliberately not
// applied as a staff scope.
func (s *ParcelService) List(ctx context.Context, actor ports.Actor, input ports.ListParcelsInput) ([]*domain.Parcel, error) {
	filter := ports.ListParcelsFilter{Search: input.Search}

	if actor.Role == domain.RoleClient {
		filter.ClientID = actor.ID
	}

	if input.Status != "" && input.Status != "All" {
		status := domain.ParcelStatus(input.Status)
		if !status.IsValid() {
			return nil, domain.ErrInvalidStatus
		}
		filter.Status = status
	}

	return s.parcels.List(ctx, filter)
}

// Create registers a new parcel. Only STAFF may register parcels; the status
// is always forced to Pending, both dates are stamped with the current date,
// and the registering staff member is recorded as handler.
func (s *ParcelService) Create(ctx context.Context, actor ports.Actor, input ports.CreateParcelInput) (*domain.Parcel, error) {
	if actor.Role != domain.RoleStaff {
		return nil, domain.ErrForbidden
	}

	// The recipient must be an existing, CLIENT-role account.
	recipient, err := s.users.FindByID(ctx, input.ClientID)
	if err != nil {
		return nil, fmt.Errorf("create parcel: recipient: %w", err)
	}
	if recipient.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}

	today := domain.DateOnly(s.now())
	parcel := &domain.Parcel{
		TrackingNumber: input.TrackingNumber,
		Sender:         input.Sender,
		ClientID:       input.ClientID,
		Description:    input.Description,
		Status:         domain.StatusPending,
		DateCreated:    today,
		DateUpdated:    today,
		HandledBy:      actor.ID,
	}

	created, err := s.parcels.Create(ctx, parcel)
	if err != nil {
		s.logger.Error().Err(err).Str("tracking_number", input.TrackingNumber).Msg("failed to create parcel")
		return nil, err
	}

	metrics.ParcelsCreatedTotal.Inc()
	s.logger.Info().
		Str("tracking_number", created.TrackingNumber).
		Str("client_id", created.ClientID).
		Str("handled_by", actor.ID).
		Msg("parcel registered")

	return created, nil
}

// Transition moves a parcel to target. The persistence write happens before
// any returned state, so callers never observe a status the store did not
// acknowledge.
func (s *ParcelService) Transition(ctx context.Context, actor ports.Actor, parcelID string, target domain.ParcelStatus) (*domain.Parcel, error) {
	if !target.IsValid() {
		metrics.TransitionsRejectedTotal.WithLabelValues("invalid_transition").Inc()
		return nil, domain.ErrInvalidStatus
	}

	if !domain.RoleMayRequest(actor.Role, target) {
		metrics.TransitionsRejectedTotal.WithLabelValues("forbidden").Inc()
		return nil, domain.ErrForbidden
	}

	// Clients only ever see and act on their own parcels; a foreign parcel
	// reads as not found rather than forbidden.
	ownerFilter := ""
	if actor.Role == domain.RoleClient {
		ownerFilter = actor.ID
	}

	parcel, err := s.parcels.FindByID(ctx, parcelID, ownerFilter)
	if err != nil {
		metrics.TransitionsRejectedTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}

	// Repeating the transition the parcel already took is a no-op success:
	// the terminal status stays put and only date_updated changes.
	if parcel.Status == target {
		return s.restamp(ctx, parcel)
	}

	if !parcel.Status.CanTransitionTo(target) {
		metrics.TransitionsRejectedTotal.WithLabelValues("invalid_transition").Inc()
		return nil, fmt.Errorf("transition %s to %s: %w", parcel.Status, target, domain.ErrInvalidTransition)
	}

	// Double-submit guard: an identical transition already in flight (or just
	// applied) is absorbed without a second write.
	isDup, err := s.dedup.IsDuplicate(ctx, parcelID, target)
	if err != nil {
		s.logger.Warn().Err(err).Str("parcel_id", parcelID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.TransitionsRejectedTotal.WithLabelValues("duplicate").Inc()
		s.logger.Debug().Str("parcel_id", parcelID).Str("status", string(target)).Msg("duplicate transition absorbed")
		return parcel, nil
	}

	if markErr := s.dedup.Mark(ctx, parcelID, target); markErr != nil {
		s.logger.Warn().Err(markErr).Str("parcel_id", parcelID).Msg("failed to set dedup key")
	}

	updated := domain.DateOnly(s.now())
	if err := s.parcels.UpdateStatus(ctx, parcelID, target, updated); err != nil {
		return nil, fmt.Errorf("transition: update status: %w", err)
	}

	parcel.Status = target
	parcel.DateUpdated = updated

	metrics.TransitionsTotal.WithLabelValues(string(target)).Inc()
	s.logger.Info().
		Str("parcel_id", parcelID).
		Str("tracking_number", parcel.TrackingNumber).
		Str("status", string(target)).
		Str("actor", actor.ID).
		Msg("parcel status updated")

	return parcel, nil
}

// Delete removes a parcel record. STAFF only; clients are never offered
// deletion.
func (s *ParcelService) Delete(ctx context.Context, actor ports.Actor, parcelID string) error {
	if actor.Role != domain.RoleStaff {
		return domain.ErrForbidden
	}

	if err := s.parcels.Delete(ctx, parcelID); err != nil {
		return err
	}

	s.logger.Info().Str("parcel_id", parcelID).Str("actor", actor.ID).Msg("parcel deleted")
	return nil
}

func (s *ParcelService) restamp(ctx context.Context, parcel *domain.Parcel) (*domain.Parcel, error) {
	updated := domain.DateOnly(s.now())
	if err := s.parcels.UpdateStatus(ctx, parcel.ID, parcel.Status, updated); err != nil {
		return nil, fmt.Errorf("transition: restamp: %w", err)
	}
	parcel.DateUpdated = updated
	return parcel, nil
}
