package domain

import (
	"errors"
	"time"
)

// ParcelStatus represents the lifecycle state of a parcel. The string values
// are the wire values the clients already display and filter on.
type ParcelStatus string

const (
	StatusPending   ParcelStatus = "Pending"
	StatusAccepted  ParcelStatus = "Accepted"
	StatusInTransit ParcelStatus = "In Transit"
	StatusDelivered ParcelStatus = "Delivered"
	StatusDeclined  ParcelStatus = "Declined"
)

// validTransitions defines the allowed state machine transitions.
// Delivered and Declined are terminal.
var validTransitions = map[ParcelStatus][]ParcelStatus{
	StatusPending:   {StatusAccepted, StatusDelivered, StatusDeclined},
	StatusAccepted:  {StatusInTransit, StatusDelivered, StatusDeclined},
	StatusInTransit: {StatusDelivered, StatusDeclined},
}

// transitionActors maps each target status to the roles allowed to request it.
// Clients may additionally only act on their own parcels; that ownership check
// lives in the service layer.
var transitionActors = map[ParcelStatus][]Role{
	StatusAccepted:  {RoleStaff, RoleAdmin},
	StatusInTransit: {RoleStaff, RoleAdmin},
	StatusDelivered: {RoleClient, RoleAdmin},
	StatusDeclined:  {RoleStaff, RoleClient, RoleAdmin},
}

var (
	ErrParcelNotFound    = errors.New("parcel not found")
	ErrDuplicateParcel   = errors.New("parcel already exists")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidStatus     = errors.New("unknown parcel status")
)

// IsValid reports whether s is one of the five known statuses.
func (s ParcelStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusInTransit, StatusDelivered, StatusDeclined:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions leave s.
func (s ParcelStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusDeclined
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s ParcelStatus) CanTransitionTo(next ParcelStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RoleMayRequest reports whether role is on the actor list for the edge
// leading into target.
func RoleMayRequest(role Role, target ParcelStatus) bool {
	for _, r := range transitionActors[target] {
		if r == role {
			return true
		}
	}
	return false
}

// Parcel is the core aggregate: a trackable shipment record owned by exactly
// one client. DateCreated and DateUpdated carry date-only granularity;
// DateUpdated is re-stamped on every status change.
type Parcel struct {
	ID             string       `json:"id" bson:"_id,omitempty"`
	TrackingNumber string       `json:"tracking_number" bson:"tracking_number"`
	Sender         string       `json:"sender" bson:"sender"`
	ClientID       string       `json:"client_id" bson:"client_id"`
	Description    string       `json:"description" bson:"description"`
	Status         ParcelStatus `json:"status" bson:"status"`
	DateCreated    time.Time    `json:"date_created" bson:"date_created"`
	DateUpdated    time.Time    `json:"date_updated" bson:"date_updated"`
	HandledBy      string       `json:"handled_by,omitempty" bson:"handled_by,omitempty"`
}

// DateOnly truncates t to midnight UTC, the granularity all parcel dates use.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
