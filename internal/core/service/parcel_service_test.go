package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/eparcel/eparcel-api/internal/core/domain"
	"github.com/eparcel/eparcel-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubParcelRepo struct {
	parcels        []*domain.Parcel
	lastFindFilter string // clientID passed to the last FindByID call
	updateErr      error  // if set, UpdateStatus returns this error
	updateCalls    int
}

func (r *stubParcelRepo) Create(_ context.Context, p *domain.Parcel) (*domain.Parcel, error) {
	for _, existing := range r.parcels {
		if existing.TrackingNumber == p.TrackingNumber {
			return nil, domain.ErrDuplicateParcel
		}
	}
	clone := *p
	clone.ID = "p" + time.Now().UTC().Format("150405.000000000")
	r.parcels = append(r.parcels, &clone)
	out := clone
	return &out, nil
}

func (r *stubParcelRepo) FindByID(_ context.Context, id, clientID string) (*domain.Parcel, error) {
	r.lastFindFilter = clientID
	for _, p := range r.parcels {
		if p.ID != id {
			continue
		}
		if clientID != "" && p.ClientID != clientID {
			return nil, domain.ErrParcelNotFound
		}
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrParcelNotFound
}

// List mirrors the filters the real repositories apply, preserving order.
func (r *stubParcelRepo) List(_ context.Context, f ports.ListParcelsFilter) ([]*domain.Parcel, error) {
	var out []*domain.Parcel
	for _, p := range r.parcels {
		if f.ClientID != "" && p.ClientID != f.ClientID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.TrackingNumber), strings.ToLower(f.Search)) {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubParcelRepo) UpdateStatus(_ context.Context, id string, status domain.ParcelStatus, updated time.Time) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updateCalls++
	for _, p := range r.parcels {
		if p.ID == id {
			p.Status = status
			p.DateUpdated = updated
			return nil
		}
	}
	return domain.ErrParcelNotFound
}

func (r *stubParcelRepo) Delete(_ context.Context, id string) error {
	for i, p := range r.parcels {
		if p.ID == id {
			r.parcels = append(r.parcels[:i], r.parcels[i+1:]...)
			return nil
		}
	}
	return domain.ErrParcelNotFound
}

type stubUserRepo struct {
	users []*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	clone := *u
	clone.ID = "u" + time.Now().UTC().Format("150405.000000000")
	r.users = append(r.users, &clone)
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if role != "" && u.Role != role {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, isActive bool) error {
	for _, u := range r.users {
		if u.ID == id {
			u.IsActive = isActive
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type stubDeduper struct {
	seen     map[string]bool
	forceDup bool
}

func newStubDeduper() *stubDeduper { return &stubDeduper{seen: make(map[string]bool)} }

func (d *stubDeduper) IsDuplicate(_ context.Context, parcelID string, status domain.ParcelStatus) (bool, error) {
	if d.forceDup {
		return true, nil
	}
	return d.seen[parcelID+":"+string(status)], nil
}

func (d *stubDeduper) Mark(_ context.Context, parcelID string, status domain.ParcelStatus) error {
	d.seen[parcelID+":"+string(status)] = true
	return nil
}

// ---------------------------------------------------------------------------
// Fixtures: the seeded demo dataset
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func seedParcels() *stubParcelRepo {
	return &stubParcelRepo{parcels: []*domain.Parcel{
		{ID: "p1", TrackingNumber: "EP-8832", Sender: "Warehouse A", ClientID: "u4", Description: "Electronics", Status: domain.StatusDelivered, HandledBy: "u2"},
		{ID: "p2", TrackingNumber: "EP-9941", Sender: "Warehouse B", ClientID: "u4", Description: "Documents", Status: domain.StatusPending},
		{ID: "p3", TrackingNumber: "EP-1122", Sender: "Supplier X", ClientID: "u5", Description: "Furniture", Status: domain.StatusInTransit, HandledBy: "u2"},
		{ID: "p4", TrackingNumber: "EP-3344", Sender: "Amazon", ClientID: "u4", Description: "Books", Status: domain.StatusDeclined, HandledBy: "u3"},
	}}
}

func seedUsers() *stubUserRepo {
	return &stubUserRepo{users: []*domain.User{
		{ID: "u1", Name: "Admin User", Email: "admin@eparcel.com", Role: domain.RoleAdmin, IsActive: true},
		{ID: "u2", Name: "John Staff", Email: "john@eparcel.com", Role: domain.RoleStaff, IsActive: true, AssignedClients: []string{"u4"}},
		{ID: "u3", Name: "Sarah Staff", Email: "sarah@eparcel.com", Role: domain.RoleStaff, IsActive: false},
		{ID: "u4", Name: "Client A Corp", Email: "clienta@corp.com", Role: domain.RoleClient, IsActive: true},
		{ID: "u5", Name: "Client B Ltd", Email: "clientb@ltd.com", Role: domain.RoleClient, IsActive: true},
	}}
}

func newParcelService(parcels *stubParcelRepo, users *stubUserRepo) *ParcelService {
	return NewParcelService(parcels, users, newStubDeduper(), discardLogger)
}

var (
	staffActor  = ports.Actor{ID: "u2", Role: domain.RoleStaff}
	adminActor  = ports.Actor{ID: "u1", Role: domain.RoleAdmin}
	clientActor = ports.Actor{ID: "u4", Role: domain.RoleClient}
)

// ---------------------------------------------------------------------------
// Visibility filter
// ---------------------------------------------------------------------------

func TestList_ClientSeesOnlyOwnParcels(t *testing.T) {
	svc := newParcelService(seedParcels(), seedUsers())

	got, err := svc.List(context.Background(), clientActor, ports.ListParcelsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"EP-8832", "EP-9941", "EP-3344"}
	if len(got) != len(want) {
		t.Fatalf("expected %d parcels, got %d", len(want), len(got))
	}
	for i, p := range got {
		if p.TrackingNumber != want[i] {
			t.Errorf("parcel[%d]: want %s, got %s", i, want[i], p.TrackingNumber)
		}
		if p.ClientID != "u4" {
			t.Errorf("parcel %s leaked: belongs to %s", p.TrackingNumber, p.ClientID)
		}
	}
}

// Staff visibility is intentionally unrestricted: assigned_clients is not an
// access boundary. This test pins that behavior so any future tightening is a
// deliberate change.
func TestList_StaffSeesAllParcels(t *testing.T) {
	svc := newParcelService(seedParcels(), seedUsers())

	got, err := svc.List(context.Background(), staffActor, ports.ListParcelsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("staff must see all 4 parcels, got %d", len(got))
	}
}

func TestList_AdminSeesAllParcels(t *testing.T) {
	svc := newParcelService(seedParcels(), seedUsers())

	got, err := svc.List(context.Background(), adminActor, ports.ListParcelsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("admin must see all 4 parcels, got %d", len(got))
	}
}

func TestList_SearchByTrackingNumberSubstring(t *testing.T) {
	svc := newParcelService(seedParcels(), seedUsers())

	got, err := svc.List(context.Background(), adminActor, ports.ListParcelsInput{Search: "1122"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].TrackingNumber != "EP-1122" {
		t.Fatalf("search 1122: expected exactly EP-1122, got %v", got)
	}
}

func TestList_SearchIsCaseInsensitive(t *testing.T) {
	svc := newParcelService(seedParcels(), seedUsers())

	got, err := svc.List(context.Background(), adminActor, ports.ListParcelsInput{Search: "ep-88"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].TrackingNumber != "EP-8832" {
		t.Fatalf("search ep-88: expected EP-8832, got %v", got)
	}
}

func TestList_StatusFilter(t *testing.T) {
	svc := newParcelService(seedParcels(), seedUsers())

	got, err := svc.List(context.Background(), adminActor, ports.ListParcelsInput{Status: "Pending"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].TrackingNumber != "EP-9941" {
		t.Fatalf("filter Pending: expected EP-9941, got %v", got)
	}
}

func TestList_StatusAllSkipsFilter(t *testing.T) {
	svc := newParcelService(seedParcels(), seedUsers())

	got, err := svc.List(context.Background(), adminActor, ports.ListParcelsInput{Status: "All"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("status All must not filter, got %d", len(got))
	}
}

func TestList_UnknownStatusRejected(t *testing.T) {
	svc := newParcelService(seedParcels(), seedUsers())

	_, err := svc.List(context.Background(), adminActor, ports.ListParcelsInput{Status: "Lost"})
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestList_ClientFilterCombinesWithSearch(t *testing.T) {
	svc := newParcelService(seedParcels(), seedUsers())

	// EP-1122 belongs to u5; u4 searching for it must get nothing.
	got, err := svc.List(context.Background(), clientActor, ports.ListParcelsInput{Search: "1122"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("client must not see a foreign parcel via search, got %d", len(got))
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCreate_ForcesPendingAndStampsDates(t *testing.T) {
	parcels := seedParcels()
	svc := newParcelService(parcels, seedUsers())
	fixed := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	created, err := svc.Create(context.Background(), staffActor, ports.CreateParcelInput{
		TrackingNumber: "EP-7001",
		Sender:         "Warehouse C",
		ClientID:       "u5",
		Description:    "Samples",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Status != domain.StatusPending {
		t.Errorf("status must be forced to Pending, got %s", created.Status)
	}
	wantDate := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	if !created.DateCreated.Equal(wantDate) || !created.DateUpdated.Equal(wantDate) {
		t.Errorf("dates must be stamped date-only: created=%v updated=%v", created.DateCreated, created.DateUpdated)
	}
	if created.HandledBy != "u2" {
		t.Errorf("handled_by must be the registering staff member, got %q", created.HandledBy)
	}
	if created.ID == "" {
		t.Error("repository must assign a canonical id")
	}
}

func TestCreate_OnlyStaffMayRegister(t *testing.T) {
	svc := newParcelService(seedParcels(), seedUsers())

	for _, actor := range []ports.Actor{adminActor, clientActor} {
		_, err := svc.Create(context.Background(), actor, ports.CreateParcelInput{
			TrackingNumber: "EP-7002", ClientID: "u4",
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("actor %s: expected ErrForbidden, got %v", actor.Role, err)
		}
	}
}

func TestCreate_RecipientMustBeClient(t *testing.T) {
	svc := newParcelService(seedParcels(), seedUsers())

	// u2 is staff, not a valid recipient.
	_, err := svc.Create(context.Background(), staffActor, ports.CreateParcelInput{
		TrackingNumber: "EP-7003", ClientID: "u2",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("staff recipient: expected ErrForbidden, got %v", err)
	}

	_, err = svc.Create(context.Background(), staffActor, ports.CreateParcelInput{
		TrackingNumber: "EP-7004", ClientID: "nobody",
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("unknown recipient: expected ErrUserNotFound, got %v", err)
	}
}

func TestCreate_DuplicateTrackingNumber(t *testing.T) {
	svc := newParcelService(seedParcels(), seedUsers())

	_, err := svc.Create(context.Background(), staffActor, ports.CreateParcelInput{
		TrackingNumber: "EP-8832", ClientID: "u4",
	})
	if !errors.Is(err, domain.ErrDuplicateParcel) {
		t.Errorf("expected ErrDuplicateParcel, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Transitions
// ---------------------------------------------------------------------------

func TestTransition_StaffAcceptsPendingParcel(t *testing.T) {
	parcels := seedParcels()
	svc := newParcelService(parcels, seedUsers())
	fixed := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	// EP-9941 (p2) is Pending.
	updated, err := svc.Transition(context.Background(), staffActor, "p2", domain.StatusAccepted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.StatusAccepted {
		t.Errorf("expected Accepted, got %s", updated.Status)
	}
	wantDate := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	if !updated.DateUpdated.Equal(wantDate) {
		t.Errorf("date_updated must be re-stamped to the current date, got %v", updated.DateUpdated)
	}
	// The store must hold the same status (persist-first, no optimistic drift).
	if parcels.parcels[1].Status != domain.StatusAccepted {
		t.Errorf("store status not updated: %s", parcels.parcels[1].Status)
	}
}

func TestTransition_StaffDispatchesAcceptedParcel(t *testing.T) {
	parcels := seedParcels()
	parcels.parcels[1].Status = domain.StatusAccepted
	svc := newParcelService(parcels, seedUsers())

	updated, err := svc.Transition(context.Background(), staffActor, "p2", domain.StatusInTransit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.StatusInTransit {
		t.Errorf("expected In Transit, got %s", updated.Status)
	}
}

func TestTransition_ClientConfirmsReceipt(t *testing.T) {
	parcels := seedParcels()
	svc := newParcelService(parcels, seedUsers())

	// EP-9941 (p2) belongs to u4 and is Pending; receipt can be confirmed
	// from any non-terminal status.
	updated, err := svc.Transition(context.Background(), clientActor, "p2", domain.StatusDelivered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.StatusDelivered {
		t.Errorf("expected Delivered, got %s", updated.Status)
	}
}

func TestTransition_ClientCannotActOnForeignParcel(t *testing.T) {
	parcels := seedParcels()
	svc := newParcelService(parcels, seedUsers())

	// EP-1122 (p3) belongs to u5; u4 must not even learn it exists.
	_, err := svc.Transition(context.Background(), clientActor, "p3", domain.StatusDelivered)
	if !errors.Is(err, domain.ErrParcelNotFound) {
		t.Errorf("expected ErrParcelNotFound, got %v", err)
	}
	if parcels.lastFindFilter != "u4" {
		t.Errorf("client lookup must carry ownership filter, got %q", parcels.lastFindFilter)
	}
}

func TestTransition_ActorNotOnEdgeIsForbidden(t *testing.T) {
	svc := newParcelService(seedParcels(), seedUsers())

	// Accepting is a staff action; a client may not request it.
	_, err := svc.Transition(context.Background(), clientActor, "p2", domain.StatusAccepted)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("client accept: expected ErrForbidden, got %v", err)
	}

	// Confirming receipt is a client action; staff may not request it.
	_, err = svc.Transition(context.Background(), staffActor, "p2", domain.StatusDelivered)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("staff deliver: expected ErrForbidden, got %v", err)
	}
}

func TestTransition_TerminalStatusesAreLocked(t *testing.T) {
	svc := newParcelService(seedParcels(), seedUsers())

	// EP-8832 (p1) is Delivered, EP-3344 (p4) is Declined.
	if _, err := svc.Transition(context.Background(), staffActor, "p1", domain.StatusAccepted); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("delivered parcel: expected ErrInvalidTransition, got %v", err)
	}
	if _, err := svc.Transition(context.Background(), staffActor, "p4", domain.StatusAccepted); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("declined parcel: expected ErrInvalidTransition, got %v", err)
	}
}

func TestTransition_UnreachableEdgeRejected(t *testing.T) {
	svc := newParcelService(seedParcels(), seedUsers())

	// Pending cannot jump straight to In Transit.
	_, err := svc.Transition(context.Background(), staffActor, "p2", domain.StatusInTransit)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestTransition_RepeatIsIdempotent(t *testing.T) {
	parcels := seedParcels()
	svc := newParcelService(parcels, seedUsers())
	fixed := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	// Firing Delivered on the already-Delivered p1 succeeds, keeps the
	// status, and only re-stamps the update date.
	updated, err := svc.Transition(context.Background(), clientActor, "p1", domain.StatusDelivered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.StatusDelivered {
		t.Errorf("status must stay Delivered, got %s", updated.Status)
	}
	if !updated.DateUpdated.Equal(time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("repeat must re-stamp date_updated, got %v", updated.DateUpdated)
	}
}

func TestTransition_DuplicateRequestAbsorbed(t *testing.T) {
	parcels := seedParcels()
	dedup := newStubDeduper()
	dedup.forceDup = true
	svc := NewParcelService(parcels, seedUsers(), dedup, discardLogger)

	got, err := svc.Transition(context.Background(), staffActor, "p2", domain.StatusAccepted)
	if err != nil {
		t.Fatalf("duplicate must be absorbed, got error: %v", err)
	}
	if got.Status != domain.StatusPending {
		t.Errorf("absorbed duplicate must return the unchanged parcel, got %s", got.Status)
	}
	if parcels.updateCalls != 0 {
		t.Errorf("absorbed duplicate must not write, got %d writes", parcels.updateCalls)
	}
}

func TestTransition_PersistFailureReturnsError(t *testing.T) {
	parcels := seedParcels()
	parcels.updateErr = errors.New("store down")
	svc := newParcelService(parcels, seedUsers())

	_, err := svc.Transition(context.Background(), staffActor, "p2", domain.StatusAccepted)
	if err == nil {
		t.Fatal("expected error when the store rejects the write")
	}
	// No optimistic commit: the stored parcel keeps its old status.
	if parcels.parcels[1].Status != domain.StatusPending {
		t.Errorf("store must be untouched on failure, got %s", parcels.parcels[1].Status)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestDelete_StaffOnly(t *testing.T) {
	parcels := seedParcels()
	svc := newParcelService(parcels, seedUsers())

	if err := svc.Delete(context.Background(), clientActor, "p2"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("client delete: expected ErrForbidden, got %v", err)
	}

	if err := svc.Delete(context.Background(), staffActor, "p2"); err != nil {
		t.Fatalf("staff delete failed: %v", err)
	}
	if len(parcels.parcels) != 3 {
		t.Errorf("expected 3 parcels after delete, got %d", len(parcels.parcels))
	}
}

func TestDelete_UnknownParcel(t *testing.T) {
	svc := newParcelService(seedParcels(), seedUsers())

	if err := svc.Delete(context.Background(), staffActor, "p999"); !errors.Is(err, domain.ErrParcelNotFound) {
		t.Errorf("expected ErrParcelNotFound, got %v", err)
	}
}
