// Package memory provides a self-contained in-memory persistence backend,
// selected with USE_MEMORY_STORE=true. It ships pre-seeded demo accounts and
// parcels so the API is usable without Mongo or Redis.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/eparcel/eparcel-api/internal/core/domain"
	"github.com/eparcel/eparcel-api/internal/core/ports"
)

// Store holds all in-memory collections behind one lock. Reads copy values
// out so callers never share mutable state with the store.
type Store struct {
	mu       sync.RWMutex
	users    []*domain.User
	parcels  []*domain.Parcel
	messages []*domain.Message
	dedup    map[string]time.Time
	nextID   int
}

func NewStore() *Store {
	return &Store{dedup: make(map[string]time.Time)}
}

func (s *Store) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s%d", prefix, s.nextID)
}

// --- ports.UserRepository ---

func (s *Store) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, domain.ErrUserExists
		}
	}

	stored := *user
	if stored.ID == "" {
		stored.ID = s.id("u")
	}
	s.users = append(s.users, &stored)

	out := stored
	return &out, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) List(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.User
	for _, u := range s.users {
		if role != "" && u.Role != role {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) SetActive(ctx context.Context, id string, isActive bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			u.IsActive = isActive
			u.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// --- parcel repository ---

// Parcels returns a view of the store satisfying ports.ParcelRepository.
// The method indirection exists because the user repository already claims
// the Create/FindByID/List names on Store itself.
func (s *Store) Parcels() ports.ParcelRepository { return parcelStore{s} }

type parcelStore struct{ s *Store }

func (p parcelStore) Create(ctx context.Context, parcel *domain.Parcel) (*domain.Parcel, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	for _, existing := range p.s.parcels {
		if strings.EqualFold(existing.TrackingNumber, parcel.TrackingNumber) {
			return nil, domain.ErrDuplicateParcel
		}
	}

	stored := *parcel
	if stored.ID == "" {
		stored.ID = p.s.id("p")
	}
	p.s.parcels = append(p.s.parcels, &stored)

	out := stored
	return &out, nil
}

func (p parcelStore) FindByID(ctx context.Context, id string, clientID string) (*domain.Parcel, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	for _, parcel := range p.s.parcels {
		if parcel.ID != id {
			continue
		}
		if clientID != "" && parcel.ClientID != clientID {
			break
		}
		out := *parcel
		return &out, nil
	}
	return nil, domain.ErrParcelNotFound
}

func (p parcelStore) List(ctx context.Context, filter ports.ListParcelsFilter) ([]*domain.Parcel, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	var out []*domain.Parcel
	for _, parcel := range p.s.parcels {
		if filter.ClientID != "" && parcel.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && parcel.Status != filter.Status {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(parcel.TrackingNumber), strings.ToLower(filter.Search)) {
			continue
		}
		cp := *parcel
		out = append(out, &cp)
	}
	return out, nil
}

func (p parcelStore) UpdateStatus(ctx context.Context, id string, status domain.ParcelStatus, updated time.Time) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	for _, parcel := range p.s.parcels {
		if parcel.ID == id {
			parcel.Status = status
			parcel.DateUpdated = updated
			return nil
		}
	}
	return domain.ErrParcelNotFound
}

func (p parcelStore) Delete(ctx context.Context, id string) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	for i, parcel := range p.s.parcels {
		if parcel.ID == id {
			p.s.parcels = append(p.s.parcels[:i], p.s.parcels[i+1:]...)
			return nil
		}
	}
	return domain.ErrParcelNotFound
}

// --- ports.MessageRepository ---

func (s *Store) Insert(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *m
	if stored.ID == "" {
		stored.ID = s.id("m")
	}
	s.messages = append(s.messages, &stored)

	out := stored
	return &out, nil
}

func (s *Store) Conversation(ctx context.Context, userID, peerID string) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Message
	for _, m := range s.messages {
		if (m.SenderID == userID && m.ReceiverID == peerID) ||
			(m.SenderID == peerID && m.ReceiverID == userID) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// --- service.TransitionDeduper ---

const dedupWindow = 30 * time.Second

func (s *Store) IsDuplicate(ctx context.Context, parcelID string, status domain.ParcelStatus) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen, ok := s.dedup[dedupKey(parcelID, status)]
	return ok && time.Since(seen) < dedupWindow, nil
}

func (s *Store) Mark(ctx context.Context, parcelID string, status domain.ParcelStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dedup[dedupKey(parcelID, status)] = time.Now()
	return nil
}

func dedupKey(parcelID string, status domain.ParcelStatus) string {
	return fmt.Sprintf("transition:%s:%s", parcelID, status)
}
