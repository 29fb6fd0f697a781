package memory

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/eparcel/eparcel-api/internal/core/domain"
)

// demoPassword is shared by every seeded account.
const demoPassword = "password"

// Seed populates the store with the demo accounts and parcels. IDs are fixed
// so the dataset is stable across restarts.
func (s *Store) Seed() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash demo password: %w", err)
	}

	now := time.Now().UTC()
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = []*domain.User{
		{ID: "u1", Name: "Admin User", Email: "admin@eparcel.com", PasswordHash: string(hash),
			Role: domain.RoleAdmin, IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: "u2", Name: "John Staff", Email: "john@eparcel.com", PasswordHash: string(hash),
			Role: domain.RoleStaff, IsActive: true, AssignedClients: []string{"u4"}, CreatedAt: now, UpdatedAt: now},
		{ID: "u3", Name: "Sarah Staff", Email: "sarah@eparcel.com", PasswordHash: string(hash),
			Role: domain.RoleStaff, IsActive: false, CreatedAt: now, UpdatedAt: now},
		{ID: "u4", Name: "Client A Corp", Email: "clienta@corp.com", PasswordHash: string(hash),
			Role: domain.RoleClient, IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: "u5", Name: "Client B Ltd", Email: "clientb@ltd.com", PasswordHash: string(hash),
			Role: domain.RoleClient, IsActive: true, CreatedAt: now, UpdatedAt: now},
	}

	s.parcels = []*domain.Parcel{
		{ID: "p1", TrackingNumber: "EP-8832", Sender: "Global Imports", ClientID: "u4",
			Description: "Electronics", Status: domain.StatusDelivered,
			DateCreated: date(2024, time.April, 2), DateUpdated: date(2024, time.April, 9), HandledBy: "u2"},
		{ID: "p2", TrackingNumber: "EP-9941", Sender: "Acme Supplies", ClientID: "u4",
			Description: "Office furniture", Status: domain.StatusPending,
			DateCreated: date(2024, time.May, 14), DateUpdated: date(2024, time.May, 14)},
		{ID: "p3", TrackingNumber: "EP-1122", Sender: "Nordic Traders", ClientID: "u5",
			Description: "Textiles", Status: domain.StatusInTransit,
			DateCreated: date(2024, time.May, 6), DateUpdated: date(2024, time.May, 11), HandledBy: "u2"},
		{ID: "p4", TrackingNumber: "EP-3344", Sender: "Pacific Freight", ClientID: "u4",
			Description: "Machine parts", Status: domain.StatusDeclined,
			DateCreated: date(2024, time.April, 20), DateUpdated: date(2024, time.April, 22), HandledBy: "u3"},
	}

	s.nextID = 10
	return nil
}
