package ports

import "github.com/eparcel/eparcel-api/internal/core/domain"

// Actor identifies the authenticated caller of a use case. Handlers build it
// from the JWT claims injected by the auth middleware.
type Actor struct {
	ID   string
	Role domain.Role
}
