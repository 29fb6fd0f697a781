package ports

import (
	"context"

	"github.com/eparcel/eparcel-api/internal/core/domain"
)

// MessageRepository defines persistence for chat messages.
type MessageRepository interface {
	// Insert persists the message and returns it with its canonical id.
	Insert(ctx context.Context, m *domain.Message) (*domain.Message, error)
	// Conversation returns all messages exchanged between two users in
	// timestamp order, regardless of direction.
	Conversation(ctx context.Context, userID, peerID string) ([]*domain.Message, error)
}
