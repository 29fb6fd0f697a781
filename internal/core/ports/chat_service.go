package ports

import (
	"context"

	"github.com/eparcel/eparcel-api/internal/core/domain"
)

// ReplyJob is the unit of work handed to the reply dispatcher after a chat
// message is stored: generate a support reply as if it came from PeerID.
type ReplyJob struct {
	ConversationKey string // shard key: stable for a sender/peer pair
	SenderID        string
	SenderRole      domain.Role
	PeerID          string
	Content         string
}

// ReplyService processes a single queued reply job. Implemented by the chat
// service, consumed by the dispatcher workers.
type ReplyService interface {
	Process(ctx context.Context, job ReplyJob) error
}

// ChatService defines the chat use cases.
type ChatService interface {
	// Send stores the message and enqueues an auto-reply job. The stored
	// message is returned; the reply arrives asynchronously.
	Send(ctx context.Context, actor Actor, receiverID, content string) (*domain.Message, error)
	// History returns the conversation between the actor and peerID.
	History(ctx context.Context, actor Actor, peerID string) ([]*domain.Message, error)
}
