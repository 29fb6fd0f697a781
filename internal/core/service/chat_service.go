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

// ReplyEnqueuer hands reply jobs to the background dispatcher.
type ReplyEnqueuer interface {
	Enqueue(job ports.ReplyJob)
}

const replyFallback = "I received your message. A team member will get back to you shortly."

// ChatService stores messages and produces auto-replies through the external
// text-generation collaborator. Replies are generated off the request path by
// the dispatcher, which calls back into Process.
type ChatService struct {
	messages  ports.MessageRepository
	generator ports.TextGenerator
	queue     ReplyEnqueuer
	logger    zerolog.Logger
}

func NewChatService(messages ports.MessageRepository, generator ports.TextGenerator, logger zerolog.Logger) *ChatService {
	return &ChatService{messages: messages, generator: generator, logger: logger}
}

// SetQueue wires the reply dispatcher. Set after construction because the
// dispatcher itself processes jobs through this service.
func (s *ChatService) SetQueue(queue ReplyEnqueuer) {
	s.queue = queue
}

// Send persists the actor's message and enqueues an auto-reply job keyed by
// the conversation, so replies within one conversation stay ordered.
func (s *ChatService) Send(ctx context.Context, actor ports.Actor, receiverID, content string) (*domain.Message, error) {
	msg := &domain.Message{
		SenderID:   actor.ID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  time.Now().UTC(),
	}

	stored, err := s.messages.Insert(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	if s.queue != nil {
		s.queue.Enqueue(ports.ReplyJob{
			ConversationKey: conversationKey(actor.ID, receiverID),
			SenderID:        actor.ID,
			SenderRole:      actor.Role,
			PeerID:          receiverID,
			Content:         content,
		})
	}

	return stored, nil
}

// History returns the conversation between the actor and peerID in timestamp
// order.
func (s *ChatService) History(ctx context.Context, actor ports.Actor, peerID string) ([]*domain.Message, error) {
	return s.messages.Conversation(ctx, actor.ID, peerID)
}

// Process generates and stores one auto-reply. Generation failures degrade to
// a static fallback; the reply is stored either way so the conversation never
// silently drops a turn.
func (s *ChatService) Process(ctx context.Context, job ports.ReplyJob) error {
	prompt := fmt.Sprintf(
		"You are acting as a helpful support agent in the eParcel logistics system. "+
			"The user who sent the message is a %s. "+
			"User Message: %q. "+
			"Reply naturally as if you are the staff member or client on the other end. Keep it short and helpful.",
		job.SenderRole, job.Content,
	)

	content, err := s.generator.Generate(ctx, prompt)
	if err != nil || content == "" {
		metrics.ChatRepliesTotal.WithLabelValues("fallback").Inc()
		s.logger.Warn().Err(err).Str("peer_id", job.PeerID).Msg("reply generation failed, using fallback")
		content = replyFallback
	} else {
		metrics.ChatRepliesTotal.WithLabelValues("generated").Inc()
	}

	reply := &domain.Message{
		SenderID:      job.PeerID,
		ReceiverID:    job.SenderID,
		Content:       content,
		Timestamp:     time.Now().UTC(),
		IsAIGenerated: true,
	}

	if _, err := s.messages.Insert(ctx, reply); err != nil {
		return fmt.Errorf("store reply: %w", err)
	}
	return nil
}

// conversationKey is direction-independent so both sides of a conversation
// shard to the same dispatcher worker.
func conversationKey(a, b string) string {
	if a < b {
		return a + ":" + b
	}
	return b + ":" + a
}
