package domain

import "time"

// Message is a single chat message between two users. Replies produced by the
// text-generation collaborator are flagged with IsAIGenerated.
type Message struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	SenderID      string    `json:"sender_id" bson:"sender_id"`
	ReceiverID    string    `json:"receiver_id" bson:"receiver_id"`
	Content       string    `json:"content" bson:"content"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
	IsAIGenerated bool      `json:"is_ai_generated,omitempty" bson:"is_ai_generated,omitempty"`
}
