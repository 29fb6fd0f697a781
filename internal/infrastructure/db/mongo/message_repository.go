package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eparcel/eparcel-api/internal/core/domain"
)

const collectionMessages = "messages"

type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages)}
}

// Insert persists the message and returns it with its canonical id.
func (r *MessageRepository) Insert(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	stored := *m
	if stored.ID == "" {
		stored.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.col.InsertOne(ctx, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// Conversation returns all messages exchanged between two users in timestamp
// order, regardless of direction.
func (r *MessageRepository) Conversation(ctx context.Context, userID, peerID string) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userID, "receiver_id": peerID},
		bson.M{"sender_id": peerID, "receiver_id": userID},
	}}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var messages []*domain.Message
	for cur.Next(ctx) {
		var m domain.Message
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, cur.Err()
}

// EnsureIndexes creates the conversation lookup indexes.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "receiver_id", Value: 1}, {Key: "timestamp", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
