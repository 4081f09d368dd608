package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/promptpilot/promptpilot-go/models"
)

// ChatSessionRepo handles chat session persistence.
type ChatSessionRepo struct {
	col *mongo.Collection
}

// Insert persists a new chat session.
func (r *ChatSessionRepo) Insert(ctx context.Context, session *models.ChatSession) error {
	res, err := r.col.InsertOne(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to create chat session: %w", err)
	}
	session.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindBySessionID looks up a chat session by its opaque session id.
func (r *ChatSessionRepo) FindBySessionID(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	var session models.ChatSession
	err := r.col.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrChatSessionNotFound
		}
		return nil, fmt.Errorf("failed to find chat session: %w", err)
	}
	return &session, nil
}

// AppendLogs pushes log entries onto the session transcript in order.
func (r *ChatSessionRepo) AppendLogs(ctx context.Context, sessionID string, now time.Time, logs ...models.ChatLog) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"session_id": sessionID}, bson.M{
		"$push": bson.M{"chat_logs": bson.M{"$each": logs}},
		"$set":  bson.M{"updated_at": now},
	})
	if err != nil {
		return fmt.Errorf("failed to append chat logs: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrChatSessionNotFound
	}
	return nil
}

// ListByOwner returns all chat sessions owned by the given email, most
// recently updated first.
func (r *ChatSessionRepo) ListByOwner(ctx context.Context, userEmail string) ([]models.ChatSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_email": userEmail}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}
	defer cur.Close(ctx)

	var sessions []models.ChatSession
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode chat sessions: %w", err)
	}
	return sessions, nil
}
