package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Typed not-found errors so callers never compare against driver errors.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrSessionNotFound     = errors.New("user session not found")
	ErrChatSessionNotFound = errors.New("chat session not found")
)

const (
	usersCollection        = "users"
	userSessionsCollection = "user_sessions"
	chatSessionsCollection = "chat_sessions"
)

// Client wraps a MongoDB connection with an explicit lifecycle: constructed
// at process start, closed on shutdown, and handed to the orchestrators
// rather than shared as a package-level singleton.
type Client struct {
	mc *mongo.Client
	db *mongo.Database
}

// Connect opens and pings a MongoDB connection.
func Connect(ctx context.Context, uri, database string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := mc.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Client{mc: mc, db: mc.Database(database)}, nil
}

// Close disconnects the underlying MongoDB client.
func (c *Client) Close(ctx context.Context) error {
	return c.mc.Disconnect(ctx)
}

// Users returns the user repository.
func (c *Client) Users() *UserRepo {
	return &UserRepo{col: c.db.Collection(usersCollection)}
}

// UserSessions returns the login ledger repository.
func (c *Client) UserSessions() *UserSessionRepo {
	return &UserSessionRepo{col: c.db.Collection(userSessionsCollection)}
}

// ChatSessions returns the chat session repository.
func (c *Client) ChatSessions() *ChatSessionRepo {
	return &ChatSessionRepo{col: c.db.Collection(chatSessionsCollection)}
}
