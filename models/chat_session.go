package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat log senders.
const (
	SenderAI   = "AI"
	SenderUser = "user"
)

// ChatLog is a single conversational turn.
type ChatLog struct {
	Sender  string `bson:"sender" json:"sender"`
	Message string `bson:"message" json:"message"`
}

// ChatSession is an AI conversation. ChatLogs is append-only; insertion
// order is conversational order and is never reordered or truncated.
type ChatSession struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Service     string             `bson:"service" json:"service"`
	ServiceItem string             `bson:"service_item" json:"serviceItem"`
	UserEmail   string             `bson:"user_email" json:"userEmail"`
	SessionID   string             `bson:"session_id" json:"sessionId"`
	ChatLogs    []ChatLog          `bson:"chat_logs" json:"chatLogs"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
