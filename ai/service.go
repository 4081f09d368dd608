package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/promptpilot/promptpilot-go/models"
)

// ErrUnknownServiceItem is returned when no prompt template exists for the
// requested (service, serviceItem) pair.
var ErrUnknownServiceItem = errors.New("invalid service or service item")

// ChatStore is the persistence surface for chat sessions.
type ChatStore interface {
	Insert(ctx context.Context, session *models.ChatSession) error
	FindBySessionID(ctx context.Context, sessionID string) (*models.ChatSession, error)
	AppendLogs(ctx context.Context, sessionID string, now time.Time, logs ...models.ChatLog) error
	ListByOwner(ctx context.Context, userEmail string) ([]models.ChatSession, error)
}

// Service is the chat orchestrator: creating sessions from prompt templates,
// continuing them, and reading transcripts back.
type Service struct {
	chats     ChatStore
	completer Completer
	logger    *slog.Logger

	now          func() time.Time
	newSessionID func() string
}

// NewService wires the chat orchestrator.
func NewService(chats ChatStore, completer Completer, logger *slog.Logger) *Service {
	return &Service{
		chats:     chats,
		completer: completer,
		logger:    logger,
		now:       time.Now,
		// UUIDs instead of unchecked random strings so collisions are not a
		// concern even without a uniqueness check on insert.
		newSessionID: uuid.NewString,
	}
}

// CreateSession starts a new chat from the template keyed by
// (service, serviceItem), seeds it with the AI's first reply, and returns
// the session id and that reply.
func (s *Service) CreateSession(ctx context.Context, service, serviceItem, ownerEmail string) (string, string, error) {
	prompt, ok := SeedPrompt(service, serviceItem)
	if !ok {
		return "", "", ErrUnknownServiceItem
	}

	reply, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return "", "", fmt.Errorf("completion failed: %w", err)
	}

	now := s.now()
	session := &models.ChatSession{
		Service:     service,
		ServiceItem: serviceItem,
		UserEmail:   ownerEmail,
		SessionID:   s.newSessionID(),
		ChatLogs:    []models.ChatLog{{Sender: models.SenderAI, Message: reply}},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.chats.Insert(ctx, session); err != nil {
		return "", "", err
	}

	s.logger.Info("chat session created", "session_id", session.SessionID, "service", service, "service_item", serviceItem)
	return session.SessionID, reply, nil
}

// ContinueSession sends the full transcript plus the new user prompt to the
// completion API, then appends exactly two log entries: the user turn and
// the AI turn.
func (s *Service) ContinueSession(ctx context.Context, sessionID, userPrompt string) (string, error) {
	session, err := s.chats.FindBySessionID(ctx, sessionID)
	if err != nil {
		return "", err
	}

	var transcript strings.Builder
	for _, entry := range session.ChatLogs {
		fmt.Fprintf(&transcript, "%s: %s\n", entry.Sender, entry.Message)
	}
	fmt.Fprintf(&transcript, "%s: %s", models.SenderUser, userPrompt)

	reply, err := s.completer.Complete(ctx, transcript.String())
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}

	err = s.chats.AppendLogs(ctx, sessionID, s.now(),
		models.ChatLog{Sender: models.SenderUser, Message: userPrompt},
		models.ChatLog{Sender: models.SenderAI, Message: reply},
	)
	if err != nil {
		return "", err
	}
	return reply, nil
}

// ListSessions returns all sessions owned by the given email.
func (s *Service) ListSessions(ctx context.Context, ownerEmail string) ([]models.ChatSession, error) {
	return s.chats.ListByOwner(ctx, ownerEmail)
}

// GetSession returns a single session with its full transcript.
func (s *Service) GetSession(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	return s.chats.FindBySessionID(ctx, sessionID)
}
