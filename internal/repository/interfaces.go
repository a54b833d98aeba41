package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"markethub-messaging/internal/domain/conversation"
	"markethub-messaging/internal/domain/message"
)

type ConversationRepository interface {
	Create(ctx context.Context, c *conversation.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (conversation.Conversation, error)
	Update(ctx context.Context, c conversation.Conversation) error
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error

	AddParticipant(ctx context.Context, p *conversation.Participant) error
	GetParticipant(ctx context.Context, conversationID, participantID uuid.UUID) (conversation.Participant, error)
	GetParticipants(ctx context.Context, conversationID uuid.UUID) ([]conversation.Participant, error)
	UpdateParticipant(ctx context.Context, p conversation.Participant) error

	// ParticipantConversations returns the conversations a party belongs to,
	// identified by external reference id, most recently updated first.
	ParticipantConversations(ctx context.Context, referenceID string, limit int) ([]conversation.Conversation, error)
	ParticipantRefExists(ctx context.Context, referenceID string) (bool, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	CreateDeliveries(ctx context.Context, deliveries []message.Delivery) error

	// GetConversationMessages returns the most recent limit messages in
	// chronological order with deliveries and attachments attached.
	GetConversationMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]message.Message, error)

	// GetRecentMessages returns the most recent limit messages in
	// chronological order without related rows, for building AI context.
	GetRecentMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]message.Message, error)

	GetLatestMessage(ctx context.Context, conversationID uuid.UUID) (message.Message, error)
}
