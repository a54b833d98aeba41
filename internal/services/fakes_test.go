package services

import (
	"context"
	"time"

	"markethub-messaging/internal/analytics"
	"markethub-messaging/internal/domain/conversation"
	"markethub-messaging/internal/domain/message"
	apperrors "markethub-messaging/pkg/errors"

	"github.com/google/uuid"
)

// In-memory fakes for the repository and analytics interfaces, so service
// flows run without a database.

type fakeConversationRepo struct {
	conversations map[uuid.UUID]*conversation.Conversation
	participants  []conversation.Participant
	touched       map[uuid.UUID]time.Time
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: map[uuid.UUID]*conversation.Conversation{},
		touched:       map[uuid.UUID]time.Time{},
	}
}

func (r *fakeConversationRepo) Create(ctx context.Context, c *conversation.Conversation) error {
	clone := *c
	r.conversations[c.ID] = &clone
	return nil
}

func (r *fakeConversationRepo) GetByID(ctx context.Context, id uuid.UUID) (conversation.Conversation, error) {
	c, ok := r.conversations[id]
	if !ok {
		return conversation.Conversation{}, apperrors.ErrNotFound
	}
	out := *c
	out.Participants = nil
	for _, p := range r.participants {
		if p.ConversationID == id {
			out.Participants = append(out.Participants, p)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) Update(ctx context.Context, c conversation.Conversation) error {
	if _, ok := r.conversations[c.ID]; !ok {
		return apperrors.ErrNotFound
	}
	clone := c
	clone.Participants = nil
	r.conversations[c.ID] = &clone
	return nil
}

func (r *fakeConversationRepo) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.touched[id] = at
	if c, ok := r.conversations[id]; ok {
		c.UpdatedAt = at
	}
	return nil
}

func (r *fakeConversationRepo) AddParticipant(ctx context.Context, p *conversation.Participant) error {
	r.participants = append(r.participants, *p)
	return nil
}

func (r *fakeConversationRepo) GetParticipant(ctx context.Context, conversationID, participantID uuid.UUID) (conversation.Participant, error) {
	for _, p := range r.participants {
		if p.ConversationID == conversationID && p.ID == participantID {
			return p, nil
		}
	}
	return conversation.Participant{}, apperrors.ErrNotFound
}

func (r *fakeConversationRepo) GetParticipants(ctx context.Context, conversationID uuid.UUID) ([]conversation.Participant, error) {
	var out []conversation.Participant
	for _, p := range r.participants {
		if p.ConversationID == conversationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) UpdateParticipant(ctx context.Context, p conversation.Participant) error {
	for i := range r.participants {
		if r.participants[i].ID == p.ID {
			r.participants[i] = p
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *fakeConversationRepo) ParticipantConversations(ctx context.Context, referenceID string, limit int) ([]conversation.Conversation, error) {
	var out []conversation.Conversation
	for _, p := range r.participants {
		if p.ReferenceID.Valid && p.ReferenceID.String == referenceID {
			if c, err := r.GetByID(ctx, p.ConversationID); err == nil {
				out = append(out, c)
			}
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) ParticipantRefExists(ctx context.Context, referenceID string) (bool, error) {
	for _, p := range r.participants {
		if p.ReferenceID.Valid && p.ReferenceID.String == referenceID {
			return true, nil
		}
	}
	return false, nil
}

type fakeMessageRepo struct {
	messages   []message.Message
	deliveries []message.Delivery
}

func (r *fakeMessageRepo) Create(ctx context.Context, m *message.Message) error {
	r.messages = append(r.messages, *m)
	return nil
}

func (r *fakeMessageRepo) CreateDeliveries(ctx context.Context, deliveries []message.Delivery) error {
	r.deliveries = append(r.deliveries, deliveries...)
	return nil
}

func (r *fakeMessageRepo) GetConversationMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]message.Message, error) {
	return r.forConversation(conversationID, limit), nil
}

func (r *fakeMessageRepo) GetRecentMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]message.Message, error) {
	return r.forConversation(conversationID, limit), nil
}

func (r *fakeMessageRepo) GetLatestMessage(ctx context.Context, conversationID uuid.UUID) (message.Message, error) {
	msgs := r.forConversation(conversationID, 1)
	if len(msgs) == 0 {
		return message.Message{}, apperrors.ErrNotFound
	}
	return msgs[len(msgs)-1], nil
}

func (r *fakeMessageRepo) forConversation(conversationID uuid.UUID, limit int) []message.Message {
	var out []message.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

type fakeRecorder struct {
	events []analytics.Event
	err    error
}

func (r *fakeRecorder) Record(ctx context.Context, e analytics.Event) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *fakeRecorder) byName(name string) []analytics.Event {
	var out []analytics.Event
	for _, e := range r.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
