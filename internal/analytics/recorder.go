package analytics

import (
	"context"
	"time"
)

// Event names emitted by the messaging core.
const (
	EventConversationCreated = "communications.conversation.created"
	EventMessageSent         = "communications.message.sent"
	EventDeliverySuppressed  = "communications.delivery.suppressed"
	EventVideoSessionCreated = "communications.video_session.created"
)

// Event is a fire-and-forget analytics record. TenantID is taken from
// conversation metadata when present.
type Event struct {
	Name       string
	EntityID   string
	TenantID   string
	OccurredAt time.Time
	Metadata   map[string]interface{}
}

// Recorder is the analytics sink collaborator. Implementations are
// best-effort: callers log failures and move on.
type Recorder interface {
	Record(ctx context.Context, e Event) error
}

// NoopRecorder discards every event. Used when no sink is configured and in
// tests that don't care about emission.
type NoopRecorder struct{}

func (NoopRecorder) Record(ctx context.Context, e Event) error {
	return nil
}
