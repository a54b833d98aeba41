package message

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Message types.
const (
	TypeUser      = "user"
	TypeAssistant = "assistant"
)

// Delivery statuses.
const (
	StatusDelivered  = "delivered"
	StatusSuppressed = "suppressed"
)

// Suppression reasons.
const (
	ReasonNotificationsDisabled = "notifications_disabled"
	ReasonQuietHours            = "quiet_hours"
)

// Message represents the conversation_messages table. Messages are immutable
// once created; only their delivery records are attached afterwards.
type Message struct {
	ID                  uuid.UUID
	ConversationID      uuid.UUID
	SenderParticipantID uuid.NullUUID // null only when assistant sender resolution failed
	Type                string
	Body                string
	AIAssistUsed        bool
	AIConfidence        sql.NullFloat64 // set only when AIAssistUsed
	Metadata            datatypes.JSONMap
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Relationships
	Attachments []Attachment `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
	Deliveries  []Delivery   `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
}

// Delivery represents the message_deliveries table. One row per non-sender
// participant per message, immutable after creation. Metadata captures the
// quiet-hours window evaluated at fan-out time, for audit.
type Delivery struct {
	ID                uuid.UUID
	MessageID         uuid.UUID
	ParticipantID     uuid.UUID
	Status            string
	SuppressionReason sql.NullString // set only when suppressed
	DeliveredAt       sql.NullTime   // set only when delivered
	Metadata          datatypes.JSONMap
	CreatedAt         time.Time
}

// Attachment represents the message_attachments table, ordered by Position.
type Attachment struct {
	ID          uuid.UUID
	MessageID   uuid.UUID
	Position    int
	FileName    string
	ContentType string
	FileSize    int64
	StorageKey  sql.NullString
	URL         sql.NullString
	CreatedAt   time.Time
}

func (Message) TableName() string {
	return "conversation_messages"
}

func (Delivery) TableName() string {
	return "message_deliveries"
}

func (Attachment) TableName() string {
	return "message_attachments"
}
