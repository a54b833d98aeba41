package conversation

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Creator types.
const (
	CreatorUser    = "user"
	CreatorCompany = "company"
	CreatorAdmin   = "admin"
)

// Participant types.
const (
	TypeUser       = "user"
	TypeCompany    = "company"
	TypeAdmin      = "admin"
	TypeSupportBot = "support_bot"
)

// Participant roles.
const (
	RoleCustomer    = "customer"
	RoleSupport     = "support"
	RoleAIAssistant = "ai_assistant"
)

// Conversation represents the conversations table. Conversations are never
// hard-deleted; RetentionDays is advisory metadata.
type Conversation struct {
	ID              uuid.UUID
	Subject         string
	CreatedByID     string
	CreatedByType   string
	DefaultTimezone string
	QuietHoursStart sql.NullString // HH:mm, 24h clock
	QuietHoursEnd   sql.NullString
	AIAssistDefault bool
	RetentionDays   int
	Metadata        datatypes.JSONMap
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Relationships
	Participants []Participant `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
}

// Participant represents the conversation_participants table. One row per
// party per conversation; the assistant participant has no external reference.
type Participant struct {
	ID                   uuid.UUID
	ConversationID       uuid.UUID
	ParticipantType      string
	ReferenceID          sql.NullString
	DisplayName          string
	Role                 string
	AIAssistEnabled      bool
	NotificationsEnabled bool
	VideoEnabled         bool
	QuietHoursStart      sql.NullString
	QuietHoursEnd        sql.NullString
	Timezone             sql.NullString
	LastReadAt           sql.NullTime
	RealtimeUID          sql.NullString
	Metadata             datatypes.JSONMap
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsAssistant reports whether the participant is the conversation's AI assistant.
func (p Participant) IsAssistant() bool {
	return p.Role == RoleAIAssistant
}

func (Conversation) TableName() string {
	return "conversations"
}

func (Participant) TableName() string {
	return "conversation_participants"
}
