package httpdto

import (
	"time"

	"markethub-messaging/internal/domain/conversation"
	"markethub-messaging/internal/services"
)

type ActorRefRequest struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type ParticipantRequest struct {
	ParticipantType      string                 `json:"participantType"`
	ReferenceID          string                 `json:"participantReferenceId"`
	DisplayName          string                 `json:"displayName"`
	Role                 string                 `json:"role"`
	AIAssistEnabled      *bool                  `json:"aiAssistEnabled"`
	NotificationsEnabled *bool                  `json:"notificationsEnabled"`
	VideoEnabled         *bool                  `json:"videoEnabled"`
	QuietHoursStart      string                 `json:"quietHoursStart"`
	QuietHoursEnd        string                 `json:"quietHoursEnd"`
	Timezone             string                 `json:"timezone"`
	Metadata             map[string]interface{} `json:"metadata"`
}

type QuietHoursRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AIAssistRequest struct {
	DefaultEnabled *bool `json:"defaultEnabled"`
}

type InitialMessageRequest struct {
	SenderReferenceID string                 `json:"senderReferenceId"`
	Body              string                 `json:"body"`
	Attachments       []AttachmentRequest    `json:"attachments"`
	Metadata          map[string]interface{} `json:"metadata"`
	RequestAIAssist   bool                   `json:"requestAiAssist"`
}

type CreateConversationRequest struct {
	Subject        string                 `json:"subject"`
	CreatedBy      ActorRefRequest        `json:"createdBy"`
	Participants   []ParticipantRequest   `json:"participants"`
	QuietHours     *QuietHoursRequest     `json:"quietHours"`
	Timezone       string                 `json:"timezone"`
	Metadata       map[string]interface{} `json:"metadata"`
	AIAssist       *AIAssistRequest       `json:"aiAssist"`
	InitialMessage *InitialMessageRequest `json:"initialMessage"`
}

type UpdatePreferencesRequest struct {
	DisplayName          *string                `json:"displayName"`
	AIAssistEnabled      *bool                  `json:"aiAssistEnabled"`
	NotificationsEnabled *bool                  `json:"notificationsEnabled"`
	VideoEnabled         *bool                  `json:"videoEnabled"`
	QuietHoursStart      *string                `json:"quietHoursStart"`
	QuietHoursEnd        *string                `json:"quietHoursEnd"`
	Timezone             *string                `json:"timezone"`
	Metadata             map[string]interface{} `json:"metadata"`
}

type CreateVideoSessionRequest struct {
	ChannelName   string `json:"channelName"`
	ExpirySeconds int    `json:"expirySeconds"`
}

type PresignAttachmentRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	FileSize    int64  `json:"fileSize"`
}

type ParticipantView struct {
	ID                   string                 `json:"id"`
	ParticipantType      string                 `json:"participantType"`
	ReferenceID          *string                `json:"participantReferenceId"`
	DisplayName          string                 `json:"displayName"`
	Role                 string                 `json:"role"`
	AIAssistEnabled      bool                   `json:"aiAssistEnabled"`
	NotificationsEnabled bool                   `json:"notificationsEnabled"`
	VideoEnabled         bool                   `json:"videoEnabled"`
	QuietHoursStart      *string                `json:"quietHoursStart,omitempty"`
	QuietHoursEnd        *string                `json:"quietHoursEnd,omitempty"`
	Timezone             *string                `json:"timezone,omitempty"`
	LastReadAt           *time.Time             `json:"lastReadAt,omitempty"`
	Metadata             map[string]interface{} `json:"metadata,omitempty"`
}

type ConversationView struct {
	ID              string                 `json:"id"`
	Subject         string                 `json:"subject"`
	CreatedByID     string                 `json:"createdById"`
	CreatedByType   string                 `json:"createdByType"`
	DefaultTimezone string                 `json:"defaultTimezone"`
	QuietHoursStart *string                `json:"quietHoursStart,omitempty"`
	QuietHoursEnd   *string                `json:"quietHoursEnd,omitempty"`
	AIAssistDefault bool                   `json:"aiAssistDefault"`
	RetentionDays   int                    `json:"retentionDays"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
	Participants    []ParticipantView      `json:"participants,omitempty"`
}

type ConversationListItemView struct {
	Conversation  ConversationView `json:"conversation"`
	LatestMessage *MessageView     `json:"latestMessage,omitempty"`
}

type ConversationDetailView struct {
	Conversation ConversationView  `json:"conversation"`
	Participants []ParticipantView `json:"participants"`
	Messages     []MessageView     `json:"messages"`
}

type VideoSessionView struct {
	Token     string    `json:"token"`
	Channel   string    `json:"channel"`
	UID       string    `json:"uid"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type PresignAttachmentView struct {
	StorageKey string            `json:"storageKey"`
	UploadURL  string            `json:"uploadUrl"`
	Headers    map[string]string `json:"headers"`
}

func FromParticipant(p conversation.Participant) ParticipantView {
	v := ParticipantView{
		ID:                   p.ID.String(),
		ParticipantType:      p.ParticipantType,
		DisplayName:          p.DisplayName,
		Role:                 p.Role,
		AIAssistEnabled:      p.AIAssistEnabled,
		NotificationsEnabled: p.NotificationsEnabled,
		VideoEnabled:         p.VideoEnabled,
		Metadata:             p.Metadata,
	}
	if p.ReferenceID.Valid {
		v.ReferenceID = &p.ReferenceID.String
	}
	if p.QuietHoursStart.Valid {
		v.QuietHoursStart = &p.QuietHoursStart.String
	}
	if p.QuietHoursEnd.Valid {
		v.QuietHoursEnd = &p.QuietHoursEnd.String
	}
	if p.Timezone.Valid {
		v.Timezone = &p.Timezone.String
	}
	if p.LastReadAt.Valid {
		v.LastReadAt = &p.LastReadAt.Time
	}
	return v
}

func FromConversation(c conversation.Conversation) ConversationView {
	v := ConversationView{
		ID:              c.ID.String(),
		Subject:         c.Subject,
		CreatedByID:     c.CreatedByID,
		CreatedByType:   c.CreatedByType,
		DefaultTimezone: c.DefaultTimezone,
		AIAssistDefault: c.AIAssistDefault,
		RetentionDays:   c.RetentionDays,
		Metadata:        c.Metadata,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if c.QuietHoursStart.Valid {
		v.QuietHoursStart = &c.QuietHoursStart.String
	}
	if c.QuietHoursEnd.Valid {
		v.QuietHoursEnd = &c.QuietHoursEnd.String
	}
	for _, p := range c.Participants {
		v.Participants = append(v.Participants, FromParticipant(p))
	}
	return v
}

func FromListItems(items []services.ConversationListItem) []ConversationListItemView {
	views := make([]ConversationListItemView, 0, len(items))
	for _, item := range items {
		v := ConversationListItemView{Conversation: FromConversation(item.Conversation)}
		if item.LatestMessage != nil {
			mv := FromMessage(*item.LatestMessage)
			v.LatestMessage = &mv
		}
		views = append(views, v)
	}
	return views
}

func FromDetail(d services.ConversationDetail) ConversationDetailView {
	view := ConversationDetailView{
		Conversation: FromConversation(d.Conversation),
		Participants: make([]ParticipantView, 0, len(d.Participants)),
		Messages:     make([]MessageView, 0, len(d.Messages)),
	}
	for _, p := range d.Participants {
		view.Participants = append(view.Participants, FromParticipant(p))
	}
	for _, m := range d.Messages {
		view.Messages = append(view.Messages, FromMessage(m))
	}
	return view
}

func FromVideoSession(s services.VideoSession) VideoSessionView {
	return VideoSessionView{
		Token:     s.Token,
		Channel:   s.Channel,
		UID:       s.UID,
		ExpiresAt: s.ExpiresAt,
	}
}
