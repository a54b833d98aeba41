package httpdto

import (
	"time"

	"markethub-messaging/internal/domain/message"
)

type AttachmentRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	FileSize    int64  `json:"fileSize"`
	StorageKey  string `json:"storageKey"`
	URL         string `json:"url"`
}

type SendMessageRequest struct {
	SenderParticipantID string                 `json:"senderParticipantId"`
	Body                string                 `json:"body"`
	MessageType         string                 `json:"messageType"`
	Attachments         []AttachmentRequest    `json:"attachments"`
	Metadata            map[string]interface{} `json:"metadata"`
	RequestAIAssist     bool                   `json:"requestAiAssist"`
}

type DeliveryView struct {
	ID                string                 `json:"id"`
	ParticipantID     string                 `json:"participantId"`
	Status            string                 `json:"status"`
	SuppressionReason *string                `json:"suppressionReason,omitempty"`
	DeliveredAt       *time.Time             `json:"deliveredAt,omitempty"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
}

type AttachmentView struct {
	ID          string  `json:"id"`
	Position    int     `json:"position"`
	FileName    string  `json:"fileName"`
	ContentType string  `json:"contentType"`
	FileSize    int64   `json:"fileSize"`
	StorageKey  *string `json:"storageKey,omitempty"`
	URL         *string `json:"url,omitempty"`
}

type MessageView struct {
	ID                  string                 `json:"id"`
	ConversationID      string                 `json:"conversationId"`
	SenderParticipantID *string                `json:"senderParticipantId"`
	Type                string                 `json:"type"`
	Body                string                 `json:"body"`
	AIAssistUsed        bool                   `json:"aiAssistUsed"`
	AIConfidence        *float64               `json:"aiConfidence,omitempty"`
	Attachments         []AttachmentView       `json:"attachments,omitempty"`
	Deliveries          []DeliveryView         `json:"deliveries,omitempty"`
	Metadata            map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt           time.Time              `json:"createdAt"`
}

func FromMessage(m message.Message) MessageView {
	v := MessageView{
		ID:             m.ID.String(),
		ConversationID: m.ConversationID.String(),
		Type:           m.Type,
		Body:           m.Body,
		AIAssistUsed:   m.AIAssistUsed,
		Metadata:       m.Metadata,
		CreatedAt:      m.CreatedAt,
	}
	if m.SenderParticipantID.Valid {
		id := m.SenderParticipantID.UUID.String()
		v.SenderParticipantID = &id
	}
	if m.AIConfidence.Valid {
		v.AIConfidence = &m.AIConfidence.Float64
	}
	for _, a := range m.Attachments {
		v.Attachments = append(v.Attachments, FromAttachment(a))
	}
	for _, d := range m.Deliveries {
		v.Deliveries = append(v.Deliveries, FromDelivery(d))
	}
	return v
}

func FromMessages(messages []message.Message) []MessageView {
	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, FromMessage(m))
	}
	return views
}

func FromDelivery(d message.Delivery) DeliveryView {
	v := DeliveryView{
		ID:            d.ID.String(),
		ParticipantID: d.ParticipantID.String(),
		Status:        d.Status,
		Metadata:      d.Metadata,
	}
	if d.SuppressionReason.Valid {
		v.SuppressionReason = &d.SuppressionReason.String
	}
	if d.DeliveredAt.Valid {
		v.DeliveredAt = &d.DeliveredAt.Time
	}
	return v
}

func FromAttachment(a message.Attachment) AttachmentView {
	v := AttachmentView{
		ID:          a.ID.String(),
		Position:    a.Position,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		FileSize:    a.FileSize,
	}
	if a.StorageKey.Valid {
		v.StorageKey = &a.StorageKey.String
	}
	if a.URL.Valid {
		v.URL = &a.URL.String
	}
	return v
}
