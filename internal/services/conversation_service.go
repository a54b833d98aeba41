package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"markethub-messaging/config"
	"markethub-messaging/internal/analytics"
	"markethub-messaging/internal/domain/conversation"
	"markethub-messaging/internal/domain/message"
	"markethub-messaging/internal/repository"
	apperrors "markethub-messaging/pkg/errors"
	"markethub-messaging/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	maxListLimit        = 50
	defaultListLimit    = 20
	maxHistoryLimit     = 100
	defaultHistoryLimit = 50
	minVideoExpiry      = 300
)

// ConversationService orchestrates conversation creation, participant
// management, message submission with delivery fan-out and optional
// AI-assist, preference updates, and realtime-session token issuance. It owns
// every transaction boundary; the fan-out engine and suggestion provider run
// inside transactions it opens.
type ConversationService struct {
	db       *gorm.DB
	convRepo repository.ConversationRepository
	msgRepo  repository.MessageRepository
	fanout   *DeliveryFanout
	suggest  *SuggestionProvider
	tokens   RealtimeTokenIssuer
	recorder analytics.Recorder
	cfg      *config.Config
	log      *logger.Logger
}

func NewConversationService(
	db *gorm.DB,
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	fanout *DeliveryFanout,
	suggest *SuggestionProvider,
	recorder analytics.Recorder,
	cfg *config.Config,
	log *logger.Logger,
) *ConversationService {
	if recorder == nil {
		recorder = analytics.NoopRecorder{}
	}
	return &ConversationService{
		db:       db,
		convRepo: convRepo,
		msgRepo:  msgRepo,
		fanout:   fanout,
		suggest:  suggest,
		recorder: recorder,
		cfg:      cfg,
		log:      log,
	}
}

// inTx runs fn against repositories bound to one transaction. With no db
// configured (unit tests) the injected repositories are used directly.
func (s *ConversationService) inTx(ctx context.Context, fn func(convRepo repository.ConversationRepository, msgRepo repository.MessageRepository) error) error {
	if s.db == nil {
		return fn(s.convRepo, s.msgRepo)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repository.NewConversationRepository(tx), repository.NewMessageRepository(tx))
	})
}

type ActorRef struct {
	ID   string
	Type string
}

type ParticipantInput struct {
	ParticipantType      string
	ReferenceID          string
	DisplayName          string
	Role                 string
	AIAssistEnabled      *bool
	NotificationsEnabled *bool
	VideoEnabled         *bool
	QuietHoursStart      string
	QuietHoursEnd        string
	Timezone             string
	Metadata             map[string]interface{}
}

type QuietHoursInput struct {
	Start string
	End   string
}

type AIAssistInput struct {
	DefaultEnabled *bool
}

type AttachmentInput struct {
	FileName    string
	ContentType string
	FileSize    int64
	StorageKey  string
	URL         string
}

type InitialMessageInput struct {
	SenderReferenceID string
	Body              string
	Attachments       []AttachmentInput
	Metadata          map[string]interface{}
	RequestAIAssist   bool
}

type CreateConversationInput struct {
	Subject        string
	CreatedBy      ActorRef
	Participants   []ParticipantInput
	QuietHours     *QuietHoursInput
	Timezone       string
	Metadata       map[string]interface{}
	AIAssist       *AIAssistInput
	InitialMessage *InitialMessageInput
}

type CreateConversationResult struct {
	Conversation conversation.Conversation
	Participants []conversation.Participant
	Messages     []message.Message
}

func (s *ConversationService) CreateConversation(ctx context.Context, in CreateConversationInput) (CreateConversationResult, error) {
	subject := strings.TrimSpace(in.Subject)
	if len([]rune(subject)) < 3 {
		return CreateConversationResult{}, fmt.Errorf("%w: subject must be at least 3 characters", apperrors.ErrInvalidInput)
	}
	if in.CreatedBy.ID == "" || in.CreatedBy.Type == "" {
		return CreateConversationResult{}, fmt.Errorf("%w: createdBy requires both id and type", apperrors.ErrInvalidInput)
	}
	if len(in.Participants) < 2 {
		return CreateConversationResult{}, fmt.Errorf("%w: at least 2 participants are required", apperrors.ErrInvalidInput)
	}

	assistants := 0
	for i, p := range in.Participants {
		if p.ParticipantType == "" {
			return CreateConversationResult{}, fmt.Errorf("%w: participant %d is missing participantType", apperrors.ErrInvalidInput, i)
		}
		if p.ReferenceID == "" && p.ParticipantType != conversation.TypeSupportBot {
			return CreateConversationResult{}, fmt.Errorf("%w: participant %d is missing participantReferenceId", apperrors.ErrInvalidInput, i)
		}
		if p.Role == conversation.RoleAIAssistant {
			assistants++
		}
	}
	if assistants > 1 {
		return CreateConversationResult{}, fmt.Errorf("%w: at most one participant may hold role %s", apperrors.ErrInvalidInput, conversation.RoleAIAssistant)
	}
	if len(in.Participants)-assistants < 2 {
		return CreateConversationResult{}, fmt.Errorf("%w: at least 2 non-assistant participants are required", apperrors.ErrInvalidInput)
	}

	quietStart, quietEnd := s.cfg.DefaultQuietHoursStart, s.cfg.DefaultQuietHoursEnd
	if in.QuietHours != nil {
		quietStart, quietEnd = in.QuietHours.Start, in.QuietHours.End
	}
	if quietStart != "" && !validTimeOfDay(quietStart) {
		return CreateConversationResult{}, fmt.Errorf("%w: quiet hours start %q is not HH:mm", apperrors.ErrInvalidInput, quietStart)
	}
	if quietEnd != "" && !validTimeOfDay(quietEnd) {
		return CreateConversationResult{}, fmt.Errorf("%w: quiet hours end %q is not HH:mm", apperrors.ErrInvalidInput, quietEnd)
	}

	timezone := in.Timezone
	if timezone == "" {
		timezone = s.cfg.DefaultTimezone
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return CreateConversationResult{}, fmt.Errorf("%w: unknown timezone %q", apperrors.ErrInvalidInput, timezone)
	}

	aiDefault := true
	if in.AIAssist != nil && in.AIAssist.DefaultEnabled != nil {
		aiDefault = *in.AIAssist.DefaultEnabled
	}

	now := time.Now()
	conv := conversation.Conversation{
		ID:              uuid.New(),
		Subject:         subject,
		CreatedByID:     in.CreatedBy.ID,
		CreatedByType:   in.CreatedBy.Type,
		DefaultTimezone: timezone,
		AIAssistDefault: aiDefault,
		RetentionDays:   s.cfg.RetentionDays,
		Metadata:        jsonMap(in.Metadata),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if quietStart != "" && quietEnd != "" {
		conv.QuietHoursStart = sql.NullString{String: quietStart, Valid: true}
		conv.QuietHoursEnd = sql.NullString{String: quietEnd, Valid: true}
	}

	participants := make([]conversation.Participant, 0, len(in.Participants)+1)
	for _, p := range in.Participants {
		participants = append(participants, buildParticipant(conv.ID, p, now))
	}
	if aiDefault && assistants == 0 {
		participants = append(participants, synthesizeAssistant(conv.ID, now))
	}

	var result CreateConversationResult
	err := s.inTx(ctx, func(convRepo repository.ConversationRepository, msgRepo repository.MessageRepository) error {
		if err := convRepo.Create(ctx, &conv); err != nil {
			return err
		}
		for i := range participants {
			if err := convRepo.AddParticipant(ctx, &participants[i]); err != nil {
				return err
			}
		}

		s.record(ctx, analytics.Event{
			Name:       analytics.EventConversationCreated,
			EntityID:   conv.ID.String(),
			TenantID:   tenantID(conv),
			OccurredAt: now,
			Metadata: map[string]interface{}{
				"subject":      conv.Subject,
				"participants": len(participants),
			},
		})

		if in.InitialMessage != nil {
			sender := findParticipantByRef(participants, in.InitialMessage.SenderReferenceID)
			if sender == nil {
				return fmt.Errorf("%w: initial message sender is not a conversation participant", apperrors.ErrInvalidInput)
			}
			messages, err := s.sendPipeline(ctx, convRepo, msgRepo, conv, participants, *sender, sendArgs{
				Body:            in.InitialMessage.Body,
				Attachments:     in.InitialMessage.Attachments,
				Metadata:        in.InitialMessage.Metadata,
				RequestAIAssist: in.InitialMessage.RequestAIAssist,
			})
			if err != nil {
				return err
			}
			result.Messages = messages
		}
		return nil
	})
	if err != nil {
		return CreateConversationResult{}, err
	}

	result.Conversation = conv
	result.Participants = participants
	return result, nil
}

type ConversationListItem struct {
	Conversation  conversation.Conversation
	LatestMessage *message.Message
}

// ListConversations returns the conversations a party belongs to, identified
// by external reference id, most recently updated first. Each item carries
// only its latest message for list-view efficiency.
func (s *ConversationService) ListConversations(ctx context.Context, participantRef string, limit int) ([]ConversationListItem, error) {
	if participantRef == "" {
		return nil, fmt.Errorf("%w: participant reference is required", apperrors.ErrInvalidInput)
	}
	limit = clampLimit(limit, defaultListLimit, maxListLimit)

	exists, err := s.convRepo.ParticipantRefExists(ctx, participantRef)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: participant %s", apperrors.ErrNotFound, participantRef)
	}

	conversations, err := s.convRepo.ParticipantConversations(ctx, participantRef, limit)
	if err != nil {
		return nil, err
	}

	items := make([]ConversationListItem, 0, len(conversations))
	for _, conv := range conversations {
		item := ConversationListItem{Conversation: conv}
		latest, err := s.msgRepo.GetLatestMessage(ctx, conv.ID)
		if err == nil {
			item.LatestMessage = &latest
		} else if !isNotFound(err) {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

type ConversationDetail struct {
	Conversation conversation.Conversation
	Participants []conversation.Participant
	Messages     []message.Message
}

// GetConversation returns the conversation, all participants, and the most
// recent limit messages in chronological order with deliveries attached.
func (s *ConversationService) GetConversation(ctx context.Context, conversationID uuid.UUID, limit int) (ConversationDetail, error) {
	limit = clampLimit(limit, defaultHistoryLimit, maxHistoryLimit)

	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return ConversationDetail{}, err
	}
	messages, err := s.msgRepo.GetConversationMessages(ctx, conversationID, limit)
	if err != nil {
		return ConversationDetail{}, err
	}
	return ConversationDetail{
		Conversation: conv,
		Participants: conv.Participants,
		Messages:     messages,
	}, nil
}

type SendMessageInput struct {
	ConversationID      uuid.UUID
	SenderParticipantID uuid.UUID
	Body                string
	MessageType         string
	Attachments         []AttachmentInput
	Metadata            map[string]interface{}
	RequestAIAssist     bool
}

// SendMessage validates the sender, creates the message, fans out deliveries
// and optionally an assistant reply, all in one transaction. Assistant-typed
// messages are only ever platform-generated; a client asking for one is
// rejected before anything is read or written.
func (s *ConversationService) SendMessage(ctx context.Context, in SendMessageInput) ([]message.Message, error) {
	msgType := in.MessageType
	if msgType == "" {
		msgType = message.TypeUser
	}
	if msgType == message.TypeAssistant {
		return nil, fmt.Errorf("%w: assistant messages are platform-generated", apperrors.ErrForbidden)
	}
	if msgType != message.TypeUser {
		return nil, fmt.Errorf("%w: unknown message type %q", apperrors.ErrInvalidInput, msgType)
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, fmt.Errorf("%w: message body is required", apperrors.ErrInvalidInput)
	}

	var created []message.Message
	err := s.inTx(ctx, func(convRepo repository.ConversationRepository, msgRepo repository.MessageRepository) error {
		conv, err := convRepo.GetByID(ctx, in.ConversationID)
		if err != nil {
			return err
		}
		sender := findParticipantByID(conv.Participants, in.SenderParticipantID)
		if sender == nil {
			return fmt.Errorf("%w: sender is not a conversation participant", apperrors.ErrForbidden)
		}

		created, err = s.sendPipeline(ctx, convRepo, msgRepo, conv, conv.Participants, *sender, sendArgs{
			Body:            in.Body,
			Attachments:     in.Attachments,
			Metadata:        in.Metadata,
			RequestAIAssist: in.RequestAIAssist,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

type sendArgs struct {
	Body            string
	Attachments     []AttachmentInput
	Metadata        map[string]interface{}
	RequestAIAssist bool
}

// sendPipeline is the shared message path used by SendMessage and the
// initial message of CreateConversation: create the message, fan out its
// deliveries, touch the conversation, then optionally generate and fan out an
// assistant reply. Runs inside the caller's transaction.
func (s *ConversationService) sendPipeline(
	ctx context.Context,
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	conv conversation.Conversation,
	participants []conversation.Participant,
	sender conversation.Participant,
	args sendArgs,
) ([]message.Message, error) {
	body := strings.TrimSpace(args.Body)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is required", apperrors.ErrInvalidInput)
	}

	now := time.Now()
	msg := message.Message{
		ID:                  uuid.New(),
		ConversationID:      conv.ID,
		SenderParticipantID: uuid.NullUUID{UUID: sender.ID, Valid: true},
		Type:                message.TypeUser,
		Body:                body,
		Metadata:            jsonMap(args.Metadata),
		CreatedAt:           now,
		UpdatedAt:           now,
		Attachments:         buildAttachments(args.Attachments, now),
	}
	if err := msgRepo.Create(ctx, &msg); err != nil {
		return nil, err
	}

	deliveries, err := s.fanout.Fanout(ctx, msgRepo, conv, &msg, participants, msg.SenderParticipantID, now)
	if err != nil {
		return nil, err
	}
	msg.Deliveries = deliveries

	if err := convRepo.Touch(ctx, conv.ID, now); err != nil {
		return nil, err
	}

	s.record(ctx, analytics.Event{
		Name:       analytics.EventMessageSent,
		EntityID:   msg.ID.String(),
		TenantID:   tenantID(conv),
		OccurredAt: now,
		Metadata: map[string]interface{}{
			"conversation_id": conv.ID.String(),
			"sender_id":       sender.ID.String(),
			"deliveries":      len(deliveries),
		},
	})

	created := []message.Message{msg}

	if args.RequestAIAssist && s.suggest != nil {
		history, err := msgRepo.GetRecentMessages(ctx, conv.ID, suggestionContextWindow)
		if err != nil {
			return nil, err
		}
		if suggestion := s.suggest.Generate(ctx, conv, participants, sender, msg, history); suggestion != nil {
			reply, err := s.createAssistantReply(ctx, convRepo, msgRepo, conv, participants, suggestion)
			if err != nil {
				return nil, err
			}
			created = append(created, reply)
		}
	}

	return created, nil
}

func (s *ConversationService) createAssistantReply(
	ctx context.Context,
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	conv conversation.Conversation,
	participants []conversation.Participant,
	suggestion *Suggestion,
) (message.Message, error) {
	assistant := findAssistant(participants)

	now := time.Now()
	reply := message.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		Type:           message.TypeAssistant,
		Body:           suggestion.Body,
		AIAssistUsed:   true,
		AIConfidence:   sql.NullFloat64{Float64: suggestion.Confidence, Valid: true},
		Metadata:       jsonMap(suggestion.Metadata),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if assistant != nil {
		reply.SenderParticipantID = uuid.NullUUID{UUID: assistant.ID, Valid: true}
	}
	if err := msgRepo.Create(ctx, &reply); err != nil {
		return message.Message{}, err
	}

	deliveries, err := s.fanout.Fanout(ctx, msgRepo, conv, &reply, participants, reply.SenderParticipantID, now)
	if err != nil {
		return message.Message{}, err
	}
	reply.Deliveries = deliveries

	if err := convRepo.Touch(ctx, conv.ID, now); err != nil {
		return message.Message{}, err
	}
	return reply, nil
}

type UpdatePreferencesInput struct {
	DisplayName          *string
	AIAssistEnabled      *bool
	NotificationsEnabled *bool
	VideoEnabled         *bool
	QuietHoursStart      *string
	QuietHoursEnd        *string
	Timezone             *string
	Metadata             map[string]interface{}
}

// UpdateParticipantPreferences applies a partial update. Metadata is merged
// into the existing bag, not replaced. An empty string clears a quiet-hours
// bound or the timezone override.
func (s *ConversationService) UpdateParticipantPreferences(ctx context.Context, conversationID, participantID uuid.UUID, in UpdatePreferencesInput) (conversation.Participant, error) {
	if in.QuietHoursStart != nil && *in.QuietHoursStart != "" && !validTimeOfDay(*in.QuietHoursStart) {
		return conversation.Participant{}, fmt.Errorf("%w: quiet hours start %q is not HH:mm", apperrors.ErrInvalidInput, *in.QuietHoursStart)
	}
	if in.QuietHoursEnd != nil && *in.QuietHoursEnd != "" && !validTimeOfDay(*in.QuietHoursEnd) {
		return conversation.Participant{}, fmt.Errorf("%w: quiet hours end %q is not HH:mm", apperrors.ErrInvalidInput, *in.QuietHoursEnd)
	}
	if in.Timezone != nil && *in.Timezone != "" {
		if _, err := time.LoadLocation(*in.Timezone); err != nil {
			return conversation.Participant{}, fmt.Errorf("%w: unknown timezone %q", apperrors.ErrInvalidInput, *in.Timezone)
		}
	}

	var updated conversation.Participant
	err := s.inTx(ctx, func(convRepo repository.ConversationRepository, _ repository.MessageRepository) error {
		p, err := convRepo.GetParticipant(ctx, conversationID, participantID)
		if err != nil {
			return err
		}

		if in.DisplayName != nil {
			p.DisplayName = strings.TrimSpace(*in.DisplayName)
		}
		if in.AIAssistEnabled != nil {
			p.AIAssistEnabled = *in.AIAssistEnabled
		}
		if in.NotificationsEnabled != nil {
			p.NotificationsEnabled = *in.NotificationsEnabled
		}
		if in.VideoEnabled != nil {
			p.VideoEnabled = *in.VideoEnabled
		}
		if in.QuietHoursStart != nil {
			p.QuietHoursStart = nullString(*in.QuietHoursStart)
		}
		if in.QuietHoursEnd != nil {
			p.QuietHoursEnd = nullString(*in.QuietHoursEnd)
		}
		if in.Timezone != nil {
			p.Timezone = nullString(*in.Timezone)
		}
		if len(in.Metadata) > 0 {
			if p.Metadata == nil {
				p.Metadata = datatypes.JSONMap{}
			}
			for k, v := range in.Metadata {
				p.Metadata[k] = v
			}
		}
		p.UpdatedAt = time.Now()

		if err := convRepo.UpdateParticipant(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return conversation.Participant{}, err
	}
	return updated, nil
}

type CreateVideoSessionInput struct {
	ConversationID uuid.UUID
	ParticipantID  uuid.UUID
	ChannelName    string
	ExpirySeconds  int
}

type VideoSession struct {
	Token     string
	Channel   string
	UID       string
	ExpiresAt time.Time
}

// CreateVideoSession mints a realtime channel token for a participant,
// assigning a session uid lazily on first use. Requires realtime credentials
// and the participant's video toggle.
func (s *ConversationService) CreateVideoSession(ctx context.Context, in CreateVideoSessionInput) (VideoSession, error) {
	if s.cfg.RealtimeAppID == "" || s.cfg.RealtimeAppSecret == "" {
		return VideoSession{}, fmt.Errorf("%w: realtime credentials not configured", apperrors.ErrServiceUnavailable)
	}

	expiry := in.ExpirySeconds
	if expiry <= 0 {
		expiry = s.cfg.RealtimeTokenTTLSeconds
	}
	if expiry < minVideoExpiry {
		expiry = minVideoExpiry
	}

	channel := in.ChannelName
	if channel == "" {
		channel = channelSlug(in.ConversationID)
	}

	var session VideoSession
	err := s.inTx(ctx, func(convRepo repository.ConversationRepository, _ repository.MessageRepository) error {
		conv, err := convRepo.GetByID(ctx, in.ConversationID)
		if err != nil {
			return err
		}
		p, err := convRepo.GetParticipant(ctx, in.ConversationID, in.ParticipantID)
		if err != nil {
			return err
		}
		if !p.VideoEnabled {
			return fmt.Errorf("%w: video is not enabled for this participant", apperrors.ErrForbidden)
		}

		uid := p.RealtimeUID.String
		if !p.RealtimeUID.Valid || uid == "" {
			uid = uuid.NewString()
			p.RealtimeUID = sql.NullString{String: uid, Valid: true}
		}

		now := time.Now()
		expiresAt := now.Add(time.Duration(expiry) * time.Second)
		token, err := s.tokens.Issue(s.cfg.RealtimeAppID, s.cfg.RealtimeAppSecret, channel, uid, RealtimeRolePublisher, expiresAt.Unix())
		if err != nil {
			return err
		}

		if p.Metadata == nil {
			p.Metadata = datatypes.JSONMap{}
		}
		p.Metadata["last_video_session"] = map[string]interface{}{
			"channel":    channel,
			"expires_at": expiresAt.UTC().Format(time.RFC3339),
		}
		p.UpdatedAt = now
		if err := convRepo.UpdateParticipant(ctx, p); err != nil {
			return err
		}

		s.record(ctx, analytics.Event{
			Name:       analytics.EventVideoSessionCreated,
			EntityID:   conv.ID.String(),
			TenantID:   tenantID(conv),
			OccurredAt: now,
			Metadata: map[string]interface{}{
				"participant_id": p.ID.String(),
				"channel":        channel,
			},
		})

		session = VideoSession{Token: token, Channel: channel, UID: uid, ExpiresAt: expiresAt}
		return nil
	})
	if err != nil {
		return VideoSession{}, err
	}
	return session, nil
}

// record emits an analytics event best-effort; failures are logged only.
func (s *ConversationService) record(ctx context.Context, e analytics.Event) {
	if err := s.recorder.Record(ctx, e); err != nil && s.log != nil {
		s.log.Warnf("analytics emit %s failed: %s", e.Name, err)
	}
}

func buildParticipant(conversationID uuid.UUID, in ParticipantInput, now time.Time) conversation.Participant {
	role := in.Role
	if role == "" {
		if in.ParticipantType == conversation.TypeUser {
			role = conversation.RoleCustomer
		} else {
			role = conversation.RoleSupport
		}
	}

	p := conversation.Participant{
		ID:                   uuid.New(),
		ConversationID:       conversationID,
		ParticipantType:      in.ParticipantType,
		DisplayName:          in.DisplayName,
		Role:                 role,
		AIAssistEnabled:      boolOr(in.AIAssistEnabled, true),
		NotificationsEnabled: boolOr(in.NotificationsEnabled, true),
		VideoEnabled:         boolOr(in.VideoEnabled, true),
		Metadata:             jsonMap(in.Metadata),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if in.ReferenceID != "" {
		p.ReferenceID = sql.NullString{String: in.ReferenceID, Valid: true}
	}
	if in.QuietHoursStart != "" {
		p.QuietHoursStart = sql.NullString{String: in.QuietHoursStart, Valid: true}
	}
	if in.QuietHoursEnd != "" {
		p.QuietHoursEnd = sql.NullString{String: in.QuietHoursEnd, Valid: true}
	}
	if in.Timezone != "" {
		p.Timezone = sql.NullString{String: in.Timezone, Valid: true}
	}
	return p
}

// synthesizeAssistant builds the platform assistant participant added when
// AI assist is on and the caller supplied none.
func synthesizeAssistant(conversationID uuid.UUID, now time.Time) conversation.Participant {
	return conversation.Participant{
		ID:                   uuid.New(),
		ConversationID:       conversationID,
		ParticipantType:      conversation.TypeSupportBot,
		DisplayName:          "AI Assistant",
		Role:                 conversation.RoleAIAssistant,
		AIAssistEnabled:      true,
		NotificationsEnabled: false,
		VideoEnabled:         false,
		Metadata:             datatypes.JSONMap{"synthesized": true},
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

func buildAttachments(inputs []AttachmentInput, now time.Time) []message.Attachment {
	if len(inputs) == 0 {
		return nil
	}
	attachments := make([]message.Attachment, 0, len(inputs))
	for i, a := range inputs {
		att := message.Attachment{
			ID:          uuid.New(),
			Position:    i,
			FileName:    a.FileName,
			ContentType: a.ContentType,
			FileSize:    a.FileSize,
			CreatedAt:   now,
		}
		if a.StorageKey != "" {
			att.StorageKey = sql.NullString{String: a.StorageKey, Valid: true}
		}
		if a.URL != "" {
			att.URL = sql.NullString{String: a.URL, Valid: true}
		}
		attachments = append(attachments, att)
	}
	return attachments
}

// channelSlug derives the default realtime channel name from a conversation
// id, deterministically.
func channelSlug(conversationID uuid.UUID) string {
	return "conv-" + strings.ReplaceAll(conversationID.String(), "-", "")
}

func findParticipantByID(participants []conversation.Participant, id uuid.UUID) *conversation.Participant {
	for i := range participants {
		if participants[i].ID == id {
			return &participants[i]
		}
	}
	return nil
}

func findParticipantByRef(participants []conversation.Participant, referenceID string) *conversation.Participant {
	if referenceID == "" {
		return nil
	}
	for i := range participants {
		if participants[i].ReferenceID.Valid && participants[i].ReferenceID.String == referenceID {
			return &participants[i]
		}
	}
	return nil
}

func clampLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}

func boolOr(v *bool, fallback bool) bool {
	if v != nil {
		return *v
	}
	return fallback
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func jsonMap(m map[string]interface{}) datatypes.JSONMap {
	if m == nil {
		return datatypes.JSONMap{}
	}
	return datatypes.JSONMap(m)
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
