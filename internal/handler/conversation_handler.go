package handler

import (
	"net/http"
	"strconv"

	"markethub-messaging/internal/services"
	"markethub-messaging/internal/transport/httpdto"
	apperrors "markethub-messaging/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ConversationHandler struct {
	service     *services.ConversationService
	attachments *services.AttachmentService
}

func NewConversationHandler(service *services.ConversationService, attachments *services.AttachmentService) *ConversationHandler {
	return &ConversationHandler{service: service, attachments: attachments}
}

func (h *ConversationHandler) Create(c *gin.Context) {
	var req httpdto.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "VALIDATION_ERROR"))
		return
	}

	in := services.CreateConversationInput{
		Subject:   req.Subject,
		CreatedBy: services.ActorRef{ID: req.CreatedBy.ID, Type: req.CreatedBy.Type},
		Timezone:  req.Timezone,
		Metadata:  req.Metadata,
	}
	for _, p := range req.Participants {
		in.Participants = append(in.Participants, services.ParticipantInput{
			ParticipantType:      p.ParticipantType,
			ReferenceID:          p.ReferenceID,
			DisplayName:          p.DisplayName,
			Role:                 p.Role,
			AIAssistEnabled:      p.AIAssistEnabled,
			NotificationsEnabled: p.NotificationsEnabled,
			VideoEnabled:         p.VideoEnabled,
			QuietHoursStart:      p.QuietHoursStart,
			QuietHoursEnd:        p.QuietHoursEnd,
			Timezone:             p.Timezone,
			Metadata:             p.Metadata,
		})
	}
	if req.QuietHours != nil {
		in.QuietHours = &services.QuietHoursInput{Start: req.QuietHours.Start, End: req.QuietHours.End}
	}
	if req.AIAssist != nil {
		in.AIAssist = &services.AIAssistInput{DefaultEnabled: req.AIAssist.DefaultEnabled}
	}
	if req.InitialMessage != nil {
		in.InitialMessage = &services.InitialMessageInput{
			SenderReferenceID: req.InitialMessage.SenderReferenceID,
			Body:              req.InitialMessage.Body,
			Attachments:       attachmentInputs(req.InitialMessage.Attachments),
			Metadata:          req.InitialMessage.Metadata,
			RequestAIAssist:   req.InitialMessage.RequestAIAssist,
		}
	}

	result, err := h.service.CreateConversation(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	conv := result.Conversation
	conv.Participants = result.Participants
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(gin.H{
		"conversation": httpdto.FromConversation(conv),
		"messages":     httpdto.FromMessages(result.Messages),
	}))
}

func (h *ConversationHandler) List(c *gin.Context) {
	participantRef := c.Query("participant_ref")
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := h.service.ListConversations(c.Request.Context(), participantRef, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromListItems(items)))
}

func (h *ConversationHandler) GetByID(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid conversation id", "VALIDATION_ERROR"))
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	detail, err := h.service.GetConversation(c.Request.Context(), conversationID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromDetail(detail)))
}

func (h *ConversationHandler) SendMessage(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid conversation id", "VALIDATION_ERROR"))
		return
	}
	var req httpdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "VALIDATION_ERROR"))
		return
	}
	senderID, err := uuid.Parse(req.SenderParticipantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid sender participant id", "VALIDATION_ERROR"))
		return
	}

	messages, err := h.service.SendMessage(c.Request.Context(), services.SendMessageInput{
		ConversationID:      conversationID,
		SenderParticipantID: senderID,
		Body:                req.Body,
		MessageType:         req.MessageType,
		Attachments:         attachmentInputs(req.Attachments),
		Metadata:            req.Metadata,
		RequestAIAssist:     req.RequestAIAssist,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromMessages(messages)))
}

func (h *ConversationHandler) UpdatePreferences(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid conversation id", "VALIDATION_ERROR"))
		return
	}
	participantID, err := uuid.Parse(c.Param("participantId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid participant id", "VALIDATION_ERROR"))
		return
	}
	var req httpdto.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "VALIDATION_ERROR"))
		return
	}

	updated, err := h.service.UpdateParticipantPreferences(c.Request.Context(), conversationID, participantID, services.UpdatePreferencesInput{
		DisplayName:          req.DisplayName,
		AIAssistEnabled:      req.AIAssistEnabled,
		NotificationsEnabled: req.NotificationsEnabled,
		VideoEnabled:         req.VideoEnabled,
		QuietHoursStart:      req.QuietHoursStart,
		QuietHoursEnd:        req.QuietHoursEnd,
		Timezone:             req.Timezone,
		Metadata:             req.Metadata,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromParticipant(updated)))
}

func (h *ConversationHandler) CreateVideoSession(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid conversation id", "VALIDATION_ERROR"))
		return
	}
	participantID, err := uuid.Parse(c.Param("participantId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid participant id", "VALIDATION_ERROR"))
		return
	}
	var req httpdto.CreateVideoSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "VALIDATION_ERROR"))
		return
	}

	session, err := h.service.CreateVideoSession(c.Request.Context(), services.CreateVideoSessionInput{
		ConversationID: conversationID,
		ParticipantID:  participantID,
		ChannelName:    req.ChannelName,
		ExpirySeconds:  req.ExpirySeconds,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromVideoSession(session)))
}

func (h *ConversationHandler) PresignAttachment(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid conversation id", "VALIDATION_ERROR"))
		return
	}
	var req httpdto.PresignAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "VALIDATION_ERROR"))
		return
	}

	result, err := h.attachments.PresignUpload(c.Request.Context(), conversationID, req.FileName, req.ContentType, req.FileSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.PresignAttachmentView{
		StorageKey: result.StorageKey,
		UploadURL:  result.UploadURL,
		Headers:    result.Headers,
	}))
}

func attachmentInputs(reqs []httpdto.AttachmentRequest) []services.AttachmentInput {
	if len(reqs) == 0 {
		return nil
	}
	inputs := make([]services.AttachmentInput, 0, len(reqs))
	for _, a := range reqs {
		inputs = append(inputs, services.AttachmentInput{
			FileName:    a.FileName,
			ContentType: a.ContentType,
			FileSize:    a.FileSize,
			StorageKey:  a.StorageKey,
			URL:         a.URL,
		})
	}
	return inputs
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), apperrors.Code(err)))
}
