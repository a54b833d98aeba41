package services

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"markethub-messaging/config"
	"markethub-messaging/internal/domain/conversation"
	"markethub-messaging/internal/domain/message"
	"markethub-messaging/pkg/logger"

	"github.com/go-resty/resty/v2"
)

const (
	suggestionContextWindow = 6
	heuristicConfidence     = 0.72
	minConfidence           = 0.4
	maxConfidence           = 0.99
)

// Heuristic topics, checked in order. Pricing wins ties with scheduling, and
// so on down the list.
const (
	TopicPricing        = "pricing"
	TopicScheduling     = "scheduling"
	TopicBilling        = "billing"
	TopicVideoSession   = "video_session"
	TopicGeneralSupport = "general_support"
)

var (
	pricingPattern    = regexp.MustCompile(`(?i)\b(price|pricing|quote|estimate|cost|rate|how much)\b`)
	schedulingPattern = regexp.MustCompile(`(?i)\b(schedule|scheduling|appointment|availability|available|reschedule|book|booking|time slot)\b`)
	billingPattern    = regexp.MustCompile(`(?i)\b(invoice|billing|bill|payment|charge|charged|refund|receipt)\b`)
	videoPattern      = regexp.MustCompile(`(?i)\b(video|call|meet|meeting|zoom|face to face)\b`)
)

// Suggestion is a candidate assistant reply.
type Suggestion struct {
	Body       string
	Confidence float64
	Metadata   map[string]interface{}
}

// SuggestionProvider produces assistant replies with a two-stage pipeline:
// an external model endpoint when configured, and a deterministic keyword
// classifier when the endpoint is absent or fails. The external path never
// propagates its errors; AI assist degrades, it does not fail.
type SuggestionProvider struct {
	cfg    *config.Config
	client *resty.Client
	log    *logger.Logger
}

func NewSuggestionProvider(cfg *config.Config, log *logger.Logger) *SuggestionProvider {
	client := resty.New().
		SetTimeout(time.Duration(cfg.AIAssistTimeoutSeconds) * time.Second)
	return &SuggestionProvider{cfg: cfg, client: client, log: log}
}

// Generate returns nil unless an enabled assistant participant exists, the
// conversation's AI-assist default is on, and the triggering body is
// non-empty after trimming. history is the conversation's recent messages in
// chronological order; only the last suggestionContextWindow entries are used.
func (s *SuggestionProvider) Generate(
	ctx context.Context,
	conv conversation.Conversation,
	participants []conversation.Participant,
	trigger conversation.Participant,
	latest message.Message,
	history []message.Message,
) *Suggestion {
	assistant := findAssistant(participants)
	if assistant == nil || !assistant.AIAssistEnabled || !conv.AIAssistDefault {
		return nil
	}
	body := strings.TrimSpace(latest.Body)
	if body == "" {
		return nil
	}

	window := contextWindow(history, participants)

	if suggestion := s.tryExternal(ctx, window); suggestion != nil {
		return suggestion
	}
	return s.heuristic(body, trigger, conv, len(window))
}

type contextMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Author  string `json:"author,omitempty"`
}

// contextWindow normalizes the most recent messages to model roles, oldest
// first.
func contextWindow(history []message.Message, participants []conversation.Participant) []contextMessage {
	if len(history) > suggestionContextWindow {
		history = history[len(history)-suggestionContextWindow:]
	}
	names := make(map[string]string, len(participants))
	for _, p := range participants {
		names[p.ID.String()] = p.DisplayName
	}

	window := make([]contextMessage, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Type == message.TypeAssistant {
			role = "assistant"
		}
		author := ""
		if m.SenderParticipantID.Valid {
			author = names[m.SenderParticipantID.UUID.String()]
		}
		window = append(window, contextMessage{Role: role, Content: m.Body, Author: author})
	}
	return window
}

type suggestionRequest struct {
	Model       string           `json:"model"`
	Temperature float64          `json:"temperature"`
	Messages    []contextMessage `json:"messages"`
}

type suggestionResponse struct {
	Suggestion string   `json:"suggestion"`
	Confidence *float64 `json:"confidence,omitempty"`
	Usage      struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// tryExternal POSTs the context to the configured endpoint. Any failure
// (missing config, transport error, non-2xx, empty or malformed payload)
// returns nil so the heuristic takes over.
func (s *SuggestionProvider) tryExternal(ctx context.Context, window []contextMessage) *Suggestion {
	if s.cfg.AIAssistEndpoint == "" {
		return nil
	}

	req := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(suggestionRequest{
			Model:       s.cfg.AIAssistModel,
			Temperature: s.cfg.SuggestionTemperature,
			Messages:    window,
		})
	if s.cfg.AIAssistAPIKey != "" {
		req.SetHeader("Authorization", "Bearer "+s.cfg.AIAssistAPIKey)
	}

	resp, err := req.Post(s.cfg.AIAssistEndpoint)
	if err != nil {
		if s.log != nil {
			s.log.Warnf("ai suggestion call failed: %s", err)
		}
		return nil
	}
	if resp.IsError() {
		if s.log != nil {
			s.log.Warnf("ai suggestion call returned %d", resp.StatusCode())
		}
		return nil
	}

	var parsed suggestionResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		if s.log != nil {
			s.log.Warnf("ai suggestion payload unreadable: %s", err)
		}
		return nil
	}
	body := strings.TrimSpace(parsed.Suggestion)
	if body == "" {
		return nil
	}

	confidence := s.cfg.SuggestionTemperature
	if parsed.Confidence != nil {
		confidence = *parsed.Confidence
	}
	return &Suggestion{
		Body:       body,
		Confidence: clampConfidence(confidence),
		Metadata: map[string]interface{}{
			"provider":         "external",
			"model":            s.cfg.AIAssistModel,
			"context_messages": len(window),
			"total_tokens":     parsed.Usage.TotalTokens,
		},
	}
}

// heuristic classifies the triggering body into a topic and answers with a
// canned template. Same body in, same topic and confidence out.
func (s *SuggestionProvider) heuristic(body string, trigger conversation.Participant, conv conversation.Conversation, contextCount int) *Suggestion {
	topic := classifyTopic(body)

	tz := conv.DefaultTimezone
	if trigger.Timezone.Valid {
		tz = trigger.Timezone.String
	}

	var reply string
	switch topic {
	case TopicPricing:
		reply = "Happy to help with pricing. Could you share a few details about the job so we can put together an accurate quote?"
	case TopicScheduling:
		reply = "We can get that scheduled. What days and times work best for you? We'll confirm against the provider's availability in the " + tz + " timezone."
	case TopicBilling:
		reply = "Thanks for flagging the billing question. We'll review your invoice history and follow up shortly with the details."
	case TopicVideoSession:
		reply = "A video session is a great way to walk through this. We can set one up from the conversation whenever you're ready."
	default:
		reply = s.cfg.DefaultGreeting
	}

	return &Suggestion{
		Body:       reply,
		Confidence: heuristicConfidence,
		Metadata: map[string]interface{}{
			"provider":         "heuristic",
			"topic":            topic,
			"context_messages": contextCount,
		},
	}
}

func classifyTopic(body string) string {
	switch {
	case pricingPattern.MatchString(body):
		return TopicPricing
	case schedulingPattern.MatchString(body):
		return TopicScheduling
	case billingPattern.MatchString(body):
		return TopicBilling
	case videoPattern.MatchString(body):
		return TopicVideoSession
	default:
		return TopicGeneralSupport
	}
}

func clampConfidence(v float64) float64 {
	if v < minConfidence {
		return minConfidence
	}
	if v > maxConfidence {
		return maxConfidence
	}
	return v
}

func findAssistant(participants []conversation.Participant) *conversation.Participant {
	for i := range participants {
		if participants[i].IsAssistant() {
			return &participants[i]
		}
	}
	return nil
}
