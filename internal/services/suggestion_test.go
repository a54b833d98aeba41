package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"markethub-messaging/config"
	"markethub-messaging/internal/domain/conversation"
	"markethub-messaging/internal/domain/message"

	"github.com/google/uuid"
)

func suggestionConfig() *config.Config {
	return &config.Config{
		DefaultGreeting:        "Thanks for reaching out! A member of our team will reply shortly.",
		AIAssistModel:          "gpt-4o-mini",
		SuggestionTemperature:  0.7,
		AIAssistTimeoutSeconds: 2,
	}
}

func assistedConversation() (conversation.Conversation, []conversation.Participant) {
	conv := conversation.Conversation{
		ID:              uuid.New(),
		DefaultTimezone: "UTC",
		AIAssistDefault: true,
	}
	customer := conversation.Participant{
		ID:              uuid.New(),
		ConversationID:  conv.ID,
		ParticipantType: conversation.TypeUser,
		Role:            conversation.RoleCustomer,
		DisplayName:     "Dana",
	}
	assistant := conversation.Participant{
		ID:              uuid.New(),
		ConversationID:  conv.ID,
		ParticipantType: conversation.TypeSupportBot,
		Role:            conversation.RoleAIAssistant,
		DisplayName:     "AI Assistant",
		AIAssistEnabled: true,
	}
	return conv, []conversation.Participant{customer, assistant}
}

func TestClassifyTopic(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"quote_is_pricing", "What's the quote for next week?", TopicPricing},
		{"cost_is_pricing", "How much would this cost?", TopicPricing},
		{"availability_is_scheduling", "Are you available Tuesday morning?", TopicScheduling},
		{"invoice_is_billing", "I never received my invoice", TopicBilling},
		{"call_is_video", "Can we hop on a call to discuss?", TopicVideoSession},
		{"pricing_beats_scheduling", "Can I book an estimate?", TopicPricing},
		{"fallback", "hello there", TopicGeneralSupport},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyTopic(tc.body); got != tc.want {
				t.Fatalf("classifyTopic(%q)=%q, want %q", tc.body, got, tc.want)
			}
		})
	}
}

func TestGeneratePreconditions(t *testing.T) {
	provider := NewSuggestionProvider(suggestionConfig(), nil)
	conv, participants := assistedConversation()
	customer := participants[0]
	latest := message.Message{Body: "What's the quote for next week?"}

	t.Run("no_assistant_participant", func(t *testing.T) {
		if got := provider.Generate(context.Background(), conv, participants[:1], customer, latest, nil); got != nil {
			t.Fatalf("got %+v, want nil without an assistant", got)
		}
	})

	t.Run("assistant_toggle_off", func(t *testing.T) {
		muted := make([]conversation.Participant, len(participants))
		copy(muted, participants)
		muted[1].AIAssistEnabled = false
		if got := provider.Generate(context.Background(), conv, muted, customer, latest, nil); got != nil {
			t.Fatalf("got %+v, want nil when the assistant is disabled", got)
		}
	})

	t.Run("conversation_default_off", func(t *testing.T) {
		off := conv
		off.AIAssistDefault = false
		if got := provider.Generate(context.Background(), off, participants, customer, latest, nil); got != nil {
			t.Fatalf("got %+v, want nil when the conversation default is off", got)
		}
	})

	t.Run("blank_body", func(t *testing.T) {
		if got := provider.Generate(context.Background(), conv, participants, customer, message.Message{Body: "   "}, nil); got != nil {
			t.Fatalf("got %+v, want nil for a blank trigger", got)
		}
	})
}

func TestGenerateHeuristicDeterministic(t *testing.T) {
	provider := NewSuggestionProvider(suggestionConfig(), nil)
	conv, participants := assistedConversation()
	latest := message.Message{Body: "What's the quote for next week?"}

	first := provider.Generate(context.Background(), conv, participants, participants[0], latest, nil)
	second := provider.Generate(context.Background(), conv, participants, participants[0], latest, nil)
	if first == nil || second == nil {
		t.Fatal("expected a heuristic suggestion")
	}
	if first.Body != second.Body || first.Confidence != second.Confidence {
		t.Fatalf("heuristic must be deterministic: %+v vs %+v", first, second)
	}
	if first.Confidence != heuristicConfidence {
		t.Fatalf("confidence %v, want %v", first.Confidence, heuristicConfidence)
	}
	if first.Metadata["provider"] != "heuristic" || first.Metadata["topic"] != TopicPricing {
		t.Fatalf("metadata %v, want heuristic/pricing", first.Metadata)
	}
}

func TestGenerateHeuristicFallbackGreeting(t *testing.T) {
	cfg := suggestionConfig()
	provider := NewSuggestionProvider(cfg, nil)
	conv, participants := assistedConversation()

	got := provider.Generate(context.Background(), conv, participants, participants[0],
		message.Message{Body: "hello there"}, nil)
	if got == nil {
		t.Fatal("expected a suggestion")
	}
	if got.Body != cfg.DefaultGreeting {
		t.Fatalf("body %q, want the configured greeting", got.Body)
	}
}

func TestGenerateExternalEndpoint(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"suggestion":"We can send over a detailed quote today.","confidence":1.5,"usage":{"total_tokens":42}}`))
	}))
	defer srv.Close()

	cfg := suggestionConfig()
	cfg.AIAssistEndpoint = srv.URL
	cfg.AIAssistAPIKey = "test-key"
	provider := NewSuggestionProvider(cfg, nil)
	conv, participants := assistedConversation()

	got := provider.Generate(context.Background(), conv, participants, participants[0],
		message.Message{Body: "What's the quote for next week?"}, nil)
	if got == nil {
		t.Fatal("expected an external suggestion")
	}
	if got.Body != "We can send over a detailed quote today." {
		t.Fatalf("body %q", got.Body)
	}
	if got.Confidence != maxConfidence {
		t.Fatalf("confidence %v, want clamped to %v", got.Confidence, maxConfidence)
	}
	if got.Metadata["provider"] != "external" {
		t.Fatalf("provider %v, want external", got.Metadata["provider"])
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("authorization header %q", gotAuth)
	}
}

func TestGenerateExternalFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := suggestionConfig()
	cfg.AIAssistEndpoint = srv.URL
	provider := NewSuggestionProvider(cfg, nil)
	conv, participants := assistedConversation()

	got := provider.Generate(context.Background(), conv, participants, participants[0],
		message.Message{Body: "What's the quote for next week?"}, nil)
	if got == nil {
		t.Fatal("expected heuristic fallback, got nil")
	}
	if got.Metadata["provider"] != "heuristic" {
		t.Fatalf("provider %v, want heuristic fallback", got.Metadata["provider"])
	}
	if got.Confidence != heuristicConfidence {
		t.Fatalf("confidence %v, want %v", got.Confidence, heuristicConfidence)
	}
}

func TestContextWindowTruncates(t *testing.T) {
	_, participants := assistedConversation()
	var history []message.Message
	for i := 0; i < 10; i++ {
		history = append(history, message.Message{
			Body:                "message",
			SenderParticipantID: uuid.NullUUID{UUID: participants[0].ID, Valid: true},
		})
	}
	history = append(history, message.Message{Type: message.TypeAssistant, Body: "reply"})

	window := contextWindow(history, participants)
	if len(window) != suggestionContextWindow {
		t.Fatalf("window length %d, want %d", len(window), suggestionContextWindow)
	}
	last := window[len(window)-1]
	if last.Role != "assistant" {
		t.Fatalf("last role %q, want assistant", last.Role)
	}
}

func TestClampConfidence(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.1, minConfidence},
		{0.4, 0.4},
		{0.85, 0.85},
		{0.99, 0.99},
		{1.2, maxConfidence},
	}
	for _, tc := range cases {
		if got := clampConfidence(tc.in); got != tc.want {
			t.Fatalf("clampConfidence(%v)=%v, want %v", tc.in, got, tc.want)
		}
	}
}
