package services

import (
	"context"
	"database/sql"
	"time"

	"markethub-messaging/internal/analytics"
	"markethub-messaging/internal/domain/conversation"
	"markethub-messaging/internal/domain/message"
	"markethub-messaging/internal/repository"
	"markethub-messaging/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DeliveryFanout computes one delivery record per non-sender participant for
// a message, applying suppression policy, and persists them through the
// repository bound to the caller's transaction.
type DeliveryFanout struct {
	recorder analytics.Recorder
	log      *logger.Logger
}

func NewDeliveryFanout(recorder analytics.Recorder, log *logger.Logger) *DeliveryFanout {
	if recorder == nil {
		recorder = analytics.NoopRecorder{}
	}
	return &DeliveryFanout{recorder: recorder, log: log}
}

// Fanout evaluates each recipient in order: notifications disabled wins over
// quiet hours, quiet hours win over delivery. A zero-recipient message yields
// an empty slice, not an error. Suppressions emit one analytics event each;
// a recorder failure is logged and never rolls back the delivery write.
func (f *DeliveryFanout) Fanout(
	ctx context.Context,
	repo repository.MessageRepository,
	conv conversation.Conversation,
	msg *message.Message,
	participants []conversation.Participant,
	senderID uuid.NullUUID,
	now time.Time,
) ([]message.Delivery, error) {
	deliveries := make([]message.Delivery, 0, len(participants))

	for _, p := range participants {
		if senderID.Valid && p.ID == senderID.UUID {
			continue
		}

		d := message.Delivery{
			ID:            uuid.New(),
			MessageID:     msg.ID,
			ParticipantID: p.ID,
			Metadata:      datatypes.JSONMap{},
			CreatedAt:     now,
		}

		switch {
		case !p.NotificationsEnabled:
			d.Status = message.StatusSuppressed
			d.SuppressionReason = sql.NullString{String: message.ReasonNotificationsDisabled, Valid: true}
		default:
			window, err := ResolveQuietHours(p, conv, nil)
			if err != nil {
				return nil, err
			}
			active := false
			if window != nil {
				active, err = QuietHoursActive(*window, now)
				if err != nil {
					return nil, err
				}
				d.Metadata["quiet_hours"] = map[string]interface{}{
					"start":    window.Start,
					"end":      window.End,
					"timezone": window.Timezone,
				}
			}
			if active {
				d.Status = message.StatusSuppressed
				d.SuppressionReason = sql.NullString{String: message.ReasonQuietHours, Valid: true}
			} else {
				d.Status = message.StatusDelivered
				d.DeliveredAt = sql.NullTime{Time: now, Valid: true}
			}
		}

		deliveries = append(deliveries, d)
	}

	if err := repo.CreateDeliveries(ctx, deliveries); err != nil {
		return nil, err
	}

	for _, d := range deliveries {
		if d.Status != message.StatusSuppressed {
			continue
		}
		event := analytics.Event{
			Name:       analytics.EventDeliverySuppressed,
			EntityID:   d.ID.String(),
			TenantID:   tenantID(conv),
			OccurredAt: now,
			Metadata: map[string]interface{}{
				"conversation_id": conv.ID.String(),
				"message_id":      msg.ID.String(),
				"participant_id":  d.ParticipantID.String(),
				"reason":          d.SuppressionReason.String,
				"quiet_hours":     d.Metadata["quiet_hours"],
			},
		}
		if err := f.recorder.Record(ctx, event); err != nil && f.log != nil {
			f.log.Warnf("suppression analytics emit failed for message %s: %s", msg.ID, err)
		}
	}

	return deliveries, nil
}

func tenantID(conv conversation.Conversation) string {
	if conv.Metadata == nil {
		return ""
	}
	if v, ok := conv.Metadata["tenant_id"].(string); ok {
		return v
	}
	return ""
}
