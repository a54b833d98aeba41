package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRecorder appends events to a redis stream. Downstream consumers
// (reporting, audit) read the stream with XREAD on their own schedule.
type RedisRecorder struct {
	client *redis.Client
	stream string
}

func NewRedisRecorder(client *redis.Client, stream string) *RedisRecorder {
	return &RedisRecorder{client: client, stream: stream}
}

func (r *RedisRecorder) Record(ctx context.Context, e Event) error {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	metadata := []byte("{}")
	if e.Metadata != nil {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			metadata = raw
		}
	}
	return r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]interface{}{
			"event":       e.Name,
			"entity_id":   e.EntityID,
			"tenant_id":   e.TenantID,
			"occurred_at": e.OccurredAt.UTC().Format(time.RFC3339Nano),
			"metadata":    string(metadata),
		},
	}).Err()
}
