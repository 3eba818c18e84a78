package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/shared/biztime"
	"github.com/caseguard/caseguard/internal/shared/goroutine"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

// WorkflowEventMessage is the wire form consumed by the notification
// dispatcher. EventID lets consumers drop redeliveries.
type WorkflowEventMessage struct {
	EventID        string `json:"event_id"`
	Type           string `json:"type"`
	OrganizationID string `json:"organization_id"`
	ReportID       string `json:"report_id"`
	EscalatedTo    string `json:"escalated_to,omitempty"`
	Deadline       string `json:"deadline,omitempty"`
	Timestamp      string `json:"timestamp"`
	InstanceID     string `json:"instance_id,omitempty"`
}

func NewWorkflowEventMessage(event workflow.WorkflowEvent) WorkflowEventMessage {
	msg := WorkflowEventMessage{
		EventID:        uuid.NewString(),
		Type:           string(event.Type),
		OrganizationID: event.OrganizationID,
		ReportID:       event.ReportID,
		EscalatedTo:    event.EscalatedTo,
		Timestamp:      biztime.FormatRFC3339(event.Timestamp),
	}
	if event.Deadline != nil {
		msg.Deadline = biztime.FormatRFC3339(*event.Deadline)
	}
	return msg
}

// RedisWorkflowEventBus publishes workflow events on a Redis channel. A
// circuit breaker stops publishing while Redis keeps failing so that
// callers are not held up by a dead dependency.
type RedisWorkflowEventBus struct {
	client     *redis.Client
	channel    string
	breaker    *gobreaker.CircuitBreaker
	logger     logger.Interface
	instanceID string
}

func NewRedisWorkflowEventBus(client *redis.Client, channel string, logger logger.Interface) *RedisWorkflowEventBus {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "workflow-event-publisher",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnw("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &RedisWorkflowEventBus{
		client:     client,
		channel:    channel,
		breaker:    breaker,
		logger:     logger,
		instanceID: uuid.NewString(),
	}
}

// Notify implements the engine's notifier port.
func (b *RedisWorkflowEventBus) Notify(ctx context.Context, event workflow.WorkflowEvent) error {
	msg := NewWorkflowEventMessage(event)
	msg.InstanceID = b.instanceID

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow event: %w", err)
	}

	_, err = b.breaker.Execute(func() (any, error) {
		return nil, b.client.Publish(ctx, b.channel, data).Err()
	})
	if err != nil {
		b.logger.Errorw("failed to publish workflow event",
			"event_id", msg.EventID,
			"event_type", msg.Type,
			"report_id", msg.ReportID,
			"error", err,
		)
		return fmt.Errorf("failed to publish workflow event: %w", err)
	}

	b.logger.Debugw("workflow event published",
		"event_id", msg.EventID,
		"event_type", msg.Type,
		"report_id", msg.ReportID,
	)
	return nil
}

func (b *RedisWorkflowEventBus) BreakerState() gobreaker.State {
	return b.breaker.State()
}

// Subscribe delivers every message on the channel to handler until ctx is
// cancelled, reconnecting with exponential backoff.
func (b *RedisWorkflowEventBus) Subscribe(ctx context.Context, handler func(msg WorkflowEventMessage)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("workflow event subscription disconnected, reconnecting",
			"channel", b.channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisWorkflowEventBus) subscribe(ctx context.Context, handler func(msg WorkflowEventMessage)) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", b.channel, err)
	}

	b.logger.Infow("subscribed to workflow event channel", "channel", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case raw, ok := <-ch:
			if !ok {
				b.logger.Warnw("workflow event channel closed", "channel", b.channel)
				return nil
			}

			var msg WorkflowEventMessage
			if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
				b.logger.Warnw("failed to unmarshal workflow event",
					"payload", raw.Payload,
					"error", err,
				)
				continue
			}

			goroutine.SafeGo(b.logger, "workflow-event-handler", func() {
				handler(msg)
			})
		}
	}
}

// LogNotifier records events in the log when no broker is configured.
type LogNotifier struct {
	logger logger.Interface
}

func NewLogNotifier(logger logger.Interface) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, event workflow.WorkflowEvent) error {
	msg := NewWorkflowEventMessage(event)
	n.logger.Infow("workflow event",
		"event_id", msg.EventID,
		"event_type", msg.Type,
		"organization_id", msg.OrganizationID,
		"report_id", msg.ReportID,
		"escalated_to", msg.EscalatedTo,
		"deadline", msg.Deadline,
	)
	return nil
}
