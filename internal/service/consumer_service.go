package service

import (
	"context"
	"encoding/json"

	"ai-tagging-be/internal/pkg/logger"
	"ai-tagging-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventForwarder ships events off-process (NATS in production).
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	forwarder  EventForwarder
	audit      logger.ILogger
	logger     logger.ILogger
}

// NewConsumerService builds the in-process event consumer. forwarder may be
// nil, in which case events only reach the audit log.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	forwarder EventForwarder,
	audit logger.ILogger,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		forwarder:  forwarder,
		audit:      audit,
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// always Ack; malformed events are dropped
	defer msg.Ack()

	var evt events.TagsSuggested
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		cs.logger.Error("EVENTS", "Failed to unmarshal message", map[string]interface{}{
			"error":      err.Error(),
			"message_id": msg.UUID,
		})
		return
	}

	cs.audit.Info("EVENTS", evt.EventType(), evt.Payload())

	if cs.forwarder == nil {
		return
	}
	if err := cs.forwarder.Publish(ctx, evt); err != nil {
		cs.logger.Warn("EVENTS", "Failed to forward event", map[string]interface{}{
			"error":    err.Error(),
			"event_id": evt.EventId.String(),
		})
	}
}
