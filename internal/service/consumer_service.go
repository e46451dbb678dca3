package service

import (
	"context"
	"encoding/json"

	"usecase-catalog-be/internal/dto"
	"usecase-catalog-be/internal/pkg/logger"
	"usecase-catalog-be/internal/repository/cache"
	"usecase-catalog-be/pkg/events"
	pktNats "usecase-catalog-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventPublisher forwards events to an external bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// EventSubscriber delivers events published by other processes.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject, durableName string, handler pktNats.EventHandler) error
}

type IConsumerService interface {
	// Consume starts background processing and returns once subscriptions are in place.
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	cache      cache.Cache
	forwarder  EventPublisher
	remote     EventSubscriber
	logger     logger.ILogger
}

// NewConsumerService handles USE_CASE_CREATED messages from the in-process
// bus. forwarder and remote are optional.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	filterCache cache.Cache,
	forwarder EventPublisher,
	remote EventSubscriber,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		cache:      filterCache,
		forwarder:  forwarder,
		remote:     remote,
		logger:     log,
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

	if cs.remote != nil {
		// Other instances keep their own in-process caches; drop ours when they insert.
		err := cs.remote.Subscribe(ctx, pktNats.Subject(events.TypeUseCaseCreated), "", func(ctx context.Context, event events.Event) error {
			cs.invalidateFilters(ctx, "remote")
			return nil
		})
		if err != nil {
			cs.logger.Warn("EVENTS", "Failed to subscribe to remote events", map[string]interface{}{"error": err.Error()})
		}
	}

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Every outcome acks: the bus does not redeliver and nothing here is retriable.
	defer msg.Ack()

	var payload dto.UseCaseCreatedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("EVENTS", "Failed to unmarshal message", map[string]interface{}{
			"error":      err.Error(),
			"message_id": msg.UUID,
		})
		return
	}

	cs.invalidateFilters(ctx, "local")

	if cs.forwarder == nil {
		return
	}
	event := events.UseCaseCreated(payload.Id, payload.UseCase, payload.CreatedAt)
	if err := cs.forwarder.Publish(ctx, event); err != nil {
		cs.logger.Error("EVENTS", "Failed to forward event to NATS", map[string]interface{}{
			"error":       err.Error(),
			"use_case_id": payload.Id,
		})
		return
	}

	cs.logger.Debug("EVENTS", "Use case created event forwarded", map[string]interface{}{"use_case_id": payload.Id})
}

func (cs *consumerService) invalidateFilters(ctx context.Context, source string) {
	if cs.cache == nil {
		return
	}
	if err := cs.cache.Delete(ctx, FiltersCacheKey); err != nil {
		cs.logger.Warn("CACHE", "Failed to invalidate filter cache", map[string]interface{}{
			"error":  err.Error(),
			"source": source,
		})
	}
}
