package service

import (
	"context"
	"encoding/json"

	"site-gallery-be/internal/entity"
	"site-gallery-be/internal/pkg/logger"
	galleryEvents "site-gallery-be/pkg/gallery/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

const EventSlotReplaced = "slot_replaced"

// SiteBroadcaster delivers a message to every live client watching a site.
type SiteBroadcaster interface {
	BroadcastToSite(siteSlug, eventType string, data interface{})
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	broadcaster SiteBroadcaster
	events      galleryEvents.Publisher
	logger      logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	broadcaster SiteBroadcaster,
	events galleryEvents.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		broadcaster: broadcaster,
		events:      events,
		logger:      log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

// processMessage fans a slot replacement out to websocket clients and NATS.
// Delivery is best effort, so every message is acked.
func (cs *consumerService) processMessage(msg *message.Message) {
	defer msg.Ack()

	var evt entity.SlotReplaced
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal slot replacement", map[string]interface{}{"error": err.Error(), "message_id": msg.UUID})
		return
	}

	if cs.broadcaster != nil {
		cs.broadcaster.BroadcastToSite(evt.SiteSlug, EventSlotReplaced, evt)
	}
	if cs.events != nil {
		cs.events.PublishSlotReplaced(msg.Context(), evt)
	}

	cs.logger.Debug("CONSUMER", "Slot replacement dispatched", map[string]interface{}{"site": evt.SiteSlug, "slot_id": evt.SlotId})
}
