package events

import (
	"context"
	"time"

	"site-gallery-be/internal/entity"
	"site-gallery-be/internal/pkg/logger"
	pkgEvents "site-gallery-be/pkg/events"
)

// Publisher abstracts outbound notifications about gallery and form activity
type Publisher interface {
	PublishSlotReplaced(ctx context.Context, evt entity.SlotReplaced)
	PublishFormSubmitted(ctx context.Context, sub *entity.FormSubmission)
}

// Sink is satisfied by the NATS JetStream publisher.
type Sink interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

// NatsPublisher implements Publisher on top of a Sink. A nil sink turns every
// call into a no-op so the service runs without NATS.
type NatsPublisher struct {
	sink   Sink
	logger logger.ILogger
}

func NewNatsPublisher(sink Sink, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		sink:   sink,
		logger: logger,
	}
}

// PublishSlotReplaced emits SLOT_REPLACED once an upload is the live image of a slot
func (p *NatsPublisher) PublishSlotReplaced(ctx context.Context, evt entity.SlotReplaced) {
	if p.sink == nil {
		return
	}

	occurredAt := evt.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	e := pkgEvents.BaseEvent{
		Type: pkgEvents.TypeSlotReplaced,
		Data: map[string]interface{}{
			"site":        evt.SiteSlug,
			"slot_id":     evt.SlotId,
			"path":        evt.Path,
			"image_url":   evt.ImageURL,
			"removed":     evt.Removed,
			"uploaded_by": evt.UploadedBy,
			"entity_type": "image",
			"entity_id":   evt.Path,
		},
		OccurredAt: occurredAt,
	}

	if err := p.sink.Publish(ctx, e); err != nil {
		p.logger.Error("EVENTS", "Failed to publish SLOT_REPLACED event", map[string]interface{}{"error": err.Error(), "site": evt.SiteSlug, "slot_id": evt.SlotId})
	}
}

// PublishFormSubmitted emits FORM_SUBMITTED for a settled submission. Field
// values are not forwarded, only which fields were filled.
func (p *NatsPublisher) PublishFormSubmitted(ctx context.Context, sub *entity.FormSubmission) {
	if p.sink == nil || sub == nil {
		return
	}

	fields := make([]string, 0, len(sub.Fields))
	for k := range sub.Fields {
		fields = append(fields, k)
	}

	e := pkgEvents.BaseEvent{
		Type: pkgEvents.TypeFormSubmitted,
		Data: map[string]interface{}{
			"submission_id": sub.Id.String(),
			"site":          sub.SiteSlug,
			"kind":          sub.Kind,
			"status":        string(sub.Status),
			"reference":     sub.Reference,
			"fields":        fields,
			"entity_type":   "form_submission",
			"entity_id":     sub.Id.String(),
		},
		OccurredAt: time.Now(),
	}

	if err := p.sink.Publish(ctx, e); err != nil {
		p.logger.Error("EVENTS", "Failed to publish FORM_SUBMITTED event", map[string]interface{}{"error": err.Error(), "submission_id": sub.Id.String()})
	}
}
