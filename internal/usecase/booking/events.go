package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/logger"
)

// EventPublisher enriches lifecycle events with party and category names and
// hands them to the sink. It never reports failure to the caller: by the time
// it runs the state change is already committed.
type EventPublisher struct {
	sink       repository.NotificationSink
	users      repository.UserRepository
	categories repository.CategoryRepository
}

func NewEventPublisher(sink repository.NotificationSink, users repository.UserRepository, categories repository.CategoryRepository) *EventPublisher {
	return &EventPublisher{sink: sink, users: users, categories: categories}
}

type eventOptions struct {
	actor      *uuid.UUID
	provider   *uuid.UUID
	reason     string
	preview    string
	recipients []uuid.UUID
}

func (p *EventPublisher) publish(ctx context.Context, b *entity.Booking, typ entity.BookingEventType, opts eventOptions) {
	if p == nil || p.sink == nil {
		return
	}

	log := logger.Log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"event":      typ,
	})

	recipients := make([]uuid.UUID, 0, len(opts.recipients))
	for _, r := range opts.recipients {
		if r != uuid.Nil && (opts.actor == nil || r != *opts.actor) {
			recipients = append(recipients, r)
		}
	}
	if len(recipients) == 0 {
		return
	}

	providerID := opts.provider
	if providerID == nil {
		providerID = b.ProviderID
	}

	event := entity.BookingEvent{
		Type:       typ,
		BookingID:  b.ID,
		Status:     string(b.Status),
		ClientID:   b.ClientID,
		ProviderID: providerID,
		ActorID:    opts.actor,
		Reason:     opts.reason,
		Preview:    opts.preview,
		Recipients: recipients,
		OccurredAt: time.Now(),
	}

	ids := []uuid.UUID{b.ClientID}
	if providerID != nil {
		ids = append(ids, *providerID)
	}
	if users, err := p.users.FindByIDs(ctx, ids); err != nil {
		log.WithError(err).Warn("notification: failed to resolve party names")
	} else {
		if u, ok := users[b.ClientID]; ok {
			event.ClientName = u.Name
		}
		if providerID != nil {
			if u, ok := users[*providerID]; ok {
				event.ProviderName = u.Name
			}
		}
	}

	if category, err := p.categories.FindByID(ctx, b.CategoryID); err != nil {
		log.WithError(err).Warn("notification: failed to resolve category name")
	} else {
		event.CategoryName = category.Name
	}

	if err := p.sink.Notify(ctx, event); err != nil {
		log.WithError(err).Error("notification: dispatch failed")
	}
}
