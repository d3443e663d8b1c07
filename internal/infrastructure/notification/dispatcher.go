package notification

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/goroutine"
	"github.com/ignatzorin/servantin-backend/internal/logger"
)

// Pusher доставляет событие подключённым клиентам пользователя.
type Pusher interface {
	BroadcastToUser(userID uuid.UUID, event string, data any) error
}

// Dispatcher реализует repository.NotificationSink: сохраняет уведомление
// каждому получателю и отправляет его в WebSocket. Работа идёт в фоне,
// поэтому Notify не задерживает ответ на запрос.
type Dispatcher struct {
	repo   repository.NotificationRepository
	pusher Pusher
	spawn  func(ctx context.Context, fn func(context.Context))
}

type payload struct {
	Event string              `json:"event"`
	Data  entity.BookingEvent `json:"data"`
}

// NewDispatcher доставляет уведомления в фоне. Контекст запроса отвязывается
// от отмены: ответ клиенту уходит раньше, чем уведомления записаны.
func NewDispatcher(repo repository.NotificationRepository, pusher Pusher) *Dispatcher {
	return &Dispatcher{
		repo:   repo,
		pusher: pusher,
		spawn: func(ctx context.Context, fn func(context.Context)) {
			goroutine.SafeGoWithContext(context.WithoutCancel(ctx), fn)
		},
	}
}

// NewSyncDispatcher доставляет уведомления в вызывающей горутине.
// Используется CLI, где процесс завершается сразу после команды.
func NewSyncDispatcher(repo repository.NotificationRepository, pusher Pusher) *Dispatcher {
	return &Dispatcher{
		repo:   repo,
		pusher: pusher,
		spawn: func(ctx context.Context, fn func(context.Context)) {
			fn(ctx)
		},
	}
}

func (d *Dispatcher) Notify(ctx context.Context, event entity.BookingEvent) error {
	if len(event.Recipients) == 0 {
		return nil
	}

	raw, err := json.Marshal(payload{Event: string(event.Type), Data: event})
	if err != nil {
		return err
	}

	d.spawn(ctx, func(ctx context.Context) {
		for _, userID := range event.Recipients {
			d.deliver(ctx, userID, event, raw)
		}
	})
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, userID uuid.UUID, event entity.BookingEvent, raw []byte) {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":    userID,
		"booking_id": event.BookingID,
		"event":      event.Type,
	})

	n := &entity.Notification{UserID: userID, Payload: raw}
	if err := d.repo.Create(ctx, n); err != nil {
		log.WithError(err).Error("не удалось сохранить уведомление")
	}

	if d.pusher == nil {
		return
	}
	if err := d.pusher.BroadcastToUser(userID, string(event.Type), event); err != nil {
		log.WithError(err).Warn("не удалось отправить уведомление в websocket")
	}
}
