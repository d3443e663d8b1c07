package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

type SendMessageUseCase struct {
	bookingRepo repository.BookingRepository
	messageRepo repository.MessageRepository
	events      *EventPublisher
}

func NewSendMessageUseCase(bookingRepo repository.BookingRepository, messageRepo repository.MessageRepository, events *EventPublisher) *SendMessageUseCase {
	return &SendMessageUseCase{bookingRepo: bookingRepo, messageRepo: messageRepo, events: events}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, bookingID, senderID uuid.UUID, content string) (*entity.Message, error) {
	booking, err := uc.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.IsParty(senderID) {
		return nil, apperror.ErrNotBookingParty
	}

	message, err := entity.NewMessage(booking.ID, senderID, content)
	if err != nil {
		return nil, err
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if recipient, ok := booking.Counterpart(senderID); ok {
		uc.events.publish(ctx, booking, entity.EventMessageReceived, eventOptions{
			actor:      &senderID,
			preview:    message.Preview(),
			recipients: []uuid.UUID{recipient},
		})
	}

	return message, nil
}

type ListMessagesUseCase struct {
	bookingRepo repository.BookingRepository
	messageRepo repository.MessageRepository
}

func NewListMessagesUseCase(bookingRepo repository.BookingRepository, messageRepo repository.MessageRepository) *ListMessagesUseCase {
	return &ListMessagesUseCase{bookingRepo: bookingRepo, messageRepo: messageRepo}
}

// Execute marks the counterpart's messages as read for the viewer and returns
// the whole thread, oldest first.
func (uc *ListMessagesUseCase) Execute(ctx context.Context, bookingID, viewerID uuid.UUID) ([]*entity.Message, error) {
	booking, err := uc.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.IsParty(viewerID) {
		return nil, apperror.ErrNotBookingParty
	}

	if _, err := uc.messageRepo.MarkReadFor(ctx, booking.ID, viewerID); err != nil {
		return nil, err
	}

	return uc.messageRepo.ListByBooking(ctx, booking.ID)
}
