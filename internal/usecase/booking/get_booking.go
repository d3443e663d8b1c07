package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

// BookingView is a booking materialized for one viewer.
type BookingView struct {
	Booking            *entity.Booking
	Category           *entity.Category
	Client             *entity.User
	Provider           *entity.User
	Rating             *entity.Rating
	UnreadMessageCount int
}

type ViewAssembler struct {
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	ratingRepo   repository.RatingRepository
	messageRepo  repository.MessageRepository
}

func NewViewAssembler(
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	ratingRepo repository.RatingRepository,
	messageRepo repository.MessageRepository,
) *ViewAssembler {
	return &ViewAssembler{
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		ratingRepo:   ratingRepo,
		messageRepo:  messageRepo,
	}
}

// Build attaches related records. Unread counts are computed only when a
// viewer is given; admin listings pass nil.
func (a *ViewAssembler) Build(ctx context.Context, bookings []*entity.Booking, viewer *uuid.UUID) ([]*BookingView, error) {
	userIDs := make([]uuid.UUID, 0, len(bookings)*2)
	for _, b := range bookings {
		userIDs = append(userIDs, b.ClientID)
		if providerID, ok := b.AssignedProvider(); ok {
			userIDs = append(userIDs, providerID)
		}
	}

	users, err := a.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	categories := make(map[uuid.UUID]*entity.Category)
	views := make([]*BookingView, 0, len(bookings))
	for _, b := range bookings {
		category, ok := categories[b.CategoryID]
		if !ok {
			category, err = a.categoryRepo.FindByID(ctx, b.CategoryID)
			if err != nil {
				return nil, err
			}
			categories[b.CategoryID] = category
		}

		view := &BookingView{
			Booking:  b,
			Category: category,
			Client:   users[b.ClientID],
		}
		if providerID, ok := b.AssignedProvider(); ok {
			view.Provider = users[providerID]
		}

		view.Rating, err = a.ratingRepo.FindByBookingID(ctx, b.ID)
		if err != nil {
			return nil, err
		}

		if viewer != nil {
			view.UnreadMessageCount, err = a.messageRepo.CountUnread(ctx, b.ID, *viewer)
			if err != nil {
				return nil, err
			}
		}

		views = append(views, view)
	}

	return views, nil
}

// One materializes a single booking, typically right after a transition.
func (a *ViewAssembler) One(ctx context.Context, b *entity.Booking, viewer *uuid.UUID) (*BookingView, error) {
	views, err := a.Build(ctx, []*entity.Booking{b}, viewer)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

type GetBookingUseCase struct {
	bookingRepo repository.BookingRepository
	views       *ViewAssembler
}

func NewGetBookingUseCase(bookingRepo repository.BookingRepository, views *ViewAssembler) *GetBookingUseCase {
	return &GetBookingUseCase{bookingRepo: bookingRepo, views: views}
}

func (uc *GetBookingUseCase) Execute(ctx context.Context, bookingID, viewerID uuid.UUID) (*BookingView, error) {
	booking, err := uc.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.IsParty(viewerID) {
		return nil, apperror.ErrNotBookingParty
	}

	return uc.views.One(ctx, booking, &viewerID)
}

type ListClientBookingsUseCase struct {
	bookingRepo repository.BookingRepository
	views       *ViewAssembler
}

func NewListClientBookingsUseCase(bookingRepo repository.BookingRepository, views *ViewAssembler) *ListClientBookingsUseCase {
	return &ListClientBookingsUseCase{bookingRepo: bookingRepo, views: views}
}

func (uc *ListClientBookingsUseCase) Execute(ctx context.Context, clientID uuid.UUID) ([]*BookingView, error) {
	bookings, err := uc.bookingRepo.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return uc.views.Build(ctx, bookings, &clientID)
}

type ListProviderBookingsUseCase struct {
	bookingRepo repository.BookingRepository
	views       *ViewAssembler
}

func NewListProviderBookingsUseCase(bookingRepo repository.BookingRepository, views *ViewAssembler) *ListProviderBookingsUseCase {
	return &ListProviderBookingsUseCase{bookingRepo: bookingRepo, views: views}
}

// Execute lists bookings currently assigned to the provider. With pendingOnly
// it returns only requests still waiting for an answer.
func (uc *ListProviderBookingsUseCase) Execute(ctx context.Context, providerID uuid.UUID, pendingOnly bool) ([]*BookingView, error) {
	var status *valueobject.BookingStatus
	if pendingOnly {
		requested := valueobject.BookingStatusRequested
		status = &requested
	}

	bookings, err := uc.bookingRepo.FindByProviderID(ctx, providerID, status)
	if err != nil {
		return nil, err
	}
	return uc.views.Build(ctx, bookings, &providerID)
}

type AdminListBookingsUseCase struct {
	bookingRepo repository.BookingRepository
	views       *ViewAssembler
}

func NewAdminListBookingsUseCase(bookingRepo repository.BookingRepository, views *ViewAssembler) *AdminListBookingsUseCase {
	return &AdminListBookingsUseCase{bookingRepo: bookingRepo, views: views}
}

func (uc *AdminListBookingsUseCase) Execute(ctx context.Context, filter repository.BookingFilter) ([]*BookingView, int, error) {
	if filter.Status != "" {
		status, err := valueobject.NewBookingStatus(filter.Status)
		if err != nil {
			return nil, 0, err
		}
		filter.Status = string(status)
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = 20
	case filter.Limit > 100:
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	bookings, total, err := uc.bookingRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	views, err := uc.views.Build(ctx, bookings, nil)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}
