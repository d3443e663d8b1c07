package booking_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
	"github.com/ignatzorin/servantin-backend/internal/usecase/booking"
)

type fixture struct {
	bookings  *mockBookingRepository
	users     *mockUserRepository
	cats      *mockCategoryRepository
	providers *mockProviderRepository
	ratings   *mockRatingRepository
	messages  *mockMessageRepository
	sink      *recordingSink
	events    *booking.EventPublisher

	client   *entity.User
	provider *entity.User
	other    *entity.User
	category *entity.Category
}

func newFixture() *fixture {
	f := &fixture{
		client:   &entity.User{ID: uuid.New(), Name: "Claire", Role: valueobject.RoleClient},
		provider: &entity.User{ID: uuid.New(), Name: "Marc", Role: valueobject.RoleProvider},
		other:    &entity.User{ID: uuid.New(), Name: "Léa", Role: valueobject.RoleProvider},
		category: &entity.Category{ID: uuid.New(), Slug: "cleaning", Name: "Cleaning", IsActive: true},
	}
	f.bookings = newMockBookingRepository()
	f.users = newMockUserRepository(f.client, f.provider, f.other)
	f.cats = newMockCategoryRepository(f.category)
	f.providers = newMockProviderRepository(
		&entity.ProviderProfile{ID: uuid.New(), UserID: f.provider.ID},
		&entity.ProviderProfile{ID: uuid.New(), UserID: f.other.ID},
	)
	f.ratings = newMockRatingRepository()
	f.messages = &mockMessageRepository{}
	f.sink = &recordingSink{}
	f.events = booking.NewEventPublisher(f.sink, f.users, f.cats)
	return f
}

func (f *fixture) create(t *testing.T, withProvider bool) *entity.Booking {
	t.Helper()
	uc := booking.NewCreateBookingUseCase(f.bookings, f.cats, f.users, f.providers, f.events)

	input := booking.CreateBookingInput{
		ClientID:    f.client.ID,
		CategoryID:  f.category.ID,
		Description: "Weekly apartment cleaning",
		PostalCode:  "2800",
		City:        "Delémont",
	}
	if withProvider {
		input.ProviderID = &f.provider.ID
	}

	b, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)
	return b
}

func (f *fixture) accept() *booking.AcceptBookingUseCase {
	return booking.NewAcceptBookingUseCase(f.bookings, f.events)
}

func (f *fixture) decline() *booking.DeclineBookingUseCase {
	return booking.NewDeclineBookingUseCase(f.bookings, f.events)
}

func (f *fixture) complete() *booking.CompleteBookingUseCase {
	return booking.NewCompleteBookingUseCase(f.bookings, f.events)
}

func (f *fixture) cancel() *booking.CancelBookingUseCase {
	return booking.NewCancelBookingUseCase(f.bookings, f.events)
}

func TestCreateBooking_NotifiesProvider(t *testing.T) {
	f := newFixture()
	b := f.create(t, true)

	assert.Equal(t, valueobject.BookingStatusRequested, b.Status)
	require.Len(t, f.sink.events, 1)

	ev := f.sink.last()
	assert.Equal(t, entity.EventBookingRequested, ev.Type)
	assert.Equal(t, []uuid.UUID{f.provider.ID}, ev.Recipients)
	assert.Equal(t, "Claire", ev.ClientName)
	assert.Equal(t, "Marc", ev.ProviderName)
	assert.Equal(t, "Cleaning", ev.CategoryName)
}

func TestCreateBooking_WithoutProviderIsSilent(t *testing.T) {
	f := newFixture()
	b := f.create(t, false)

	assert.Nil(t, b.ProviderID)
	assert.Empty(t, f.sink.events)
}

func TestCreateBooking_Validation(t *testing.T) {
	f := newFixture()
	uc := booking.NewCreateBookingUseCase(f.bookings, f.cats, f.users, f.providers, f.events)
	ctx := context.Background()

	t.Run("unknown category", func(t *testing.T) {
		_, err := uc.Execute(ctx, booking.CreateBookingInput{ClientID: f.client.ID, CategoryID: uuid.New(), PostalCode: "2800", City: "Delémont"})
		assert.ErrorIs(t, err, apperror.ErrCategoryNotFound)
	})

	t.Run("provider is not a provider", func(t *testing.T) {
		stranger := &entity.User{ID: uuid.New(), Role: valueobject.RoleClient}
		f.users.users[stranger.ID] = stranger
		_, err := uc.Execute(ctx, booking.CreateBookingInput{ClientID: f.client.ID, CategoryID: f.category.ID, ProviderID: &stranger.ID, PostalCode: "2800", City: "Delémont"})
		assert.ErrorIs(t, err, apperror.ErrProviderNotFound)
	})

	t.Run("missing city", func(t *testing.T) {
		_, err := uc.Execute(ctx, booking.CreateBookingInput{ClientID: f.client.ID, CategoryID: f.category.ID, PostalCode: "2800"})
		assert.True(t, apperror.IsValidation(err))
	})

	assert.Empty(t, f.bookings.bookings)
}

func TestAcceptBooking_Success(t *testing.T) {
	f := newFixture()
	b := f.create(t, true)

	got, err := f.accept().Execute(context.Background(), b.ID, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.BookingStatusAccepted, got.Status)
	assert.Equal(t, 1, f.bookings.get(b.ID).Version)

	ev := f.sink.last()
	assert.Equal(t, entity.EventBookingAccepted, ev.Type)
	assert.Equal(t, []uuid.UUID{f.client.ID}, ev.Recipients)
}

func TestAcceptBooking_WrongProvider(t *testing.T) {
	f := newFixture()
	b := f.create(t, true)

	_, err := f.accept().Execute(context.Background(), b.ID, f.other.ID)
	assert.True(t, apperror.IsForbidden(err))
	assert.Equal(t, valueobject.BookingStatusRequested, f.bookings.get(b.ID).Status)
}

func TestProviderActions_RequireAssignedProvider(t *testing.T) {
	type action func(f *fixture, id, actor uuid.UUID) error
	actions := map[string]action{
		"accept": func(f *fixture, id, actor uuid.UUID) error {
			_, err := f.accept().Execute(context.Background(), id, actor)
			return err
		},
		"decline": func(f *fixture, id, actor uuid.UUID) error {
			_, err := f.decline().Execute(context.Background(), id, actor, "")
			return err
		},
		"complete": func(f *fixture, id, actor uuid.UUID) error {
			_, err := f.complete().Execute(context.Background(), id, actor)
			return err
		},
	}

	for name, act := range actions {
		t.Run(name+" by another provider", func(t *testing.T) {
			f := newFixture()
			b := f.create(t, true)
			if name == "complete" {
				_, err := f.accept().Execute(context.Background(), b.ID, f.provider.ID)
				require.NoError(t, err)
			}
			before := f.bookings.get(b.ID)
			events := len(f.sink.events)

			err := act(f, b.ID, f.other.ID)
			assert.ErrorIs(t, err, apperror.ErrNotAssignedProvider)
			assert.Equal(t, before.Status, f.bookings.get(b.ID).Status)
			assert.Equal(t, before.Version, f.bookings.get(b.ID).Version)
			assert.Len(t, f.sink.events, events)
		})

		t.Run(name+" without assigned provider", func(t *testing.T) {
			f := newFixture()
			b := f.create(t, false)

			for _, actor := range []uuid.UUID{f.provider.ID, f.client.ID} {
				err := act(f, b.ID, actor)
				assert.True(t, apperror.IsForbidden(err), "actor %s", actor)
			}
			assert.Equal(t, valueobject.BookingStatusRequested, f.bookings.get(b.ID).Status)
			assert.Nil(t, f.bookings.get(b.ID).ProviderID)
			assert.Zero(t, f.bookings.get(b.ID).Version)
			assert.Empty(t, f.sink.events)
		})
	}
}

func TestDeclineThenAccept_IsForbidden(t *testing.T) {
	f := newFixture()
	b := f.create(t, true)
	ctx := context.Background()

	declined, err := f.decline().Execute(ctx, b.ID, f.provider.ID, "fully booked")
	require.NoError(t, err)
	assert.Equal(t, valueobject.BookingStatusDeclined, declined.Status)
	assert.Nil(t, f.bookings.get(b.ID).ProviderID)

	ev := f.sink.last()
	assert.Equal(t, entity.EventBookingDeclined, ev.Type)
	assert.Equal(t, "fully booked", ev.Reason)
	require.NotNil(t, ev.ProviderID)
	assert.Equal(t, f.provider.ID, *ev.ProviderID)

	_, err = f.accept().Execute(ctx, b.ID, f.provider.ID)
	assert.ErrorIs(t, err, apperror.ErrNotAssignedProvider)
}

func TestCompleteThenCancel_IsInvalidTransition(t *testing.T) {
	f := newFixture()
	b := f.create(t, true)
	ctx := context.Background()

	_, err := f.accept().Execute(ctx, b.ID, f.provider.ID)
	require.NoError(t, err)
	_, err = f.complete().Execute(ctx, b.ID, f.provider.ID)
	require.NoError(t, err)

	_, err = f.cancel().Execute(ctx, b.ID, f.client.ID)
	assert.True(t, apperror.IsInvalidStateTransition(err))
	assert.Equal(t, valueobject.BookingStatusCompleted, f.bookings.get(b.ID).Status)
}

func TestCompleteRequested_IsInvalidTransition(t *testing.T) {
	f := newFixture()
	b := f.create(t, true)

	_, err := f.complete().Execute(context.Background(), b.ID, f.provider.ID)
	assert.True(t, apperror.IsInvalidStateTransition(err))
}

func TestCancelBooking_NotifiesCounterpart(t *testing.T) {
	f := newFixture()
	b := f.create(t, true)

	_, err := f.cancel().Execute(context.Background(), b.ID, f.provider.ID)
	require.NoError(t, err)

	ev := f.sink.last()
	assert.Equal(t, entity.EventBookingCanceled, ev.Type)
	assert.Equal(t, []uuid.UUID{f.client.ID}, ev.Recipients)
}

func TestCancelBooking_ByStranger(t *testing.T) {
	f := newFixture()
	b := f.create(t, true)

	_, err := f.cancel().Execute(context.Background(), b.ID, f.other.ID)
	assert.ErrorIs(t, err, apperror.ErrNotBookingParty)
}

func TestAcceptAndDecline_Concurrent(t *testing.T) {
	f := newFixture()
	b := f.create(t, true)

	// Обе операции должны прочитать бронь до того, как любая из них запишет.
	var barrier sync.WaitGroup
	barrier.Add(2)
	f.bookings.afterFind = func() {
		barrier.Done()
		barrier.Wait()
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = f.accept().Execute(context.Background(), b.ID, f.provider.ID)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = f.decline().Execute(context.Background(), b.ID, f.provider.ID, "")
	}()
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperror.ErrConcurrentUpdate)
		assert.True(t, apperror.IsInvalidStateTransition(err))
	}
	assert.Equal(t, 1, succeeded)

	stored := f.bookings.get(b.ID)
	assert.Equal(t, 1, stored.Version)
	assert.Contains(t, []valueobject.BookingStatus{valueobject.BookingStatusAccepted, valueobject.BookingStatusDeclined}, stored.Status)
}

func TestSinkFailure_DoesNotFailTransition(t *testing.T) {
	f := newFixture()
	b := f.create(t, true)
	f.sink.err = errors.New("smtp down")

	got, err := f.accept().Execute(context.Background(), b.ID, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.BookingStatusAccepted, got.Status)
	assert.Equal(t, valueobject.BookingStatusAccepted, f.bookings.get(b.ID).Status)
}

func TestAssignProvider_AfterDecline(t *testing.T) {
	f := newFixture()
	b := f.create(t, true)
	ctx := context.Background()

	_, err := f.decline().Execute(ctx, b.ID, f.provider.ID, "")
	require.NoError(t, err)

	uc := booking.NewAssignProviderUseCase(f.bookings, f.users, f.providers, f.events)

	_, err = uc.Execute(ctx, b.ID, f.client.ID, f.client.ID)
	assert.ErrorIs(t, err, apperror.ErrProviderNotFound)

	got, err := uc.Execute(ctx, b.ID, f.client.ID, f.other.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.BookingStatusRequested, got.Status)
	assert.True(t, got.IsAssignedProvider(f.other.ID))
	assert.Equal(t, []uuid.UUID{f.other.ID}, f.sink.last().Recipients)

	_, err = f.accept().Execute(ctx, b.ID, f.other.ID)
	require.NoError(t, err)
}

func TestAdminSetStatus(t *testing.T) {
	f := newFixture()
	b := f.create(t, true)
	uc := booking.NewAdminSetStatusUseCase(f.bookings, f.events)
	ctx := context.Background()

	got, err := uc.Execute(ctx, b.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, valueobject.BookingStatusCompleted, got.Status)

	// Администратор может вывести бронь даже из терминального статуса.
	got, err = uc.Execute(ctx, b.ID, "REQUESTED")
	require.NoError(t, err)
	assert.Equal(t, valueobject.BookingStatusRequested, got.Status)

	ev := f.sink.last()
	assert.Equal(t, entity.EventBookingStatusChanged, ev.Type)
	assert.ElementsMatch(t, []uuid.UUID{f.client.ID, f.provider.ID}, ev.Recipients)

	_, err = uc.Execute(ctx, b.ID, "ARCHIVED")
	assert.True(t, apperror.IsValidation(err))
}

func TestGetBooking_AccessControl(t *testing.T) {
	f := newFixture()
	b := f.create(t, true)
	views := booking.NewViewAssembler(f.cats, f.users, f.ratings, f.messages)
	uc := booking.NewGetBookingUseCase(f.bookings, views)
	ctx := context.Background()

	view, err := uc.Execute(ctx, b.ID, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Marc", view.Provider.Name)
	assert.Equal(t, "Cleaning", view.Category.Name)

	_, err = uc.Execute(ctx, b.ID, f.other.ID)
	assert.ErrorIs(t, err, apperror.ErrNotBookingParty)

	_, err = uc.Execute(ctx, uuid.New(), f.client.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestMessages_UnreadCount(t *testing.T) {
	f := newFixture()
	b := f.create(t, true)
	ctx := context.Background()

	send := booking.NewSendMessageUseCase(f.bookings, f.messages, f.events)
	list := booking.NewListMessagesUseCase(f.bookings, f.messages)
	views := booking.NewViewAssembler(f.cats, f.users, f.ratings, f.messages)
	get := booking.NewGetBookingUseCase(f.bookings, views)

	_, err := send.Execute(ctx, b.ID, f.client.ID, "Is Tuesday fine?")
	require.NoError(t, err)
	_, err = send.Execute(ctx, b.ID, f.client.ID, "Or Wednesday?")
	require.NoError(t, err)

	ev := f.sink.last()
	assert.Equal(t, entity.EventMessageReceived, ev.Type)
	assert.Equal(t, "Or Wednesday?", ev.Preview)

	view, err := get.Execute(ctx, b.ID, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.UnreadMessageCount)

	view, err = get.Execute(ctx, b.ID, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.UnreadMessageCount)

	msgs, err := list.Execute(ctx, b.ID, f.provider.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)

	view, err = get.Execute(ctx, b.ID, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.UnreadMessageCount)

	_, err = send.Execute(ctx, b.ID, f.other.ID, "hi")
	assert.ErrorIs(t, err, apperror.ErrNotBookingParty)
	_, err = list.Execute(ctx, b.ID, f.other.ID)
	assert.ErrorIs(t, err, apperror.ErrNotBookingParty)
}

func TestRateBooking(t *testing.T) {
	f := newFixture()
	b := f.create(t, true)
	ctx := context.Background()
	rate := booking.NewRateBookingUseCase(f.bookings, f.ratings)
	input := booking.RateBookingInput{BookingID: b.ID, ClientID: f.client.ID, Score: 5}

	_, err := rate.Execute(ctx, input)
	assert.True(t, apperror.IsInvalidStateTransition(err))

	_, err = f.accept().Execute(ctx, b.ID, f.provider.ID)
	require.NoError(t, err)
	_, err = f.complete().Execute(ctx, b.ID, f.provider.ID)
	require.NoError(t, err)

	_, err = rate.Execute(ctx, booking.RateBookingInput{BookingID: b.ID, ClientID: f.provider.ID, Score: 5})
	assert.True(t, apperror.IsForbidden(err))

	rating, err := rate.Execute(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, f.provider.ID, rating.ProviderID)

	_, err = rate.Execute(ctx, input)
	assert.ErrorIs(t, err, apperror.ErrAlreadyRated)
}

func TestListProviderBookings_PendingOnly(t *testing.T) {
	f := newFixture()
	first := f.create(t, true)
	f.create(t, true)
	ctx := context.Background()

	_, err := f.accept().Execute(ctx, first.ID, f.provider.ID)
	require.NoError(t, err)

	views := booking.NewViewAssembler(f.cats, f.users, f.ratings, f.messages)
	uc := booking.NewListProviderBookingsUseCase(f.bookings, views)

	all, err := uc.Execute(ctx, f.provider.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := uc.Execute(ctx, f.provider.ID, true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, valueobject.BookingStatusRequested, pending[0].Booking.Status)
}

func TestAdminListBookings_RejectsUnknownStatus(t *testing.T) {
	f := newFixture()
	f.create(t, false)
	views := booking.NewViewAssembler(f.cats, f.users, f.ratings, f.messages)
	uc := booking.NewAdminListBookingsUseCase(f.bookings, views)

	_, _, err := uc.Execute(context.Background(), repositoryFilter("paid"))
	assert.True(t, apperror.IsValidation(err))

	list, total, err := uc.Execute(context.Background(), repositoryFilter("requested"))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, list, 1)
}
