package booking_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

// mockBookingRepository хранит копии, чтобы проверка версии работала как в БД.
type mockBookingRepository struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]entity.Booking
	// afterFind вызывается после каждого FindByID, вне блокировки.
	afterFind func()
}

func newMockBookingRepository() *mockBookingRepository {
	return &mockBookingRepository{bookings: make(map[uuid.UUID]entity.Booking)}
}

func (m *mockBookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = *b
	return nil
}

func (m *mockBookingRepository) Update(ctx context.Context, b *entity.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.bookings[b.ID]
	if !ok {
		return apperror.ErrBookingNotFound
	}
	if stored.Version != b.Version {
		return apperror.ErrConcurrentUpdate
	}
	b.Version++
	m.bookings[b.ID] = *b
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	m.mu.Lock()
	b, ok := m.bookings[id]
	m.mu.Unlock()
	if m.afterFind != nil {
		m.afterFind()
	}
	if !ok {
		return nil, apperror.ErrBookingNotFound
	}
	return &b, nil
}

func (m *mockBookingRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Booking
	for _, b := range m.bookings {
		if b.ClientID == clientID {
			b := b
			out = append(out, &b)
		}
	}
	return out, nil
}

func (m *mockBookingRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID, status *valueobject.BookingStatus) ([]*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Booking
	for _, b := range m.bookings {
		if !b.IsAssignedProvider(providerID) {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		b := b
		out = append(out, &b)
	}
	return out, nil
}

func (m *mockBookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]*entity.Booking, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Booking
	for _, b := range m.bookings {
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		b := b
		out = append(out, &b)
	}
	return out, len(out), nil
}

func (m *mockBookingRepository) get(id uuid.UUID) entity.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id]
}

type mockUserRepository struct {
	users map[uuid.UUID]*entity.User
}

func newMockUserRepository(users ...*entity.User) *mockUserRepository {
	m := &mockUserRepository{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, u *entity.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, apperror.ErrUserNotFound
}

func (m *mockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.User, error) {
	out := make(map[uuid.UUID]*entity.User)
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (m *mockUserRepository) UpdateRole(ctx context.Context, u *entity.User) error {
	m.users[u.ID] = u
	return nil
}

type mockCategoryRepository struct {
	categories map[uuid.UUID]*entity.Category
}

func newMockCategoryRepository(categories ...*entity.Category) *mockCategoryRepository {
	m := &mockCategoryRepository{categories: make(map[uuid.UUID]*entity.Category)}
	for _, c := range categories {
		m.categories[c.ID] = c
	}
	return m
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, apperror.ErrCategoryNotFound
}

func (m *mockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	for _, c := range m.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, apperror.ErrCategoryNotFound
}

func (m *mockCategoryRepository) Upsert(ctx context.Context, c *entity.Category) error {
	m.categories[c.ID] = c
	return nil
}

type mockProviderRepository struct {
	byUser map[uuid.UUID]*entity.ProviderProfile
}

func newMockProviderRepository(profiles ...*entity.ProviderProfile) *mockProviderRepository {
	m := &mockProviderRepository{byUser: make(map[uuid.UUID]*entity.ProviderProfile)}
	for _, p := range profiles {
		m.byUser[p.UserID] = p
	}
	return m
}

func (m *mockProviderRepository) Save(ctx context.Context, p *entity.ProviderProfile) error {
	m.byUser[p.UserID] = p
	return nil
}

func (m *mockProviderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProviderProfile, error) {
	for _, p := range m.byUser {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperror.ErrProfileNotFound
}

func (m *mockProviderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ProviderProfile, error) {
	if p, ok := m.byUser[userID]; ok {
		return p, nil
	}
	return nil, apperror.ErrProfileNotFound
}

func (m *mockProviderRepository) FindCandidates(ctx context.Context, categoryID uuid.UUID, postalCode, city string) ([]*entity.ProviderProfile, error) {
	return nil, nil
}

func (m *mockProviderRepository) List(ctx context.Context) ([]*entity.ProviderProfile, error) {
	return nil, nil
}

func (m *mockProviderRepository) UpdateVerification(ctx context.Context, p *entity.ProviderProfile) error {
	return nil
}

func (m *mockProviderRepository) UpdatePhoto(ctx context.Context, profileID uuid.UUID, photoURL string) error {
	return nil
}

type mockRatingRepository struct {
	ratings map[uuid.UUID]*entity.Rating
}

func newMockRatingRepository() *mockRatingRepository {
	return &mockRatingRepository{ratings: make(map[uuid.UUID]*entity.Rating)}
}

func (m *mockRatingRepository) Create(ctx context.Context, r *entity.Rating) error {
	if _, ok := m.ratings[r.BookingID]; ok {
		return apperror.ErrAlreadyRated
	}
	m.ratings[r.BookingID] = r
	return nil
}

func (m *mockRatingRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Rating, error) {
	return m.ratings[bookingID], nil
}

func (m *mockRatingRepository) StatsForProviders(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.RatingStats, error) {
	return map[uuid.UUID]entity.RatingStats{}, nil
}

type mockMessageRepository struct {
	messages []*entity.Message
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *entity.Message) error {
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockMessageRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, msg := range m.messages {
		if msg.BookingID == bookingID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *mockMessageRepository) MarkReadFor(ctx context.Context, bookingID, readerID uuid.UUID) (int, error) {
	n := 0
	for _, msg := range m.messages {
		if msg.BookingID == bookingID && msg.SenderID != readerID && !msg.IsRead {
			msg.IsRead = true
			n++
		}
	}
	return n, nil
}

func (m *mockMessageRepository) CountUnread(ctx context.Context, bookingID, viewerID uuid.UUID) (int, error) {
	n := 0
	for _, msg := range m.messages {
		if msg.BookingID == bookingID && msg.SenderID != viewerID && !msg.IsRead {
			n++
		}
	}
	return n, nil
}

type recordingSink struct {
	mu     sync.Mutex
	events []entity.BookingEvent
	err    error
}

func (s *recordingSink) Notify(ctx context.Context, event entity.BookingEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSink) last() entity.BookingEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events[len(s.events)-1]
}

func repositoryFilter(status string) repository.BookingFilter {
	return repository.BookingFilter{Status: status}
}
