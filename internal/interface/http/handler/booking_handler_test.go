package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/http/middleware"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
	"github.com/ignatzorin/servantin-backend/internal/usecase/booking"
)

type stubBookings struct {
	items map[uuid.UUID]entity.Booking
}

func (s *stubBookings) Create(ctx context.Context, b *entity.Booking) error {
	s.items[b.ID] = *b
	return nil
}

func (s *stubBookings) Update(ctx context.Context, b *entity.Booking) error {
	if s.items[b.ID].Version != b.Version {
		return apperror.ErrConcurrentUpdate
	}
	b.Version++
	s.items[b.ID] = *b
	return nil
}

func (s *stubBookings) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	b, ok := s.items[id]
	if !ok {
		return nil, apperror.ErrBookingNotFound
	}
	return &b, nil
}

func (s *stubBookings) FindByClientID(ctx context.Context, id uuid.UUID) ([]*entity.Booking, error) {
	return nil, nil
}

func (s *stubBookings) FindByProviderID(ctx context.Context, id uuid.UUID, status *valueobject.BookingStatus) ([]*entity.Booking, error) {
	return nil, nil
}

func (s *stubBookings) List(ctx context.Context, f repository.BookingFilter) ([]*entity.Booking, int, error) {
	return nil, 0, nil
}

type viewStubs struct {
	categories map[uuid.UUID]*entity.Category
	users      map[uuid.UUID]*entity.User
	unread     map[uuid.UUID]int
}

func (v *viewStubs) List(ctx context.Context) ([]*entity.Category, error) { return nil, nil }

func (v *viewStubs) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	if c, ok := v.categories[id]; ok {
		return c, nil
	}
	return nil, apperror.ErrCategoryNotFound
}

func (v *viewStubs) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return nil, apperror.ErrCategoryNotFound
}

func (v *viewStubs) Upsert(ctx context.Context, c *entity.Category) error { return nil }

type viewUsers struct{ *viewStubs }

func (u viewUsers) Create(ctx context.Context, user *entity.User) error { return nil }

func (u viewUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if user, ok := u.users[id]; ok {
		return user, nil
	}
	return nil, apperror.ErrUserNotFound
}

func (u viewUsers) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.User, error) {
	out := make(map[uuid.UUID]*entity.User, len(ids))
	for _, id := range ids {
		if user, ok := u.users[id]; ok {
			out[id] = user
		}
	}
	return out, nil
}

func (u viewUsers) UpdateRole(ctx context.Context, user *entity.User) error { return nil }

type viewRatings struct{}

func (viewRatings) Create(ctx context.Context, r *entity.Rating) error { return nil }

func (viewRatings) FindByBookingID(ctx context.Context, id uuid.UUID) (*entity.Rating, error) {
	return nil, nil
}

func (viewRatings) StatsForProviders(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.RatingStats, error) {
	return nil, nil
}

type viewMessages struct{ *viewStubs }

func (m viewMessages) Create(ctx context.Context, msg *entity.Message) error { return nil }

func (m viewMessages) ListByBooking(ctx context.Context, id uuid.UUID) ([]*entity.Message, error) {
	return nil, nil
}

func (m viewMessages) MarkReadFor(ctx context.Context, bookingID, readerID uuid.UUID) (int, error) {
	return 0, nil
}

func (m viewMessages) CountUnread(ctx context.Context, bookingID, viewerID uuid.UUID) (int, error) {
	return m.unread[viewerID], nil
}

type body struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupBookingRouter(t *testing.T) (*gin.Engine, *entity.Booking, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider := uuid.New()
	b, err := entity.NewBooking(entity.NewBookingParams{
		ClientID:   uuid.New(),
		CategoryID: uuid.New(),
		ProviderID: &provider,
		PostalCode: "2800",
		City:       "Delémont",
	})
	require.NoError(t, err)

	stubs := &viewStubs{
		categories: map[uuid.UUID]*entity.Category{b.CategoryID: {ID: b.CategoryID, Slug: "cleaning", Name: "Cleaning"}},
		users: map[uuid.UUID]*entity.User{
			b.ClientID: {ID: b.ClientID, Name: "Claire", Role: valueobject.RoleClient},
			provider:   {ID: provider, Name: "Marc", Role: valueobject.RoleProvider},
		},
		unread: map[uuid.UUID]int{provider: 2, b.ClientID: 1},
	}

	repo := &stubBookings{items: map[uuid.UUID]entity.Booking{b.ID: *b}}
	h := NewBookingHandler(BookingUseCases{
		Accept:  booking.NewAcceptBookingUseCase(repo, nil),
		Decline: booking.NewDeclineBookingUseCase(repo, nil),
		Cancel:  booking.NewCancelBookingUseCase(repo, nil),
		Rate:    booking.NewRateBookingUseCase(repo, nil),
		Views:   booking.NewViewAssembler(stubs, viewUsers{stubs}, viewRatings{}, viewMessages{stubs}),
	})

	r := gin.New()
	// Тестовая аутентификация: пользователь берётся из заголовка.
	r.Use(func(c *gin.Context) {
		if id, err := uuid.Parse(c.GetHeader("X-User")); err == nil {
			c.Set(middleware.ContextUserIDKey, id)
		}
		c.Next()
	})
	r.POST("/bookings/:id/accept", h.Accept)
	r.POST("/bookings/:id/decline", h.Decline)
	r.POST("/bookings/:id/cancel", h.Cancel)
	r.POST("/bookings/:id/rate", h.Rate)
	return r, b, provider
}

func do(r *gin.Engine, path string, user uuid.UUID, payload any) (*httptest.ResponseRecorder, body) {
	var buf bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&buf).Encode(payload)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != uuid.Nil {
		req.Header.Set("X-User", user.String())
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out body
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestBookingHandler_Accept(t *testing.T) {
	r, b, provider := setupBookingRouter(t)

	w, out := do(r, "/bookings/"+b.ID.String()+"/accept", provider, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, out.Success)

	var resp struct {
		Status  string `json:"status"`
		Version int    `json:"version"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &resp))
	assert.Equal(t, "ACCEPTED", resp.Status)
	assert.Equal(t, 1, resp.Version)

	w, out = do(r, "/bookings/"+b.ID.String()+"/accept", provider, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, out.Error)
	assert.Equal(t, "INVALID_STATE_TRANSITION", out.Error.Code)
}

func TestBookingHandler_TransitionReturnsViewerDetails(t *testing.T) {
	r, b, provider := setupBookingRouter(t)

	var resp struct {
		Status   string `json:"status"`
		Category struct {
			Name string `json:"name"`
		} `json:"category"`
		Client struct {
			Name string `json:"name"`
		} `json:"client"`
		Provider *struct {
			Name string `json:"name"`
		} `json:"provider"`
		Unread int `json:"unread_message_count"`
	}

	w, out := do(r, "/bookings/"+b.ID.String()+"/accept", provider, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(out.Data, &resp))
	assert.Equal(t, "ACCEPTED", resp.Status)
	assert.Equal(t, "Cleaning", resp.Category.Name)
	assert.Equal(t, "Claire", resp.Client.Name)
	require.NotNil(t, resp.Provider)
	assert.Equal(t, "Marc", resp.Provider.Name)
	assert.Equal(t, 2, resp.Unread)

	resp.Provider = nil
	w, out = do(r, "/bookings/"+b.ID.String()+"/cancel", b.ClientID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(out.Data, &resp))
	assert.Equal(t, "CANCELED", resp.Status)
	assert.Equal(t, 1, resp.Unread)
	require.NotNil(t, resp.Provider)
}

func TestBookingHandler_DeclineDropsProviderFromView(t *testing.T) {
	r, b, provider := setupBookingRouter(t)

	w, out := do(r, "/bookings/"+b.ID.String()+"/decline", provider, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(out.Data, &resp))
	assert.Equal(t, "DECLINED", resp["status"])
	assert.NotContains(t, resp, "provider")
	assert.EqualValues(t, 2, resp["unread_message_count"])
}

func TestBookingHandler_AcceptByStranger(t *testing.T) {
	r, b, _ := setupBookingRouter(t)

	w, out := do(r, "/bookings/"+b.ID.String()+"/accept", uuid.New(), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NotNil(t, out.Error)
	assert.Equal(t, "FORBIDDEN", out.Error.Code)
}

func TestBookingHandler_DeclineThenAccept(t *testing.T) {
	r, b, provider := setupBookingRouter(t)

	w, _ := do(r, "/bookings/"+b.ID.String()+"/decline", provider, map[string]string{"reason": "on holiday"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(r, "/bookings/"+b.ID.String()+"/accept", provider, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookingHandler_DeclineWithoutBody(t *testing.T) {
	r, b, provider := setupBookingRouter(t)

	w, _ := do(r, "/bookings/"+b.ID.String()+"/decline", provider, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookingHandler_Unauthorized(t *testing.T) {
	r, b, _ := setupBookingRouter(t)

	w, out := do(r, "/bookings/"+b.ID.String()+"/cancel", uuid.Nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, out.Success)
}

func TestBookingHandler_BadRequests(t *testing.T) {
	r, b, provider := setupBookingRouter(t)

	w, _ := do(r, "/bookings/not-a-uuid/accept", provider, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(r, "/bookings/"+uuid.NewString()+"/accept", provider, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, out := do(r, "/bookings/"+b.ID.String()+"/rate", b.ClientID, map[string]int{"score": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, out.Error)
	assert.Equal(t, "score must be between 1 and 5", out.Error.Message)
}
