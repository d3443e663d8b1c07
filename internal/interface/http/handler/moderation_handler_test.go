package handler

import (
	"context"
	"encoding/json"
	"net/http"
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
	"github.com/ignatzorin/servantin-backend/internal/usecase/report"
)

type memReports struct {
	items map[uuid.UUID]*entity.Report
}

func (m *memReports) Create(ctx context.Context, r *entity.Report) error {
	m.items[r.ID] = r
	return nil
}

func (m *memReports) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	if r, ok := m.items[id]; ok {
		return r, nil
	}
	return nil, apperror.ErrReportNotFound
}

func (m *memReports) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Report, error) {
	var out []*entity.Report
	for _, r := range m.items {
		if r.ReporterID == userID || (r.ReportedUserID != nil && *r.ReportedUserID == userID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReports) List(ctx context.Context, f repository.ReportFilter) ([]*entity.Report, int, error) {
	var out []*entity.Report
	for _, r := range m.items {
		if f.Status == "" || r.Status == f.Status {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (m *memReports) Update(ctx context.Context, r *entity.Report) error {
	m.items[r.ID] = r
	return nil
}

func (m *memReports) CountByStatus(ctx context.Context) (map[valueobject.ReportStatus]int, error) {
	counts := make(map[valueobject.ReportStatus]int)
	for _, r := range m.items {
		counts[r.Status]++
	}
	return counts, nil
}

type moderationFixture struct {
	router   *gin.Engine
	reporter uuid.UUID
	provider uuid.UUID
	admin    uuid.UUID
	booking  *entity.Booking
}

func setupModerationRouter(t *testing.T) *moderationFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &moderationFixture{reporter: uuid.New(), provider: uuid.New(), admin: uuid.New()}
	b, err := entity.NewBooking(entity.NewBookingParams{
		ClientID:   f.reporter,
		CategoryID: uuid.New(),
		ProviderID: &f.provider,
		PostalCode: "2800",
		City:       "Delémont",
	})
	require.NoError(t, err)
	f.booking = b

	stubs := &viewStubs{
		categories: map[uuid.UUID]*entity.Category{b.CategoryID: {ID: b.CategoryID, Slug: "cleaning", Name: "Cleaning"}},
		users: map[uuid.UUID]*entity.User{
			f.reporter: {ID: f.reporter, Name: "Claire", Email: "claire@example.ch", Role: valueobject.RoleClient},
			f.provider: {ID: f.provider, Name: "Marc", Role: valueobject.RoleProvider},
			f.admin:    {ID: f.admin, Name: "Ops", Role: valueobject.RoleAdmin},
		},
		unread: map[uuid.UUID]int{f.provider: 2, f.reporter: 1},
	}
	users := viewUsers{stubs}
	bookings := &stubBookings{items: map[uuid.UUID]entity.Booking{b.ID: *b}}
	reports := &memReports{items: make(map[uuid.UUID]*entity.Report)}

	views := booking.NewViewAssembler(stubs, users, viewRatings{}, viewMessages{stubs})
	admin := NewAdminHandler(nil, booking.NewAdminSetStatusUseCase(bookings, nil), nil, nil, views)
	reportHandler := NewReportHandler(
		report.NewCreateReportUseCase(reports, users, bookings),
		report.NewListMyReportsUseCase(reports, users),
	)
	moderation := NewModerationHandler(ModerationUseCases{
		ListReports:  report.NewListReportsUseCase(reports, users),
		UpdateReport: report.NewUpdateReportStatusUseCase(reports, users),
		ReportStats:  report.NewReportStatisticsUseCase(reports),
	})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id, err := uuid.Parse(c.GetHeader("X-User")); err == nil {
			c.Set(middleware.ContextUserIDKey, id)
		}
		c.Next()
	})
	r.POST("/admin/bookings/:id/status", admin.SetStatus)
	r.POST("/reports", reportHandler.Create)
	r.POST("/reports/my-reports", reportHandler.Mine)
	r.POST("/admin/reports/status/:status", moderation.ListReports)
	r.POST("/admin/reports/:id/status", moderation.UpdateReportStatus)
	r.POST("/admin/reports/statistics", moderation.ReportStatistics)
	f.router = r
	return f
}

func TestAdminHandler_SetStatusReturnsAdminView(t *testing.T) {
	f := setupModerationRouter(t)

	w, out := do(f.router, "/admin/bookings/"+f.booking.ID.String()+"/status", f.admin, map[string]string{"status": "CANCELED"})
	require.Equal(t, http.StatusOK, w.Code)

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
	require.NoError(t, json.Unmarshal(out.Data, &resp))
	assert.Equal(t, "CANCELED", resp.Status)
	assert.Equal(t, "Cleaning", resp.Category.Name)
	assert.Equal(t, "Claire", resp.Client.Name)
	require.NotNil(t, resp.Provider)
	assert.Equal(t, "Marc", resp.Provider.Name)
	assert.Zero(t, resp.Unread)
}

func TestReportHandler_CreateAndModerate(t *testing.T) {
	f := setupModerationRouter(t)

	w, out := do(f.router, "/reports", f.reporter, map[string]string{
		"reported_user_id":    f.provider.String(),
		"reported_booking_id": f.booking.ID.String(),
		"report_type":         "FRAUD",
		"description":         "asked to be paid in cash outside the app",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID       uuid.UUID `json:"id"`
		Status   string    `json:"status"`
		Reporter struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"reporter"`
		ReportedUser struct {
			Name string `json:"name"`
		} `json:"reported_user"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &created))
	assert.Equal(t, "PENDING", created.Status)
	assert.Equal(t, "claire@example.ch", created.Reporter.Email)
	assert.Equal(t, "Marc", created.ReportedUser.Name)

	// Жалоба видна и автору, и тому, на кого она подана.
	for _, user := range []uuid.UUID{f.reporter, f.provider} {
		w, out = do(f.router, "/reports/my-reports", user, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var mine []map[string]any
		require.NoError(t, json.Unmarshal(out.Data, &mine))
		assert.Len(t, mine, 1)
	}

	w, out = do(f.router, "/admin/reports/"+created.ID.String()+"/status", f.admin, map[string]string{
		"status":      "resolved",
		"admin_notes": "warned the provider",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resolved struct {
		Status     string `json:"status"`
		AdminNotes string `json:"admin_notes"`
		ResolvedBy struct {
			Name string `json:"name"`
		} `json:"resolved_by"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &resolved))
	assert.Equal(t, "RESOLVED", resolved.Status)
	assert.Equal(t, "warned the provider", resolved.AdminNotes)
	assert.Equal(t, "Ops", resolved.ResolvedBy.Name)

	w, _ = do(f.router, "/admin/reports/"+created.ID.String()+"/status", f.admin, map[string]string{"status": "PENDING"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, out = do(f.router, "/admin/reports/status/RESOLVED", f.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page []map[string]any
	require.NoError(t, json.Unmarshal(out.Data, &page))
	assert.Len(t, page, 1)

	w, out = do(f.router, "/admin/reports/statistics", f.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]int
	require.NoError(t, json.Unmarshal(out.Data, &stats))
	assert.Equal(t, map[string]int{"pending": 0, "investigating": 0, "resolved": 1, "dismissed": 0, "total": 1}, stats)
}

func TestReportHandler_Rejects(t *testing.T) {
	f := setupModerationRouter(t)

	tests := []struct {
		name    string
		user    uuid.UUID
		payload map[string]string
		code    int
	}{
		{"anonymous", uuid.Nil, map[string]string{"report_type": "SPAM", "description": "spam in the booking chat"}, http.StatusUnauthorized},
		{"short description", f.reporter, map[string]string{"reported_user_id": f.provider.String(), "report_type": "SPAM", "description": "spam"}, http.StatusBadRequest},
		{"bad user id", f.reporter, map[string]string{"reported_user_id": "nope", "report_type": "SPAM", "description": "spam in the booking chat"}, http.StatusBadRequest},
		{"no target", f.reporter, map[string]string{"report_type": "SPAM", "description": "spam in the booking chat"}, http.StatusBadRequest},
		{"unknown booking", f.reporter, map[string]string{"reported_booking_id": uuid.NewString(), "report_type": "SPAM", "description": "spam in the booking chat"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := do(f.router, "/reports", tt.user, tt.payload)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}
