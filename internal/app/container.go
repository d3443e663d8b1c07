package app

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/servantin-backend/internal/usecase/booking"
	"github.com/ignatzorin/servantin-backend/internal/usecase/catalog"
	"github.com/ignatzorin/servantin-backend/internal/usecase/identity"
	"github.com/ignatzorin/servantin-backend/internal/usecase/matching"
	"github.com/ignatzorin/servantin-backend/internal/usecase/notification"
	"github.com/ignatzorin/servantin-backend/internal/usecase/provider"
	"github.com/ignatzorin/servantin-backend/internal/usecase/report"
)

// Repositories набор адаптеров PostgreSQL.
type Repositories struct {
	Bookings      repository.BookingRepository
	Users         repository.UserRepository
	Categories    repository.CategoryRepository
	Providers     repository.ProviderRepository
	Ratings       repository.RatingRepository
	Messages      repository.MessageRepository
	Notifications repository.NotificationRepository
	Reports       repository.ReportRepository
	Documents     repository.DocumentRepository
}

func NewRepositories(db *sqlx.DB) Repositories {
	return Repositories{
		Bookings:      persistence.NewBookingRepositoryAdapter(db),
		Users:         persistence.NewUserRepositoryAdapter(db),
		Categories:    persistence.NewCategoryRepositoryAdapter(db),
		Providers:     persistence.NewProviderRepositoryAdapter(db),
		Ratings:       persistence.NewRatingRepositoryAdapter(db),
		Messages:      persistence.NewMessageRepositoryAdapter(db),
		Notifications: persistence.NewNotificationRepositoryAdapter(db),
		Reports:       persistence.NewReportRepositoryAdapter(db),
		Documents:     persistence.NewDocumentRepositoryAdapter(db),
	}
}

// UseCases все сценарии приложения, собранные поверх репозиториев.
// HTTP-сервер и CLI используют один и тот же набор.
type UseCases struct {
	CreateBooking  *booking.CreateBookingUseCase
	GetBooking     *booking.GetBookingUseCase
	ListClient     *booking.ListClientBookingsUseCase
	ListProvider   *booking.ListProviderBookingsUseCase
	Accept         *booking.AcceptBookingUseCase
	Decline        *booking.DeclineBookingUseCase
	Complete       *booking.CompleteBookingUseCase
	Cancel         *booking.CancelBookingUseCase
	AssignProvider *booking.AssignProviderUseCase
	AdminSetStatus *booking.AdminSetStatusUseCase
	AdminList      *booking.AdminListBookingsUseCase
	Rate           *booking.RateBookingUseCase
	SendMessage    *booking.SendMessageUseCase
	ListMessages   *booking.ListMessagesUseCase
	Views          *booking.ViewAssembler

	Match *matching.MatchProvidersUseCase

	ListCategories *catalog.ListCategoriesUseCase
	GetCategory    *catalog.GetCategoryUseCase

	Promote       *identity.PromoteToProviderUseCase
	GetProfile    *provider.GetProfileUseCase
	SaveProfile   *provider.SaveProfileUseCase
	ListProviders *provider.ListProvidersUseCase
	Verify        *provider.VerifyProviderUseCase
	UploadPhoto   *provider.UploadPhotoUseCase

	UploadDocument *provider.UploadDocumentUseCase
	ListDocuments  *provider.ListDocumentsUseCase
	VerifyDocument *provider.VerifyDocumentUseCase
	DocumentStats  *provider.DocumentStatisticsUseCase

	CreateReport *report.CreateReportUseCase
	MyReports    *report.ListMyReportsUseCase
	ListReports  *report.ListReportsUseCase
	GetReport    *report.GetReportUseCase
	UpdateReport *report.UpdateReportStatusUseCase
	ReportStats  *report.ReportStatisticsUseCase
	Dashboard    *report.DashboardStatsUseCase

	ListNotifications *notification.ListNotificationsUseCase
	CountUnread       *notification.CountUnreadUseCase
	MarkAllRead       *notification.MarkAllReadUseCase
}

// Options внешние зависимости сценариев.
type Options struct {
	Sink           repository.NotificationSink
	Photos         provider.PhotoStore
	Documents      provider.DocumentStore
	MediaPublicURL string
	MatchLocation  *time.Location
}

func NewUseCases(r Repositories, opts Options) *UseCases {
	events := booking.NewEventPublisher(opts.Sink, r.Users, r.Categories)
	views := booking.NewViewAssembler(r.Categories, r.Users, r.Ratings, r.Messages)
	promote := identity.NewPromoteToProviderUseCase(r.Users)

	uc := &UseCases{
		CreateBooking:  booking.NewCreateBookingUseCase(r.Bookings, r.Categories, r.Users, r.Providers, events),
		GetBooking:     booking.NewGetBookingUseCase(r.Bookings, views),
		ListClient:     booking.NewListClientBookingsUseCase(r.Bookings, views),
		ListProvider:   booking.NewListProviderBookingsUseCase(r.Bookings, views),
		Accept:         booking.NewAcceptBookingUseCase(r.Bookings, events),
		Decline:        booking.NewDeclineBookingUseCase(r.Bookings, events),
		Complete:       booking.NewCompleteBookingUseCase(r.Bookings, events),
		Cancel:         booking.NewCancelBookingUseCase(r.Bookings, events),
		AssignProvider: booking.NewAssignProviderUseCase(r.Bookings, r.Users, r.Providers, events),
		AdminSetStatus: booking.NewAdminSetStatusUseCase(r.Bookings, events),
		AdminList:      booking.NewAdminListBookingsUseCase(r.Bookings, views),
		Rate:           booking.NewRateBookingUseCase(r.Bookings, r.Ratings),
		SendMessage:    booking.NewSendMessageUseCase(r.Bookings, r.Messages, events),
		ListMessages:   booking.NewListMessagesUseCase(r.Bookings, r.Messages),
		Views:          views,

		Match: matching.NewMatchProvidersUseCase(r.Providers, r.Ratings, opts.MatchLocation),

		ListCategories: catalog.NewListCategoriesUseCase(r.Categories),
		GetCategory:    catalog.NewGetCategoryUseCase(r.Categories),

		Promote:       promote,
		GetProfile:    provider.NewGetProfileUseCase(r.Providers),
		SaveProfile:   provider.NewSaveProfileUseCase(r.Providers, r.Categories, r.Users, promote),
		ListProviders: provider.NewListProvidersUseCase(r.Providers),
		Verify:        provider.NewVerifyProviderUseCase(r.Providers),

		ListDocuments:  provider.NewListDocumentsUseCase(r.Providers, r.Documents),
		VerifyDocument: provider.NewVerifyDocumentUseCase(r.Documents),
		DocumentStats:  provider.NewDocumentStatisticsUseCase(r.Documents),

		CreateReport: report.NewCreateReportUseCase(r.Reports, r.Users, r.Bookings),
		MyReports:    report.NewListMyReportsUseCase(r.Reports, r.Users),
		ListReports:  report.NewListReportsUseCase(r.Reports, r.Users),
		GetReport:    report.NewGetReportUseCase(r.Reports, r.Users),
		UpdateReport: report.NewUpdateReportStatusUseCase(r.Reports, r.Users),
		ReportStats:  report.NewReportStatisticsUseCase(r.Reports),
		Dashboard:    report.NewDashboardStatsUseCase(r.Reports, r.Documents),

		ListNotifications: notification.NewListNotificationsUseCase(r.Notifications),
		CountUnread:       notification.NewCountUnreadUseCase(r.Notifications),
		MarkAllRead:       notification.NewMarkAllReadUseCase(r.Notifications),
	}
	if opts.Photos != nil {
		uc.UploadPhoto = provider.NewUploadPhotoUseCase(r.Providers, opts.Photos, opts.MediaPublicURL)
	}
	if opts.Documents != nil {
		uc.UploadDocument = provider.NewUploadDocumentUseCase(r.Providers, r.Documents, opts.Documents)
	}
	return uc
}
