package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/servantin-backend/internal/config"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/http/middleware"
	"github.com/ignatzorin/servantin-backend/internal/interface/http/handler"
)

type Handlers struct {
	Health       *handler.HealthHandler
	Catalog      *handler.CatalogHandler
	Matching     *handler.MatchingHandler
	Provider     *handler.ProviderHandler
	Booking      *handler.BookingHandler
	Notification *handler.NotificationHandler
	Admin        *handler.AdminHandler
	Report       *handler.ReportHandler
	Document     *handler.DocumentHandler
	Moderation   *handler.ModerationHandler
	WS           *handler.WSHandler
}

func SetupRouter(cfg *config.Config, h Handlers, tokens middleware.AccessTokenParser) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.StaticFS(cfg.MediaPublicURL, http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")
	auth := middleware.AuthMiddleware(tokens)
	idParam := middleware.UUIDValidator("id")
	providerOnly := middleware.RequireRole(string(valueobject.RoleProvider), string(valueobject.RoleAdmin))

	api.GET("/categories", h.Catalog.List)
	api.GET("/categories/:slug", h.Catalog.GetBySlug)

	providers := api.Group("/providers")
	{
		providers.POST("/match", middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod), h.Matching.Match)
		providers.GET("/me", auth, h.Provider.GetMine)
		providers.PUT("/me", auth, h.Provider.SaveMine)
		providers.POST("/me/photo", auth, h.Provider.UploadPhoto)
		providers.POST("/me/documents", auth, providerOnly, h.Document.Upload)
		providers.GET("/me/documents", auth, providerOnly, h.Document.ListMine)
		providers.GET("/:id", idParam, h.Provider.GetByID)
	}

	bookings := api.Group("/bookings", auth)
	{
		bookings.POST("", h.Booking.Create)
		bookings.GET("/client", h.Booking.ListClient)
		bookings.GET("/provider", h.Booking.ListProvider)
		bookings.GET("/provider/pending", h.Booking.ListPending)
		bookings.GET("/:id", idParam, h.Booking.Get)
		bookings.POST("/:id/accept", idParam, h.Booking.Accept)
		bookings.POST("/:id/decline", idParam, h.Booking.Decline)
		bookings.POST("/:id/complete", idParam, h.Booking.Complete)
		bookings.POST("/:id/cancel", idParam, h.Booking.Cancel)
		bookings.PUT("/:id/provider", idParam, h.Booking.AssignProvider)
		bookings.POST("/:id/rating", idParam, h.Booking.Rate)
		bookings.GET("/:id/messages", idParam, h.Booking.ListMessages)
		bookings.POST("/:id/messages", idParam, h.Booking.SendMessage)
	}

	reports := api.Group("/reports", auth)
	{
		reports.POST("", middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod), h.Report.Create)
		reports.GET("/my-reports", h.Report.Mine)
	}

	notifications := api.Group("/notifications", auth)
	{
		notifications.GET("", h.Notification.List)
		notifications.GET("/unread/count", h.Notification.UnreadCount)
		notifications.PUT("/read-all", h.Notification.ReadAll)
	}

	admin := api.Group("/admin", auth, middleware.RequireRole(string(valueobject.RoleAdmin)))
	{
		admin.GET("/bookings", h.Admin.ListBookings)
		admin.PUT("/bookings/:id/status", idParam, h.Admin.SetStatus)
		admin.GET("/providers", h.Admin.ListProviders)
		admin.GET("/providers/:id", idParam, h.Moderation.GetProvider)
		admin.PUT("/providers/:id/verify", idParam, h.Admin.VerifyProvider)

		admin.GET("/dashboard/stats", h.Moderation.Dashboard)

		admin.GET("/reports", h.Moderation.ListReports)
		admin.GET("/reports/statistics", h.Moderation.ReportStatistics)
		admin.GET("/reports/status/:status", h.Moderation.ListReports)
		admin.GET("/reports/:id", idParam, h.Moderation.GetReport)
		admin.PUT("/reports/:id/status", idParam, h.Moderation.UpdateReportStatus)

		admin.GET("/documents/pending", h.Moderation.ListDocuments)
		admin.GET("/documents/statistics", h.Moderation.DocumentStatistics)
		admin.GET("/documents/status/:status", h.Moderation.ListDocuments)
		admin.GET("/documents/provider/:id", idParam, h.Moderation.ListProviderDocuments)
		admin.GET("/documents/:id", idParam, h.Moderation.GetDocument)
		admin.PUT("/documents/:id/verify", idParam, h.Moderation.VerifyDocument)
	}

	api.GET("/ws", h.WS.Handle)

	return r
}
