package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/servantin-backend/internal/app"
	"github.com/ignatzorin/servantin-backend/internal/config"
	"github.com/ignatzorin/servantin-backend/internal/db"
	"github.com/ignatzorin/servantin-backend/internal/http/router"
	"github.com/ignatzorin/servantin-backend/internal/infrastructure/notification"
	"github.com/ignatzorin/servantin-backend/internal/interface/http/handler"
	"github.com/ignatzorin/servantin-backend/internal/logger"
	"github.com/ignatzorin/servantin-backend/internal/service"
	"github.com/ignatzorin/servantin-backend/internal/storage"
	"github.com/ignatzorin/servantin-backend/internal/ws"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if cfg.Env == "development" {
		logger.SetTextFormatter()
	}

	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL, db.DefaultPool)
	if err != nil {
		logger.Log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if _, err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		logger.Log.Fatalf("main: ошибка миграций: %v", err)
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	photoStorage, err := storage.NewPhotoStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		logger.Log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	documentStorage, err := storage.NewDocumentStorage(cfg.DocumentsPath, cfg.MaxUploadSizeMB)
	if err != nil {
		logger.Log.Fatalf("main: не удалось подготовить хранилище документов: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run(ctx)

	repos := app.NewRepositories(dbConn)
	uc := app.NewUseCases(repos, app.Options{
		Sink:           notification.NewDispatcher(repos.Notifications, hub),
		Photos:         photoStorage,
		Documents:      documentStorage,
		MediaPublicURL: cfg.MediaPublicURL,
		MatchLocation:  cfg.Location(),
	})

	engine := router.SetupRouter(cfg, router.Handlers{
		Health:   handler.NewHealthHandler(dbConn, hub),
		Catalog:  handler.NewCatalogHandler(uc.ListCategories, uc.GetCategory),
		Matching: handler.NewMatchingHandler(uc.Match),
		Provider: handler.NewProviderHandler(uc.GetProfile, uc.SaveProfile, uc.UploadPhoto, cfg.MaxUploadSizeMB),
		Booking: handler.NewBookingHandler(handler.BookingUseCases{
			Create:         uc.CreateBooking,
			Get:            uc.GetBooking,
			ListClient:     uc.ListClient,
			ListProvider:   uc.ListProvider,
			Accept:         uc.Accept,
			Decline:        uc.Decline,
			Complete:       uc.Complete,
			Cancel:         uc.Cancel,
			AssignProvider: uc.AssignProvider,
			Rate:           uc.Rate,
			SendMessage:    uc.SendMessage,
			ListMessages:   uc.ListMessages,
			Views:          uc.Views,
		}),
		Notification: handler.NewNotificationHandler(uc.ListNotifications, uc.CountUnread, uc.MarkAllRead),
		Admin:        handler.NewAdminHandler(uc.AdminList, uc.AdminSetStatus, uc.ListProviders, uc.Verify, uc.Views),
		Report:       handler.NewReportHandler(uc.CreateReport, uc.MyReports),
		Document:     handler.NewDocumentHandler(uc.UploadDocument, uc.ListDocuments, cfg.MaxUploadSizeMB),
		Moderation: handler.NewModerationHandler(handler.ModerationUseCases{
			ListReports:    uc.ListReports,
			GetReport:      uc.GetReport,
			UpdateReport:   uc.UpdateReport,
			ReportStats:    uc.ReportStats,
			Dashboard:      uc.Dashboard,
			ListDocuments:  uc.ListDocuments,
			VerifyDocument: uc.VerifyDocument,
			DocumentStats:  uc.DocumentStats,
			GetProfile:     uc.GetProfile,
		}),
		WS: handler.NewWSHandler(hub, tokenManager, cfg.AllowedOrigins),
	}, tokenManager)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	}()

	logger.Log.WithField("port", cfg.HTTPPort).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

func safeClose(conn *sqlx.DB) {
	if err := conn.Close(); err != nil {
		logger.Log.WithError(err).Error("main: ошибка закрытия базы")
	}
}
