package cli

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/ignatzorin/servantin-backend/internal/app"
	"github.com/ignatzorin/servantin-backend/internal/config"
	"github.com/ignatzorin/servantin-backend/internal/db"
	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/infrastructure/notification"
	"github.com/ignatzorin/servantin-backend/internal/logger"
	"github.com/ignatzorin/servantin-backend/internal/service"
)

// StatusSetter административная смена статуса брони.
type StatusSetter interface {
	Execute(ctx context.Context, bookingID uuid.UUID, status string) (*entity.Booking, error)
}

// Seeder наполнение справочников и демо-данных.
type Seeder interface {
	SeedCategories(ctx context.Context, catalog *service.Catalog) ([]*entity.Category, error)
	SeedDemoUsers(ctx context.Context, password string) ([]service.DemoUser, error)
}

// TokenIssuer выпуск access токенов для ручной проверки API.
type TokenIssuer interface {
	GenerateAccess(userID uuid.UUID, role string) (string, time.Time, error)
}

// Migrator применяет SQL миграции.
type Migrator func(ctx context.Context) (int, error)

// Зависимости команд. Заполняются в PersistentPreRunE либо тестами.
var (
	statusSetter StatusSetter
	seeder       Seeder
	tokenIssuer  TokenIssuer
	migrator     Migrator
)

var dbConn *sqlx.DB

var rootCmd = &cobra.Command{
	Use:               "servantin-admin",
	Short:             "Administrative tasks for the Servantin backend",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if dbConn != nil {
			_ = dbConn.Close()
			dbConn = nil
		}
	},
}

// Execute запускает CLI.
func Execute() error {
	return rootCmd.Execute()
}

// setup подключается к базе и собирает сценарии, если их не подставили заранее.
func setup(cmd *cobra.Command, _ []string) error {
	if statusSetter != nil && seeder != nil && tokenIssuer != nil && migrator != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.LogLevel)
	logger.SetTextFormatter()

	if tokenIssuer == nil {
		tokenIssuer = service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	}
	if statusSetter != nil && seeder != nil && migrator != nil {
		return nil
	}

	conn, err := db.NewPostgres(cmd.Context(), cfg.DatabaseURL, db.CLIPool)
	if err != nil {
		return err
	}
	dbConn = conn

	if migrator == nil {
		migrator = func(ctx context.Context) (int, error) {
			return db.RunMigrations(ctx, conn, cfg.MigrationsPath)
		}
	}

	repos := app.NewRepositories(conn)
	uc := app.NewUseCases(repos, app.Options{
		// Без WebSocket: процесс CLI живёт до конца команды, уведомления
		// только сохраняются.
		Sink:          notification.NewSyncDispatcher(repos.Notifications, nil),
		MatchLocation: cfg.Location(),
	})
	if statusSetter == nil {
		statusSetter = uc.AdminSetStatus
	}
	if seeder == nil {
		seeder = service.NewSeedService(repos.Users, repos.Categories, uc.SaveProfile)
	}
	return nil
}

var errNotConfigured = errors.New("command dependencies are not configured")
