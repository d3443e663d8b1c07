package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
	"github.com/ignatzorin/servantin-backend/internal/service"
)

type fakeStatusSetter struct {
	gotID     uuid.UUID
	gotStatus string
}

func (f *fakeStatusSetter) Execute(ctx context.Context, id uuid.UUID, status string) (*entity.Booking, error) {
	f.gotID, f.gotStatus = id, status
	s, err := valueobject.NewBookingStatus(status)
	if err != nil {
		return nil, err
	}
	return &entity.Booking{ID: id, Status: s, Version: 3}, nil
}

type fakeSeeder struct {
	categories int
	password   string
}

func (f *fakeSeeder) SeedCategories(ctx context.Context, catalog *service.Catalog) ([]*entity.Category, error) {
	f.categories = len(catalog.Categories)
	out := make([]*entity.Category, 0, len(catalog.Categories))
	for _, c := range catalog.Categories {
		out = append(out, &entity.Category{ID: uuid.New(), Slug: c.Slug})
	}
	return out, nil
}

func (f *fakeSeeder) SeedDemoUsers(ctx context.Context, password string) ([]service.DemoUser, error) {
	f.password = password
	return []service.DemoUser{{User: &entity.User{ID: uuid.New(), Email: "admin@servantin.local", Role: valueobject.RoleAdmin}}}, nil
}

type fakeIssuer struct{ role string }

func (f *fakeIssuer) GenerateAccess(userID uuid.UUID, role string) (string, time.Time, error) {
	f.role = role
	return "signed-token", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func withFakes(t *testing.T) (*fakeStatusSetter, *fakeSeeder, *fakeIssuer) {
	t.Helper()
	s, sd, iss := &fakeStatusSetter{}, &fakeSeeder{}, &fakeIssuer{}
	statusSetter, seeder, tokenIssuer = s, sd, iss
	migrator = func(ctx context.Context) (int, error) { return 2, nil }
	t.Cleanup(func() {
		statusSetter, seeder, tokenIssuer, migrator = nil, nil, nil, nil
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return s, sd, iss
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"migrate", "seed", "booking", "token"} {
		assert.True(t, names[want], "missing command %s", want)
	}

	assert.Equal(t, "set-status [booking-id] [status]", bookingSetStatusCmd.Use)
	assert.NotNil(t, seedCategoriesCmd.Flags().Lookup("file"))
	assert.NotNil(t, seedUsersCmd.Flags().Lookup("password"))
	assert.NotNil(t, tokenCmd.Flags().Lookup("role"))
}

func TestMigrateCommand(t *testing.T) {
	withFakes(t)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Applied 2 migration(s)")
}

func TestBookingSetStatusCommand(t *testing.T) {
	setter, _, _ := withFakes(t)
	id := uuid.New()

	out, err := run(t, "booking", "set-status", id.String(), "completed")
	require.NoError(t, err)
	assert.Equal(t, id, setter.gotID)
	assert.Equal(t, "completed", setter.gotStatus)
	assert.Contains(t, out, "is now COMPLETED")

	_, err = run(t, "booking", "set-status", "nope", "completed")
	assert.Error(t, err)

	_, err = run(t, "booking", "set-status", id.String())
	assert.Error(t, err)

	_, err = run(t, "booking", "set-status", id.String(), "archived")
	assert.True(t, apperror.IsValidation(err))
}

func TestSeedCategoriesCommand(t *testing.T) {
	_, seed, _ := withFakes(t)

	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[category]]\nslug = \"cleaning\"\nname = \"Cleaning\"\n"), 0o600))
	t.Cleanup(func() { catalogFile = "catalog.toml" })

	out, err := run(t, "seed", "categories", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, 1, seed.categories)
	assert.Contains(t, out, "Seeded 1 categories")
}

func TestSeedUsersCommand(t *testing.T) {
	_, seed, _ := withFakes(t)
	t.Cleanup(func() { demoPassword = "Servantin2024" })

	_, err := run(t, "seed", "users", "--password", "short")
	assert.Error(t, err)

	out, err := run(t, "seed", "users", "--password", "LongEnough9")
	require.NoError(t, err)
	assert.Equal(t, "LongEnough9", seed.password)
	assert.Contains(t, out, "admin@servantin.local")
}

func TestTokenCommand(t *testing.T) {
	_, _, issuer := withFakes(t)
	t.Cleanup(func() { tokenRole = string(valueobject.RoleClient) })

	out, err := run(t, "token", uuid.NewString(), "--role", "admin")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", issuer.role)
	assert.Contains(t, out, "signed-token")

	_, err = run(t, "token", uuid.NewString(), "--role", "root")
	assert.Error(t, err)
}

func TestCommandsWithoutDependencies(t *testing.T) {
	statusSetter, seeder, tokenIssuer, migrator = nil, nil, nil, nil
	assert.ErrorIs(t, runMigrate(migrateCmd, nil), errNotConfigured)
	assert.ErrorIs(t, runBookingSetStatus(bookingSetStatusCmd, []string{uuid.NewString(), "REQUESTED"}), errNotConfigured)
	assert.ErrorIs(t, runToken(tokenCmd, []string{uuid.NewString()}), errNotConfigured)
}
