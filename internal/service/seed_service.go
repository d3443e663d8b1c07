package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/servantin-backend/internal/domain/entity"
	"github.com/ignatzorin/servantin-backend/internal/domain/repository"
	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/logger"
	"github.com/ignatzorin/servantin-backend/internal/usecase/provider"
)

// Catalog формат файла с категориями услуг.
type Catalog struct {
	Categories []CatalogCategory `toml:"category"`
}

type CatalogCategory struct {
	Slug        string `toml:"slug"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Icon        string `toml:"icon"`
	SortOrder   int    `toml:"sort_order"`
	Inactive    bool   `toml:"inactive"`
}

// LoadCatalog читает и проверяет TOML файл каталога.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: не удалось прочитать каталог %s: %w", path, err)
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (*Catalog, error) {
	var catalog Catalog
	if err := toml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("seed: некорректный TOML каталога: %w", err)
	}

	seen := make(map[string]struct{}, len(catalog.Categories))
	for i, c := range catalog.Categories {
		slug := strings.ToLower(strings.TrimSpace(c.Slug))
		if slug == "" || strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("seed: категория #%d: slug и name обязательны", i+1)
		}
		if _, dup := seen[slug]; dup {
			return nil, fmt.Errorf("seed: slug %q встречается дважды", slug)
		}
		seen[slug] = struct{}{}
		catalog.Categories[i].Slug = slug
	}
	return &catalog, nil
}

// SeedService наполняет базу справочными и демонстрационными данными.
type SeedService struct {
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	saveProfile  *provider.SaveProfileUseCase
}

func NewSeedService(userRepo repository.UserRepository, categoryRepo repository.CategoryRepository, saveProfile *provider.SaveProfileUseCase) *SeedService {
	return &SeedService{userRepo: userRepo, categoryRepo: categoryRepo, saveProfile: saveProfile}
}

// SeedCategories создаёт или обновляет категории по slug. Повторный запуск
// с тем же файлом ничего не меняет.
func (s *SeedService) SeedCategories(ctx context.Context, catalog *Catalog) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(catalog.Categories))
	for _, c := range catalog.Categories {
		category := &entity.Category{
			Slug:        c.Slug,
			Name:        strings.TrimSpace(c.Name),
			Description: optional(c.Description),
			Icon:        optional(c.Icon),
			SortOrder:   c.SortOrder,
			IsActive:    !c.Inactive,
		}
		if err := s.categoryRepo.Upsert(ctx, category); err != nil {
			return nil, err
		}
		out = append(out, category)
	}

	logger.Log.WithField("count", len(out)).Info("seed: категории сохранены")
	return out, nil
}

// DemoUser учётная запись, созданная SeedDemoUsers.
type DemoUser struct {
	User     *entity.User
	Password string
}

type demoAccount struct {
	email    string
	name     string
	role     valueobject.Role
	provider bool
}

var demoAccounts = []demoAccount{
	{email: "admin@servantin.local", name: "Admin", role: valueobject.RoleAdmin},
	{email: "client@servantin.local", name: "Claire Fleury", role: valueobject.RoleClient},
	{email: "marc@servantin.local", name: "Marc Schaller", role: valueobject.RoleClient, provider: true},
	{email: "lea@servantin.local", name: "Léa Rérat", role: valueobject.RoleClient, provider: true},
}

// SeedDemoUsers создаёт администратора, клиента и двух исполнителей в
// Делемоне, обслуживающих все активные категории.
func (s *SeedService) SeedDemoUsers(ctx context.Context, password string) ([]DemoUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("seed: не удалось захешировать пароль: %w", err)
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	categoryIDs := make([]uuid.UUID, 0, len(categories))
	for _, c := range categories {
		categoryIDs = append(categoryIDs, c.ID)
	}

	out := make([]DemoUser, 0, len(demoAccounts))
	for _, acc := range demoAccounts {
		user := &entity.User{
			Email:        acc.email,
			Name:         acc.name,
			PasswordHash: string(hash),
			Role:         acc.role,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}

		if acc.provider && len(categoryIDs) > 0 {
			if _, err := s.saveProfile.Execute(ctx, demoProfile(user.ID, categoryIDs)); err != nil {
				return nil, fmt.Errorf("seed: профиль %s: %w", acc.email, err)
			}
			user.Role = valueobject.RoleProvider
		}

		logger.Log.WithFields(logrus.Fields{"email": user.Email, "role": user.Role}).Info("seed: пользователь создан")
		out = append(out, DemoUser{User: user, Password: password})
	}
	return out, nil
}

func demoProfile(userID uuid.UUID, categoryIDs []uuid.UUID) provider.SaveProfileInput {
	input := provider.SaveProfileInput{
		UserID:      userID,
		Bio:         "Artisan basé à Delémont.",
		Languages:   []string{"fr", "de"},
		CategoryIDs: categoryIDs,
		Locations: []provider.LocationInput{
			{PostalCode: "2800", City: "Delémont", Canton: "JU"},
			{PostalCode: "2900", City: "Porrentruy", Canton: "JU"},
		},
	}
	for weekday := 1; weekday <= 5; weekday++ {
		input.Availabilities = append(input.Availabilities,
			provider.AvailabilityInput{Weekday: weekday, Slot: string(valueobject.TimeSlotMorning)},
			provider.AvailabilityInput{Weekday: weekday, Slot: string(valueobject.TimeSlotAfternoon)},
		)
	}
	rate := 65.0
	input.Pricings = append(input.Pricings, provider.PricingInput{
		CategoryID:  categoryIDs[0],
		PricingType: string(valueobject.PricingTypeHourly),
		HourlyRate:  &rate,
	})
	return input
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
