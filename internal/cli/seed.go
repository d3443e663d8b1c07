package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/servantin-backend/internal/service"
	"github.com/ignatzorin/servantin-backend/internal/validation"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference and demo data",
}

var seedCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Create or update service categories from a TOML catalog",
	Args:  cobra.NoArgs,
	RunE:  runSeedCategories,
}

var seedUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Create demo admin, client and provider accounts",
	Args:  cobra.NoArgs,
	RunE:  runSeedUsers,
}

var (
	catalogFile  string
	demoPassword string
)

func init() {
	seedCategoriesCmd.Flags().StringVarP(&catalogFile, "file", "f", "catalog.toml", "Path to the category catalog")
	seedUsersCmd.Flags().StringVar(&demoPassword, "password", "Servantin2024", "Password for every demo account")

	seedCmd.AddCommand(seedCategoriesCmd)
	seedCmd.AddCommand(seedUsersCmd)
	rootCmd.AddCommand(seedCmd)
}

func runSeedCategories(cmd *cobra.Command, _ []string) error {
	if seeder == nil {
		return errNotConfigured
	}

	catalog, err := service.LoadCatalog(catalogFile)
	if err != nil {
		return err
	}

	categories, err := seeder.SeedCategories(cmd.Context(), catalog)
	if err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	for _, c := range categories {
		cmd.Printf("  %-20s %s\n", c.Slug, c.ID)
	}
	cmd.Printf("Seeded %d categories\n", len(categories))
	return nil
}

func runSeedUsers(cmd *cobra.Command, _ []string) error {
	if seeder == nil {
		return errNotConfigured
	}
	if err := validation.ValidatePassword(demoPassword); err != nil {
		return err
	}

	users, err := seeder.SeedDemoUsers(cmd.Context(), demoPassword)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	for _, u := range users {
		cmd.Printf("  %-28s %-9s %s\n", u.User.Email, u.User.Role, u.User.ID)
	}
	cmd.Printf("Seeded %d users\n", len(users))
	return nil
}
