package cli

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if migrator == nil {
		return errNotConfigured
	}

	applied, err := migrator(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("Applied %d migration(s)\n", applied)
	return nil
}
