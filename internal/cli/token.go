package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
)

var tokenCmd = &cobra.Command{
	Use:   "token [user-id]",
	Short: "Issue an access token for a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runToken,
}

var tokenRole string

func init() {
	tokenCmd.Flags().StringVarP(&tokenRole, "role", "r", string(valueobject.RoleClient), "Role claim: CLIENT, PROVIDER or ADMIN")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	if tokenIssuer == nil {
		return errNotConfigured
	}

	userID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q", args[0])
	}

	role := valueobject.Role(strings.ToUpper(tokenRole))
	if !role.IsValid() {
		return fmt.Errorf("unknown role %q", tokenRole)
	}

	token, exp, err := tokenIssuer.GenerateAccess(userID, string(role))
	if err != nil {
		return err
	}

	cmd.Println(token)
	cmd.Printf("expires %s\n", exp.Format("2006-01-02 15:04:05"))
	return nil
}
