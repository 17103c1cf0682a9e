package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/saulo-duarte/pms-lambda/internal/actor"
	"github.com/saulo-duarte/pms-lambda/internal/auth"
)

var (
	flagTokenUser string
	flagTokenRole string
	flagTokenTTL  time.Duration
)

// tokenCmd signs a development token with JWT_SECRET. It does not need the stores.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a signed bearer token for local testing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := uuid.Parse(flagTokenUser); err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
		role, ok := actor.ParseRole(flagTokenRole)
		if !ok {
			return fmt.Errorf("invalid --role %q", flagTokenRole)
		}

		auth.Init()
		token, err := auth.GenerateJWT(flagTokenUser, string(role), flagTokenTTL)
		if err != nil {
			return err
		}
		cmd.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&flagTokenUser, "user", "", "User id")
	tokenCmd.Flags().StringVar(&flagTokenRole, "role", "employee", "Role claim")
	tokenCmd.Flags().DurationVar(&flagTokenTTL, "ttl", time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
}
