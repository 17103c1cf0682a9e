package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saulo-duarte/pms-lambda/internal/config"
	"github.com/saulo-duarte/pms-lambda/internal/container"
)

var migrateCmd = &cobra.Command{
	Use:      "migrate",
	Short:    "Create or update the PostgreSQL schema",
	PreRunE:  setup,
	PostRunE: teardown,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if app.Config.StorageDriver != config.DriverPostgres {
			return fmt.Errorf("migrate needs the %s driver, got %s", config.DriverPostgres, app.Config.StorageDriver)
		}
		if err := container.Migrate(config.DB); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		cmd.Println("schema up to date")
		return nil
	},
}
