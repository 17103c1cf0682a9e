// Package cli provides the portal command line: a local HTTP server and
// operational commands for the goal and review service.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/saulo-duarte/pms-lambda/internal/config"
	"github.com/saulo-duarte/pms-lambda/internal/container"
)

// Version is set at build time via ldflags.
var Version = "dev"

var flagDriver string

// app is built in PersistentPreRunE for commands that need the stores.
var app *container.Container

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Goal setting and performance review service",
	Long: `portal runs the goal and review API locally and carries the
operational commands that go with it.

Examples:
  portal serve --port 8080
  portal migrate
  portal people put --id <uuid> --role employee --manager <uuid>
  portal token --user <uuid> --role manager`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

// setup loads configuration and builds the container. Commands that touch
// the stores use it as their PreRunE.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Parse()
	if err != nil {
		return err
	}
	if flagDriver != "" {
		cfg.StorageDriver = flagDriver
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	app, err = container.New(context.Background(), cfg)
	return err
}

func teardown(*cobra.Command, []string) error {
	if app != nil {
		return app.Close()
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "",
		"Storage driver override: postgres or badger")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(peopleCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("portal %s\n", Version)
	},
}
