package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/saulo-duarte/pms-lambda/internal/config"
)

var flagPort string

var serveCmd = &cobra.Command{
	Use:      "serve",
	Short:    "Run the HTTP API locally",
	PreRunE:  setup,
	PostRunE: teardown,
	RunE:     runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := app.Config.Port
	if flagPort != "" {
		port = flagPort
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", port),
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		config.Logger.WithField("addr", srv.Addr).Info("Listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	config.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	serveCmd.Flags().StringVarP(&flagPort, "port", "p", "", "Port to listen on (default from PORT)")
}
