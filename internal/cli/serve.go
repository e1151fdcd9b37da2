package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Farzan505/UrbanAI-App-sub000/internal/api"
)

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP scene API",
		Long: `Serve composed scene artifacts over HTTP.

Endpoints:
  GET /healthz
  GET /api/v1/version
  GET /api/v1/buildings/{id}/scene?attribute=usage`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}

			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			srv := &http.Server{
				Addr:         addr,
				Handler:      api.NewServer(runner, c.Logger).Handler(),
				ReadTimeout:  time.Duration(c.cfg.Server.ReadTimeoutSeconds) * time.Second,
				WriteTimeout: time.Duration(c.cfg.Server.WriteTimeoutSeconds) * time.Second,
				BaseContext:  func(net.Listener) context.Context { return ctx },
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("serving scene API", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}
				c.Logger.Info("server stopped")
				return nil
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
