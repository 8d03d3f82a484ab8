/*
serve.go - HTTP API entry point

STARTUP SEQUENCE:
  1. Read ServerConfig from the environment (ITAX_*)
  2. Apply command-line overrides (--addr, --rules)
  3. Load the rule book and create one shared engine
  4. Configure the chi router
  5. Start server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (ITAX_SHUTDOWN_GRACE, default 30s)
  3. Exit

SEE ALSO:
  - internal/api/server.go: Router configuration
  - internal/config/server.go: Environment variables
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/itax/internal/api"
	"github.com/rgehrsitz/itax/internal/config"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tax engine over a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Addr = addr
			}
			if rulesFile, _ := cmd.Flags().GetString("rules"); rulesFile != "" {
				cfg.RulesFile = rulesFile
			}

			debugMode, _ := cmd.Flags().GetBool("debug")
			engine, err := newEngine(cfg.RulesFile, debugMode)
			if err != nil {
				return err
			}

			handler := api.NewHandler(engine)
			handler.MaxBodyBytes = cfg.MaxBodyBytes
			handler.Version = version

			server := &http.Server{
				Addr:         cfg.Addr,
				Handler:      api.NewRouter(handler, cfg.AllowedOrigins),
				ReadTimeout:  cfg.ReadTimeout,
				WriteTimeout: cfg.WriteTimeout,
				IdleTimeout:  cfg.IdleTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, server, cfg)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides ITAX_ADDR)")
	cmd.Flags().String("rules", "", "Path to a rules file (overrides ITAX_RULES_FILE)")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

// runServer serves until ctx is cancelled, then drains active requests
func runServer(ctx context.Context, server *http.Server, cfg config.ServerConfig) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
