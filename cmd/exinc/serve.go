package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/exinc"
	"github.com/aretw0/exinc/internal/cli"
	"github.com/aretw0/exinc/internal/logging"
	httpAdapter "github.com/aretw0/exinc/pkg/adapters/http"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveStore storeFlags

// defaultAddr keeps the server on loopback unless --addr says otherwise.
const defaultAddr = "127.0.0.1:8080"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP expansion server",
	Long: `Exposes the inliner as a JSON API over HTTP.

  POST   /v1/expand            expand a document
  GET    /v1/expansions        list stored expansions
  GET    /v1/expansions/{id}   fetch one expansion
  DELETE /v1/expansions/{id}   forget one expansion
  GET    /v1/events            stream inliner events (SSE)
  GET    /metrics              Prometheus metrics
  GET    /openapi.yaml         API description (Swagger UI on /swagger)

Request search paths must lie inside a --root directory. Includes never
resolve outside the roots and the configured default paths.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		debug, _ := cmd.Flags().GetBool("debug")
		configPath, _ := cmd.Flags().GetString("config")
		roots, _ := cmd.Flags().GetStringSlice("root")
		origin, _ := cmd.Flags().GetString("cors-origin")

		logger := serverLogger(debug)
		cfg, err := cli.LoadConfig(configPath, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		store, closeStore, err := serveStore.open()
		if err != nil {
			return err
		}
		defer closeStore()

		handler := httpAdapter.NewHandler(httpAdapter.Config{
			Store:         store,
			Options:       []exinc.Option{exinc.WithConfig(cfg), exinc.WithLogger(logger)},
			Roots:         roots,
			AllowedOrigin: origin,
			Logger:        logger,
		})
		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Info("Starting exinc server", "address", addr, "store", serveStore.kind, "roots", roots)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			logger.Info("Start shutdown", "signal", ctx.Signal())
			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("graceful shutdown did not complete: %w", err)
			}
			logger.Info("exinc server stopped gracefully")
			return nil
		})
		return g.Wait()
	},
}

// serverLogger logs at info level, or debug with --debug, to stderr.
func serverLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(logging.Options{Level: level})
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", defaultAddr, "Address to listen on")
	serveCmd.Flags().StringSlice("root", nil, "Directory requests may search (repeatable)")
	serveCmd.Flags().String("cors-origin", "", "Origin allowed to call the API from a browser (\"*\" for any)")
	addStoreFlags(serveCmd, &serveStore)
}
