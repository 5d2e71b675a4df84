package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getlawrence/techprofile/internal/logger"
	"github.com/getlawrence/techprofile/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve exposes analysis, route descriptions, questions, flow diagrams and
a health check over HTTP. Plain-text HTTP/2 (h2c) is accepted alongside HTTP/1.1.
It listens on 127.0.0.1:8000 by default, and /api/analyze-path only reads
directories under --root.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
	serveCmd.Flags().String("root", "", "directory /api/analyze-path may read under (overrides config; default working directory)")
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := appConfig(cmd)
	if err != nil {
		return err
	}
	cfg := app.Config
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if root, _ := cmd.Flags().GetString("root"); root != "" {
		cfg.Server.Root = root
	}

	log := logger.NewLogrusLogger(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}).WithField("component", "server")
	app.Logger = log

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer, err := app.newAnalyzer()
	if err != nil {
		return err
	}
	store, err := app.newStore(ctx)
	if err != nil {
		return err
	}
	if c, ok := store.(interface{ Close() error }); ok {
		defer c.Close()
	}
	assist := app.newAssistant(ctx)
	log.Logf("assistant backend: %s, store backend: %s", assist.Backend(), cfg.Store.Backend)

	srv := server.New(cfg.Server.Addr, server.NewMux(server.Deps{
		Analyzer:      analyzer,
		Store:         store,
		Assistant:     assist,
		Limits:        cfg.Limits(),
		AllowedOrigin: cfg.Server.AllowedOrigin,
		Logger:        log,
		Root:          cfg.Server.Root,
	}), log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Log("shutting down")
	return srv.Shutdown(shutdownCtx)
}
