package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/veridex/trustlens/internal/pipeline"
	"github.com/veridex/trustlens/internal/server"
	"github.com/veridex/trustlens/internal/session"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	serveAddr string
	logFile   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local dashboard API server",
	Long: `Serve exposes the analysis pipeline over a small local HTTP API:

  POST /api/v1/analyze           analyze a URL or text
  GET  /api/v1/analyses/current  most recent analysis
  POST /api/v1/session/reset     discard the current analysis
  GET  /healthz                  liveness check

The server keeps one current analysis per process; a newer request
always supersedes a slower in-flight one.

Example:
  trustlens serve
  trustlens serve --addr :9090 --log-file /var/log/trustlens/server.log`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8787", "listen address")
	serveCmd.Flags().StringVar(&logFile, "log-file", "", "log file path (default: stderr), rotated")
	serveCmd.Flags().StringVar(&backendURL, "backend", "", "analysis backend base URL (default: http://localhost:8000)")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh analyses)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = serveAddr
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Server.LogFile = logFile
	}

	var logOut io.Writer = os.Stderr
	if cfg.Server.LogFile != "" {
		logOut = &lumberjack.Logger{
			Filename:   cfg.Server.LogFile,
			MaxSize:    cfg.Server.LogMaxSizeMB,
			MaxBackups: cfg.Server.LogMaxBackups,
			MaxAge:     cfg.Server.LogMaxAgeDays,
		}
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))

	p := pipeline.New(cfg)
	handler := server.NewRouter(p, session.New(), logger)
	srv := server.New(cfg.Server.Addr, handler, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
