package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmrzaf/rdgen/internal/api"
	"github.com/mmrzaf/rdgen/internal/app"
	"github.com/mmrzaf/rdgen/internal/config"
	"github.com/mmrzaf/rdgen/internal/infra/repos/runs"
	"github.com/mmrzaf/rdgen/internal/infra/repos/schemas"
	"github.com/mmrzaf/rdgen/internal/logging"
	"github.com/mmrzaf/rdgen/internal/registry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.NewLogger("info").WithComponent("api_main").Errorw("config.invalid", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	flag.StringVar(&cfg.SchemasDir, "schemas-dir", cfg.SchemasDir, "Schemas directory")
	flag.StringVar(&cfg.RunsDBPath, "runs-db", cfg.RunsDBPath, "Runs database path (SQLite)")
	flag.StringVar(&cfg.BindAddr, "bind", cfg.BindAddr, "Bind address")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	flag.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "Default insert batch size")
	flag.Parse()

	root := logging.NewLogger(cfg.LogLevel)
	logger := root.WithComponent("api_main")
	if err := run(cfg, root); err != nil {
		logger.Errorw("server.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg *config.Config, root *logging.Logger) error {
	logger := root.WithComponent("api_main")

	runRepo := runs.NewSQLiteRepository(cfg.RunsDBPath)
	if err := runRepo.Init(); err != nil {
		return err
	}
	defer runRepo.Close()

	svc := app.NewGenerateService(
		schemas.NewFileRepository(cfg.SchemasDir),
		runRepo,
		registry.DefaultFieldRegistry(),
		app.Defaults{
			Count:     cfg.DefaultCount,
			Format:    cfg.DefaultFormat,
			BatchSize: cfg.BatchSize,
			TableMode: cfg.TableMode,
		},
		root,
	)

	mux := http.NewServeMux()
	api.NewHandler(svc).Register(mux)

	srv := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           loggingMiddleware(root.WithComponent("http"), mux),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("server.listening", map[string]any{"bind": cfg.BindAddr, "schemas_dir": cfg.SchemasDir})
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

	logger.Infow("server.stopping", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// responseRecorder remembers the status and body size written by a handler.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *responseRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"bytes":       rec.bytes,
			"duration_ms": time.Since(started).Milliseconds(),
			"remote":      r.RemoteAddr,
		}
		switch {
		case rec.status >= 500:
			logger.Errorw("request.completed", fields)
		case rec.status >= 400:
			logger.Warnw("request.completed", fields)
		default:
			logger.Infow("request.completed", fields)
		}
	})
}
