package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmcdole/shelf/internal/adapter"
	"github.com/mmcdole/shelf/internal/server"
	"github.com/mmcdole/shelf/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	addr := flag.String("addr", cfg.Server.Addr, "listen address")
	dbPath := flag.String("db", cfg.Server.DBPath, `bbolt file path ("" for memory-only)`)
	seed := flag.Bool("seed", false, "add sample books to an empty catalog")
	flag.Parse()

	// The server logs to stderr unless a file is configured explicitly
	if os.Getenv("SHELF_LOGGING_FILE") == "" {
		cfg.Logging.File = "-"
	}
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	path := *dbPath
	if path != "" {
		if path, err = adapter.ExpandHome(path); err != nil {
			return err
		}
	}
	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	if *seed {
		n, err := server.Seed(st)
		if err != nil {
			return err
		}
		logger.Info("seeded catalog", "books", n)
	}

	srv := &http.Server{
		Addr:         *addr,
		Handler:      server.NewRouter(st, cfg.Server.BasePath, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("shelfd listening", "addr", *addr, "base_path", cfg.Server.BasePath, "db", path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
