package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/TWRT/asana-client/internal/api"
	"github.com/TWRT/asana-client/internal/client/asana"
	"github.com/TWRT/asana-client/internal/config"
	"github.com/TWRT/asana-client/internal/repository"
	"github.com/TWRT/asana-client/internal/service"
)

func main() {
	logger := hclog.New(&hclog.LoggerOptions{Name: "asana-proxy"})

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Level())

	asanaClient, err := asana.NewAsanaClient(cfg.AccessToken, cfg.WorkspaceID,
		asana.WithBaseURL(cfg.BaseURL),
		asana.WithLogger(logger.Named("asana")),
	)
	if err != nil {
		logger.Error("failed to create client", "error", err)
		os.Exit(1)
	}

	var db *sql.DB
	var runs service.RunStore
	var ops service.OperationStore
	if cfg.JournalPath != "" {
		db, err = repository.InitDB(cfg.JournalPath)
		if err != nil {
			logger.Error("failed to open journal", "error", err)
			os.Exit(1)
		}
		runs = repository.NewRunRepository(db)
		ops = repository.NewOperationRepository(db)
		logger.Info("journal enabled", "path", cfg.JournalPath)
	}

	svc := service.NewAsanaService(asanaClient, cfg.WorkspaceID, runs, ops, logger)
	if _, err := svc.StartRun("proxy"); err != nil {
		logger.Error("failed to start run", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.SetupRouter(svc),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr, "workspace", cfg.WorkspaceID)
		serveErr <- server.ListenAndServe()
	}()

	var result *multierror.Error
	status := repository.RunStatusCompleted
	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			result = multierror.Append(result, err)
			status = repository.RunStatusFailed
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := svc.CompleteRun(status); err != nil {
		result = multierror.Append(result, err)
	}
	if db != nil {
		if err := db.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		logger.Error("server stopped with errors", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
