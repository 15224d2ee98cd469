package main

import (
	"context"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/TWRT/asana-client/internal/client/asana"
	"github.com/TWRT/asana-client/internal/config"
	"github.com/TWRT/asana-client/internal/example"
	"github.com/TWRT/asana-client/internal/repository"
	"github.com/TWRT/asana-client/internal/service"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	logger := hclog.New(&hclog.LoggerOptions{Name: "asana-example"})

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		return 1
	}
	logger.SetLevel(cfg.Level())

	asanaClient, err := asana.NewAsanaClient(cfg.AccessToken, cfg.WorkspaceID,
		asana.WithBaseURL(cfg.BaseURL),
		asana.WithLogger(logger.Named("asana")),
	)
	if err != nil {
		logger.Error("failed to create client", "error", err)
		return 1
	}

	var runs service.RunStore
	var ops service.OperationStore
	if cfg.JournalPath != "" {
		db, err := repository.InitDB(cfg.JournalPath)
		if err != nil {
			logger.Error("failed to open journal", "error", err)
			return 1
		}
		defer db.Close()
		runs = repository.NewRunRepository(db)
		ops = repository.NewOperationRepository(db)
	}

	svc := service.NewAsanaService(asanaClient, cfg.WorkspaceID, runs, ops, logger)
	if _, err := svc.StartRun("example"); err != nil {
		logger.Error("failed to start run", "error", err)
		return 1
	}

	status := repository.RunStatusCompleted
	code := 0
	if _, err := example.Run(context.Background(), svc, logger); err != nil {
		status = repository.RunStatusFailed
		code = 1
	}

	if err := svc.CompleteRun(status); err != nil {
		logger.Warn("failed to complete run", "error", err)
	}
	return code
}
