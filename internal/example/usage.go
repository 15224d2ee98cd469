// Package example holds the illustrative usage routine: list the workspace's
// projects and create one task in the first of them.
package example

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/TWRT/asana-client/internal/client"
	"github.com/TWRT/asana-client/internal/models"
)

type API interface {
	client.ProjectClient
	CreateTask(ctx context.Context, fields models.TaskFields) (*models.Task, error)
}

var ErrNoProjects = errors.New("workspace has no projects")

// Run executes the routine. The first error is logged and returned; nothing
// is retried.
func Run(ctx context.Context, api API, logger hclog.Logger) (*models.Task, error) {
	task, err := run(ctx, api, logger)
	if err != nil {
		logger.Error("example failed", "error", err)
		return nil, err
	}
	return task, nil
}

func run(ctx context.Context, api API, logger hclog.Logger) (*models.Task, error) {
	projects, err := api.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("get projects: %w", err)
	}
	logger.Info("projects", "count", len(projects), "projects", projects)

	if len(projects) == 0 {
		return nil, ErrNoProjects
	}

	task, err := api.CreateTask(ctx, models.TaskFields{
		Name:     models.String("New task from API"),
		Notes:    models.String("This task was created using the Asana API"),
		Projects: []string{projects[0].ID},
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	logger.Info("created task", "id", task.ID, "name", task.Name)

	return task, nil
}
