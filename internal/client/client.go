package client

import (
	"context"

	"github.com/TWRT/asana-client/internal/models"
)

type TaskClient interface {
	ListTasks(ctx context.Context, projectId string) ([]models.Task, error)
	CreateTask(ctx context.Context, fields models.TaskFields) (*models.Task, error)
	UpdateTask(ctx context.Context, taskId string, fields models.TaskFields) (*models.Task, error)
	DeleteTask(ctx context.Context, taskId string) error
}

type ProjectClient interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, fields models.ProjectFields) (*models.Project, error)
}

type WorkspaceProvider interface {
	ListWorkspaces(ctx context.Context) ([]models.Workspace, error)
}

type WebhookRegistrar interface {
	RegisterWebhook(ctx context.Context, resourceId, targetUrl string) (*models.Webhook, error)
}

type AsanaAPI interface {
	TaskClient
	ProjectClient
	WorkspaceProvider
	WebhookRegistrar
}
