package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/TWRT/asana-client/internal/client"
	"github.com/TWRT/asana-client/internal/client/asana"
	"github.com/TWRT/asana-client/internal/models"
	"github.com/TWRT/asana-client/internal/repository"
)

// ErrJournalDisabled is returned by journal queries when no journal is configured.
var ErrJournalDisabled = errors.New("journal is disabled")

type RunStore interface {
	Create(run *repository.Run) error
	Complete(id string, status string) error
	GetRun(id string) (repository.Run, error)
	GetRuns() ([]repository.Run, error)
}

type OperationStore interface {
	Create(op *repository.Operation) (int64, error)
	ListByRun(runID string) ([]repository.Operation, error)
}

// AsanaService forwards calls to the Asana client one-to-one and, when a
// journal is configured, records every mutating call under the current run.
type AsanaService struct {
	asanaClient client.AsanaAPI
	runs        RunStore
	operations  OperationStore
	logger      hclog.Logger

	workspaceId string
	runId       string
}

// NewAsanaService builds the service. runs and operations may both be nil to
// disable the journal.
func NewAsanaService(
	asanaClient client.AsanaAPI,
	workspaceId string,
	runs RunStore,
	operations OperationStore,
	logger hclog.Logger,
) *AsanaService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &AsanaService{
		asanaClient: asanaClient,
		runs:        runs,
		operations:  operations,
		logger:      logger,
		workspaceId: workspaceId,
	}
}

func (s *AsanaService) journalEnabled() bool {
	return s.runs != nil && s.operations != nil
}

// StartRun opens a new run in the journal and returns its id. Without a
// journal it still returns a fresh id so log lines can be correlated.
func (s *AsanaService) StartRun(source string) (string, error) {
	s.runId = uuid.NewString()
	if !s.journalEnabled() {
		return s.runId, nil
	}

	err := s.runs.Create(&repository.Run{
		ID:          s.runId,
		Source:      source,
		WorkspaceID: s.workspaceId,
		Status:      repository.RunStatusRunning,
	})
	if err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}
	s.logger.Info("run started", "run_id", s.runId, "source", source)
	return s.runId, nil
}

func (s *AsanaService) CompleteRun(status string) error {
	if !s.journalEnabled() || s.runId == "" {
		return nil
	}
	if err := s.runs.Complete(s.runId, status); err != nil {
		return fmt.Errorf("complete run: %w", err)
	}
	s.logger.Info("run completed", "run_id", s.runId, "status", status)
	return nil
}

func (s *AsanaService) RunID() string {
	return s.runId
}

func (s *AsanaService) ListTasks(ctx context.Context, projectId string) ([]models.Task, error) {
	return s.asanaClient.ListTasks(ctx, projectId)
}

func (s *AsanaService) CreateTask(ctx context.Context, fields models.TaskFields) (*models.Task, error) {
	task, err := s.asanaClient.CreateTask(ctx, fields)
	var gid string
	if task != nil {
		gid = task.ID
	}
	s.record("create_task", gid, err)
	return task, err
}

func (s *AsanaService) UpdateTask(ctx context.Context, taskId string, fields models.TaskFields) (*models.Task, error) {
	task, err := s.asanaClient.UpdateTask(ctx, taskId, fields)
	s.record("update_task", taskId, err)
	return task, err
}

func (s *AsanaService) DeleteTask(ctx context.Context, taskId string) error {
	err := s.asanaClient.DeleteTask(ctx, taskId)
	s.record("delete_task", taskId, err)
	return err
}

func (s *AsanaService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.asanaClient.ListProjects(ctx)
}

func (s *AsanaService) CreateProject(ctx context.Context, fields models.ProjectFields) (*models.Project, error) {
	project, err := s.asanaClient.CreateProject(ctx, fields)
	var gid string
	if project != nil {
		gid = project.ID
	}
	s.record("create_project", gid, err)
	return project, err
}

func (s *AsanaService) ListWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	return s.asanaClient.ListWorkspaces(ctx)
}

func (s *AsanaService) RegisterWebhook(ctx context.Context, resourceId, targetUrl string) (*models.Webhook, error) {
	webhook, err := s.asanaClient.RegisterWebhook(ctx, resourceId, targetUrl)
	gid := resourceId
	if webhook != nil {
		gid = webhook.ID
	}
	s.record("register_webhook", gid, err)
	return webhook, err
}

func (s *AsanaService) GetRuns() ([]repository.Run, error) {
	if !s.journalEnabled() {
		return nil, ErrJournalDisabled
	}
	return s.runs.GetRuns()
}

func (s *AsanaService) GetRunOperations(runId string) ([]repository.Operation, error) {
	if !s.journalEnabled() {
		return nil, ErrJournalDisabled
	}
	if _, err := s.runs.GetRun(runId); err != nil {
		return nil, err
	}
	return s.operations.ListByRun(runId)
}

// record journals a finished call. A journal failure is logged and never
// changes the outcome of the call itself.
func (s *AsanaService) record(operation, resourceGid string, callErr error) {
	if !s.journalEnabled() || s.runId == "" {
		return
	}

	op := &repository.Operation{
		RunID:       s.runId,
		Operation:   operation,
		ResourceGID: resourceGid,
		Status:      repository.OperationStatusSuccess,
	}
	if callErr != nil {
		op.Status = repository.OperationStatusFailed
		op.StatusCode = asana.StatusCode(callErr)
		op.ErrorMessage = callErr.Error()
	}

	if _, err := s.operations.Create(op); err != nil {
		s.logger.Warn("failed to journal operation", "operation", operation, "error", err)
	}
}
