package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TWRT/asana-client/internal/client/asana"
	"github.com/TWRT/asana-client/internal/models"
	"github.com/TWRT/asana-client/internal/repository"
)

type fakeAsana struct {
	calls []string
	err   error
}

func (f *fakeAsana) ListTasks(ctx context.Context, projectId string) ([]models.Task, error) {
	f.calls = append(f.calls, "ListTasks:"+projectId)
	return []models.Task{{ID: "T1", ProjectIDs: []string{projectId}}}, f.err
}

func (f *fakeAsana) CreateTask(ctx context.Context, fields models.TaskFields) (*models.Task, error) {
	f.calls = append(f.calls, "CreateTask:"+fields.Name.Get())
	if f.err != nil {
		return nil, f.err
	}
	return &models.Task{ID: "T-new", Name: fields.Name.Get()}, nil
}

func (f *fakeAsana) UpdateTask(ctx context.Context, taskId string, fields models.TaskFields) (*models.Task, error) {
	f.calls = append(f.calls, "UpdateTask:"+taskId)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Task{ID: taskId, Name: fields.Name.Get()}, nil
}

func (f *fakeAsana) DeleteTask(ctx context.Context, taskId string) error {
	f.calls = append(f.calls, "DeleteTask:"+taskId)
	return f.err
}

func (f *fakeAsana) ListProjects(ctx context.Context) ([]models.Project, error) {
	f.calls = append(f.calls, "ListProjects")
	return []models.Project{{ID: "P1"}}, f.err
}

func (f *fakeAsana) CreateProject(ctx context.Context, fields models.ProjectFields) (*models.Project, error) {
	f.calls = append(f.calls, "CreateProject:"+fields.Name)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Project{ID: "P-new", Name: fields.Name}, nil
}

func (f *fakeAsana) ListWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	f.calls = append(f.calls, "ListWorkspaces")
	return []models.Workspace{{ID: "W1"}}, f.err
}

func (f *fakeAsana) RegisterWebhook(ctx context.Context, resourceId, targetUrl string) (*models.Webhook, error) {
	f.calls = append(f.calls, "RegisterWebhook:"+resourceId)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Webhook{ID: "H1", ResourceID: resourceId, Target: targetUrl}, nil
}

func newJournaledService(t *testing.T, fake *fakeAsana) *AsanaService {
	t.Helper()
	db, err := repository.InitDB(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewAsanaService(fake, "W1",
		repository.NewRunRepository(db),
		repository.NewOperationRepository(db),
		hclog.NewNullLogger(),
	)
}

func TestAsanaService_JournalsMutatingCalls(t *testing.T) {
	fake := &fakeAsana{}
	svc := newJournaledService(t, fake)
	ctx := context.Background()

	runId, err := svc.StartRun("test")
	require.NoError(t, err)
	require.NotEmpty(t, runId)

	_, err = svc.ListTasks(ctx, "P1")
	require.NoError(t, err)
	_, err = svc.ListProjects(ctx)
	require.NoError(t, err)
	_, err = svc.ListWorkspaces(ctx)
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, models.TaskFields{Name: models.String("T")})
	require.NoError(t, err)
	_, err = svc.UpdateTask(ctx, "T1", models.TaskFields{Name: models.String("T")})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTask(ctx, "T1"))
	_, err = svc.CreateProject(ctx, models.ProjectFields{Name: "P"})
	require.NoError(t, err)
	_, err = svc.RegisterWebhook(ctx, "P1", "https://example.com/hook")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"ListTasks:P1", "ListProjects", "ListWorkspaces",
		"CreateTask:T", "UpdateTask:T1", "DeleteTask:T1",
		"CreateProject:P", "RegisterWebhook:P1",
	}, fake.calls)

	ops, err := svc.GetRunOperations(runId)
	require.NoError(t, err)
	var names, gids []string
	for _, op := range ops {
		names = append(names, op.Operation)
		gids = append(gids, op.ResourceGID)
		assert.Equal(t, repository.OperationStatusSuccess, op.Status)
	}
	assert.Equal(t, []string{"create_task", "update_task", "delete_task", "create_project", "register_webhook"}, names)
	assert.Equal(t, []string{"T-new", "T1", "T1", "P-new", "H1"}, gids)

	require.NoError(t, svc.CompleteRun(repository.RunStatusCompleted))
	runs, err := svc.GetRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, repository.RunStatusCompleted, runs[0].Status)
	assert.Equal(t, "W1", runs[0].WorkspaceID)
}

func TestAsanaService_FailedCallIsJournaledAndReturned(t *testing.T) {
	remoteErr := &asana.APIError{StatusCode: 404, Errors: []asana.AsanaDetailError{{Message: "task: Unknown object"}}}
	fake := &fakeAsana{err: remoteErr}
	svc := newJournaledService(t, fake)

	runId, err := svc.StartRun("test")
	require.NoError(t, err)

	err = svc.DeleteTask(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, remoteErr))

	ops, err := svc.GetRunOperations(runId)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, repository.OperationStatusFailed, ops[0].Status)
	assert.Equal(t, 404, ops[0].StatusCode)
	assert.Equal(t, "missing", ops[0].ResourceGID)
	assert.Contains(t, ops[0].ErrorMessage, "Unknown object")
}

func TestAsanaService_WithoutJournal(t *testing.T) {
	fake := &fakeAsana{}
	svc := NewAsanaService(fake, "W1", nil, nil, nil)

	runId, err := svc.StartRun("test")
	require.NoError(t, err)
	assert.NotEmpty(t, runId)
	assert.Equal(t, runId, svc.RunID())

	_, err = svc.CreateTask(context.Background(), models.TaskFields{Name: models.String("T")})
	require.NoError(t, err)
	require.NoError(t, svc.CompleteRun(repository.RunStatusCompleted))

	_, err = svc.GetRuns()
	assert.ErrorIs(t, err, ErrJournalDisabled)
	_, err = svc.GetRunOperations(runId)
	assert.ErrorIs(t, err, ErrJournalDisabled)
}

func TestAsanaService_UnknownRun(t *testing.T) {
	svc := newJournaledService(t, &fakeAsana{})

	_, err := svc.GetRunOperations("does-not-exist")
	require.Error(t, err)
}
