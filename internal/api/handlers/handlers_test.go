package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TWRT/asana-client/internal/models"
)

type fakeProjects struct {
	created models.ProjectFields
	err     error
}

func (f *fakeProjects) ListProjects(ctx context.Context) ([]models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.Project{{ID: "P1", Name: "Proj", WorkspaceID: "W1"}}, nil
}

func (f *fakeProjects) CreateProject(ctx context.Context, fields models.ProjectFields) (*models.Project, error) {
	f.created = fields
	return &models.Project{ID: "P2", Name: fields.Name, WorkspaceID: "W1"}, nil
}

type fakeWorkspaces struct{}

func (fakeWorkspaces) ListWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	return []models.Workspace{{ID: "W1", Name: "Acme"}}, nil
}

type fakeWebhooks struct {
	resource, target string
}

func (f *fakeWebhooks) RegisterWebhook(ctx context.Context, resourceId, targetUrl string) (*models.Webhook, error) {
	f.resource, f.target = resourceId, targetUrl
	return &models.Webhook{ID: "H1", Active: true, ResourceID: resourceId, Target: targetUrl}, nil
}

func TestProjectHandler(t *testing.T) {
	projects := &fakeProjects{}
	h := NewProjectHandler(projects)

	rec := httptest.NewRecorder()
	h.ListProjects(rec, httptest.NewRequest(http.MethodGet, "/projects", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[{"id":"P1","name":"Proj","workspace_id":"W1"}]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.CreateProject(rec, httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(`{"data":{"name":"New"}}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "New", projects.created.Name)

	rec = httptest.NewRecorder()
	h.CreateProject(rec, httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectHandler_UpstreamError(t *testing.T) {
	h := NewProjectHandler(&fakeProjects{err: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	h.ListProjects(rec, httptest.NewRequest(http.MethodGet, "/projects", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error trying to get Asana projects")
}

func TestWorkspaceHandler(t *testing.T) {
	h := NewWorkspaceHandler(fakeWorkspaces{})

	rec := httptest.NewRecorder()
	h.ListWorkspaces(rec, httptest.NewRequest(http.MethodGet, "/workspaces", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[{"id":"W1","name":"Acme","is_organization":false}]}`, rec.Body.String())
}

func TestWebhookHandler(t *testing.T) {
	webhooks := &fakeWebhooks{}
	h := NewWebhookHandler(webhooks)

	body := `{"data":{"resource":"P1","target":"https://example.com/hook"}}`
	rec := httptest.NewRecorder()
	h.RegisterWebhook(rec, httptest.NewRequest(http.MethodPost, "/webhooks", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "P1", webhooks.resource)
	assert.Equal(t, "https://example.com/hook", webhooks.target)
}
