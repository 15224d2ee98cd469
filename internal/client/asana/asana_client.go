package asana

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"github.com/TWRT/asana-client/internal/client"
	"github.com/TWRT/asana-client/internal/models"
)

// BaseURL is the Asana REST endpoint every request is sent to.
const BaseURL = "https://app.asana.com/api/1.0"

// AsanaClient is a stateless binding of the Asana REST API scoped to one
// workspace. It is safe for concurrent use.
type AsanaClient struct {
	baseUrl     string
	workspaceId string
	httpClient  *http.Client
	logger      hclog.Logger
}

var _ client.AsanaAPI = (*AsanaClient)(nil)

type Option func(*AsanaClient)

// WithBaseURL points the client at another endpoint, mostly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *AsanaClient) { c.baseUrl = baseURL }
}

// WithHTTPClient sets the client whose transport the bearer auth is layered on.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *AsanaClient) { c.httpClient = hc }
}

func WithLogger(logger hclog.Logger) Option {
	return func(c *AsanaClient) { c.logger = logger }
}

// NewAsanaClient builds a client for the given token and workspace. Neither
// value is checked beyond presence; a bad token surfaces as a 401 from Asana.
func NewAsanaClient(token, workspaceId string, opts ...Option) (*AsanaClient, error) {
	if token == "" {
		return nil, errors.New("asana: access token is required")
	}
	if workspaceId == "" {
		return nil, errors.New("asana: workspace id is required")
	}

	c := &AsanaClient{
		baseUrl:     BaseURL,
		workspaceId: workspaceId,
		httpClient:  &http.Client{},
		logger:      hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.httpClient
	c.httpClient = &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   base.Transport,
		},
		CheckRedirect: base.CheckRedirect,
		Jar:           base.Jar,
		Timeout:       base.Timeout,
	}

	return c, nil
}

// WorkspaceID returns the workspace the client was built for.
func (c *AsanaClient) WorkspaceID() string {
	return c.workspaceId
}

func (c *AsanaClient) ListTasks(ctx context.Context, projectId string) ([]models.Task, error) {
	query := url.Values{}
	if projectId != "" {
		query.Set("project", projectId)
	}

	raw, err := c.do(ctx, http.MethodGet, "/tasks", query, nil)
	if err != nil {
		return nil, fmt.Errorf("list tasks (asana): %w", err)
	}

	data, err := decodeData[[]AsanaTask](raw)
	if err != nil {
		return nil, fmt.Errorf("parse tasks (asana): %w", err)
	}

	tasks := make([]models.Task, len(data))
	for i, t := range data {
		tasks[i] = t.toModel()
	}
	return tasks, nil
}

// CreateTask posts a new task in the client's workspace. A Workspace set on
// fields is applied after the default and therefore takes precedence.
func (c *AsanaClient) CreateTask(ctx context.Context, fields models.TaskFields) (*models.Task, error) {
	reqBody := CreateTaskRequest{
		Name:      fields.Name,
		Notes:     fields.Notes,
		Projects:  fields.Projects,
		Workspace: c.workspaceId,
		Completed: fields.Completed,
		Assignee:  fields.Assignee,
		DueOn:     fields.DueDate,
	}
	if reqBody.Projects == nil {
		reqBody.Projects = []string{}
	}
	if fields.Workspace != "" {
		if fields.Workspace != c.workspaceId {
			c.logger.Warn("task workspace overridden by caller",
				"configured", c.workspaceId, "override", fields.Workspace)
		}
		reqBody.Workspace = fields.Workspace
	}

	raw, err := c.do(ctx, http.MethodPost, "/tasks", nil, AsanaRequest[CreateTaskRequest]{Data: reqBody})
	if err != nil {
		return nil, fmt.Errorf("create task (asana): %w", err)
	}

	data, err := decodeData[AsanaTask](raw)
	if err != nil {
		return nil, fmt.Errorf("parse create task response (asana): %w", err)
	}

	task := data.toModel()
	return &task, nil
}

func (c *AsanaClient) UpdateTask(ctx context.Context, taskId string, fields models.TaskFields) (*models.Task, error) {
	reqBody := UpdateTaskRequest{
		Name:      fields.Name,
		Notes:     fields.Notes,
		Completed: fields.Completed,
		Assignee:  fields.Assignee,
		DueOn:     fields.DueDate,
		Projects:  fields.Projects,
		Workspace: fields.Workspace,
	}

	raw, err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(taskId), nil, AsanaRequest[UpdateTaskRequest]{Data: reqBody})
	if err != nil {
		return nil, fmt.Errorf("update task (asana): %w", err)
	}

	data, err := decodeData[AsanaTask](raw)
	if err != nil {
		return nil, fmt.Errorf("parse update task response (asana): %w", err)
	}

	task := data.toModel()
	return &task, nil
}

func (c *AsanaClient) DeleteTask(ctx context.Context, taskId string) error {
	if _, err := c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(taskId), nil, nil); err != nil {
		return fmt.Errorf("delete task (asana): %w", err)
	}
	return nil
}

func (c *AsanaClient) ListProjects(ctx context.Context) ([]models.Project, error) {
	query := url.Values{}
	query.Set("workspace", c.workspaceId)

	raw, err := c.do(ctx, http.MethodGet, "/projects", query, nil)
	if err != nil {
		return nil, fmt.Errorf("list projects (asana): %w", err)
	}

	data, err := decodeData[[]AsanaProject](raw)
	if err != nil {
		return nil, fmt.Errorf("parse projects (asana): %w", err)
	}

	projects := make([]models.Project, len(data))
	for i, p := range data {
		projects[i] = p.toModel()
	}
	return projects, nil
}

// CreateProject always creates the project in the client's workspace;
// fields.Workspace is ignored.
func (c *AsanaClient) CreateProject(ctx context.Context, fields models.ProjectFields) (*models.Project, error) {
	reqBody := CreateProjectRequest{
		Name:      fields.Name,
		Notes:     fields.Notes,
		Color:     fields.Color,
		Workspace: c.workspaceId,
	}

	raw, err := c.do(ctx, http.MethodPost, "/projects", nil, AsanaRequest[CreateProjectRequest]{Data: reqBody})
	if err != nil {
		return nil, fmt.Errorf("create project (asana): %w", err)
	}

	data, err := decodeData[AsanaProject](raw)
	if err != nil {
		return nil, fmt.Errorf("parse create project response (asana): %w", err)
	}

	project := data.toModel()
	return &project, nil
}

func (c *AsanaClient) ListWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	raw, err := c.do(ctx, http.MethodGet, "/workspaces", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list workspaces (asana): %w", err)
	}

	data, err := decodeData[[]AsanaWorkspace](raw)
	if err != nil {
		return nil, fmt.Errorf("parse workspaces (asana): %w", err)
	}

	workspaces := make([]models.Workspace, len(data))
	for i, w := range data {
		workspaces[i] = models.Workspace{
			ID:             w.Gid,
			Name:           w.Name,
			IsOrganization: w.IsOrganization,
			EmailDomains:   w.EmailDomains,
		}
	}
	return workspaces, nil
}

// RegisterWebhook subscribes targetUrl to changes of tasks under resourceId.
// Asana performs a handshake against targetUrl before answering.
func (c *AsanaClient) RegisterWebhook(ctx context.Context, resourceId, targetUrl string) (*models.Webhook, error) {
	reqBody := CreateWebhookRequest{
		Resource: resourceId,
		Target:   targetUrl,
		Filters: []AsanaWebhookFilter{{
			ResourceType: "task",
			Action:       "changed",
		}},
	}

	raw, err := c.do(ctx, http.MethodPost, "/webhooks", nil, AsanaRequest[CreateWebhookRequest]{Data: reqBody})
	if err != nil {
		return nil, fmt.Errorf("register webhook (asana): %w", err)
	}

	data, err := decodeData[AsanaWebhook](raw)
	if err != nil {
		return nil, fmt.Errorf("parse webhook response (asana): %w", err)
	}

	webhook := data.toModel()
	return &webhook, nil
}

// do sends one request and returns the raw body of a 2xx response.
// It never retries.
func (c *AsanaClient) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	reqURL := c.baseUrl + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	c.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var asanaErr AsanaErrors
		if err := json.Unmarshal(respBody, &asanaErr); err == nil {
			apiErr.Errors = asanaErr.Errors
		}
		return nil, apiErr
	}

	return respBody, nil
}

func decodeData[T any](raw []byte) (T, error) {
	var resp AsanaResponse[T]
	if err := json.Unmarshal(raw, &resp); err != nil {
		return resp.Data, err
	}
	return resp.Data, nil
}

// IsNotFound reports whether err carries a 404 from Asana.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// StatusCode returns the HTTP status of an APIError in err's chain, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
