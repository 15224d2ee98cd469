package asana

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/TWRT/asana-client/internal/models"
)

// AsanaResponse is the {"data": ...} envelope wrapping every response body.
type AsanaResponse[T any] struct {
	Data T `json:"data"`
}

// AsanaRequest is the {"data": ...} envelope wrapping every request body.
type AsanaRequest[T any] struct {
	Data T `json:"data"`
}

// CompactRef is a reference to another resource. Asana returns compact
// objects ({"gid": "..."}) but some callers and fixtures send bare gids,
// so both forms are accepted.
type CompactRef struct {
	Gid  string `json:"gid"`
	Name string `json:"name,omitempty"`
}

func (r *CompactRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = CompactRef{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var gid string
		if err := json.Unmarshal(data, &gid); err != nil {
			return err
		}
		*r = CompactRef{Gid: gid}
		return nil
	}

	type plain CompactRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = CompactRef(p)
	return nil
}

type AsanaTask struct {
	Gid       string       `json:"gid"`
	Name      string       `json:"name"`
	Notes     string       `json:"notes"`
	Completed bool         `json:"completed"`
	Assignee  *CompactRef  `json:"assignee"`
	DueOn     string       `json:"due_on"`
	Projects  []CompactRef `json:"projects"`
}

func (t AsanaTask) toModel() models.Task {
	projectIDs := make([]string, 0, len(t.Projects))
	for _, p := range t.Projects {
		projectIDs = append(projectIDs, p.Gid)
	}

	var assignee string
	if t.Assignee != nil {
		assignee = t.Assignee.Gid
	}

	return models.Task{
		ID:         t.Gid,
		Name:       t.Name,
		Notes:      t.Notes,
		Completed:  t.Completed,
		Assignee:   assignee,
		DueDate:    t.DueOn,
		ProjectIDs: projectIDs,
	}
}

type AsanaProject struct {
	Gid       string      `json:"gid"`
	Name      string      `json:"name"`
	Notes     string      `json:"notes"`
	Color     string      `json:"color"`
	Workspace *CompactRef `json:"workspace"`
}

func (p AsanaProject) toModel() models.Project {
	var workspaceID string
	if p.Workspace != nil {
		workspaceID = p.Workspace.Gid
	}
	return models.Project{
		ID:          p.Gid,
		Name:        p.Name,
		Notes:       p.Notes,
		Color:       p.Color,
		WorkspaceID: workspaceID,
	}
}

type AsanaWorkspace struct {
	Gid            string   `json:"gid"`
	Name           string   `json:"name"`
	IsOrganization bool     `json:"is_organization"`
	EmailDomains   []string `json:"email_domains"`
}

type AsanaWebhookFilter struct {
	ResourceType string `json:"resource_type"`
	Action       string `json:"action"`
}

type AsanaWebhook struct {
	Gid      string               `json:"gid"`
	Active   bool                 `json:"active"`
	Resource *CompactRef          `json:"resource"`
	Target   string               `json:"target"`
	Filters  []AsanaWebhookFilter `json:"filters"`
}

func (w AsanaWebhook) toModel() models.Webhook {
	var resourceID string
	if w.Resource != nil {
		resourceID = w.Resource.Gid
	}
	filters := make([]models.WebhookFilter, 0, len(w.Filters))
	for _, f := range w.Filters {
		filters = append(filters, models.WebhookFilter{ResourceType: f.ResourceType, Action: f.Action})
	}
	return models.Webhook{
		ID:         w.Gid,
		Active:     w.Active,
		ResourceID: resourceID,
		Target:     w.Target,
		Filters:    filters,
	}
}

// CreateTaskRequest is the create-task body. Projects is always sent.
type CreateTaskRequest struct {
	Name      models.OptionalString `json:"name,omitzero"`
	Notes     models.OptionalString `json:"notes,omitzero"`
	Projects  []string              `json:"projects"`
	Workspace string                `json:"workspace"`
	Completed *bool                 `json:"completed,omitempty"`
	Assignee  models.OptionalString `json:"assignee,omitzero"`
	DueOn     models.OptionalString `json:"due_on,omitzero"`
}

// UpdateTaskRequest carries only the fields the caller set. Set string fields
// go out as "" or null, so notes can be emptied and assignee or due_on cleared.
type UpdateTaskRequest struct {
	Name      models.OptionalString `json:"name,omitzero"`
	Notes     models.OptionalString `json:"notes,omitzero"`
	Completed *bool                 `json:"completed,omitempty"`
	Assignee  models.OptionalString `json:"assignee,omitzero"`
	DueOn     models.OptionalString `json:"due_on,omitzero"`
	Projects  []string              `json:"projects,omitempty"`
	Workspace string                `json:"workspace,omitempty"`
}

type CreateProjectRequest struct {
	Name      string `json:"name,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Color     string `json:"color,omitempty"`
	Workspace string `json:"workspace"`
}

type CreateWebhookRequest struct {
	Resource string               `json:"resource"`
	Target   string               `json:"target"`
	Filters  []AsanaWebhookFilter `json:"filters"`
}

type AsanaDetailError struct {
	Message string `json:"message"`
	Help    string `json:"help,omitempty"`
	Phrase  string `json:"phrase,omitempty"`
}

type AsanaErrors struct {
	Errors []AsanaDetailError `json:"errors"`
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Errors     []AsanaDetailError
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("asana: status %d", e.StatusCode)
	}

	var merr *multierror.Error
	for _, d := range e.Errors {
		merr = multierror.Append(merr, fmt.Errorf("%s", d.Message))
	}
	merr.ErrorFormat = func(errs []error) string {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return strings.Join(msgs, "; ")
	}
	return fmt.Sprintf("asana: status %d: %s", e.StatusCode, merr.Error())
}
