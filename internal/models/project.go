package models

type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Notes       string `json:"notes,omitempty"`
	Color       string `json:"color,omitempty"`
	WorkspaceID string `json:"workspace_id"`
}

// ProjectFields holds the fields a caller sets when creating a project.
// Workspace is accepted for symmetry with TaskFields but is never sent.
type ProjectFields struct {
	Name      string `json:"name,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Color     string `json:"color,omitempty"`
	Workspace string `json:"workspace,omitempty"`
}

type Workspace struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	IsOrganization bool     `json:"is_organization"`
	EmailDomains   []string `json:"email_domains,omitempty"`
}
