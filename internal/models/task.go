package models

// Task is a task as returned by the remote service.
type Task struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Notes      string   `json:"notes,omitempty"`
	Completed  bool     `json:"completed"`
	Assignee   string   `json:"assignee,omitempty"`
	DueDate    string   `json:"due_date,omitempty"`
	ProjectIDs []string `json:"project_ids"`
}

// TaskFields holds the fields a caller sets when creating or updating a task.
// Unset fields are left out of the request; String("") and NullString() are
// sent as "" and null so an update can clear a field.
type TaskFields struct {
	Name      OptionalString `json:"name,omitzero"`
	Notes     OptionalString `json:"notes,omitzero"`
	Completed *bool          `json:"completed,omitempty"`
	Assignee  OptionalString `json:"assignee,omitzero"`
	DueDate   OptionalString `json:"due_on,omitzero"`
	Projects  []string       `json:"projects,omitempty"`

	// Workspace overrides the client's workspace on create.
	Workspace string `json:"workspace,omitempty"`
}
