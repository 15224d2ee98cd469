package models

type WebhookFilter struct {
	ResourceType string `json:"resource_type"`
	Action       string `json:"action"`
}

// Webhook is the confirmation returned when a webhook is registered.
type Webhook struct {
	ID         string          `json:"id"`
	Active     bool            `json:"active"`
	ResourceID string          `json:"resource_id"`
	Target     string          `json:"target"`
	Filters    []WebhookFilter `json:"filters,omitempty"`
}
