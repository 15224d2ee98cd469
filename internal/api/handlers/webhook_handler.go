package handlers

import (
	"net/http"

	"github.com/TWRT/asana-client/internal/client"
)

type WebhookHandler struct {
	webhooks client.WebhookRegistrar
}

func NewWebhookHandler(webhooks client.WebhookRegistrar) *WebhookHandler {
	return &WebhookHandler{
		webhooks: webhooks,
	}
}

type RegisterWebhookRequestBody struct {
	Resource string `json:"resource"`
	Target   string `json:"target"`
}

func (h *WebhookHandler) RegisterWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := readData[RegisterWebhookRequestBody](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}

	webhook, err := h.webhooks.RegisterWebhook(r.Context(), body.Resource, body.Target)
	if err != nil {
		writeUpstreamError(w, "Error trying to register webhook", err)
		return
	}
	writeData(w, http.StatusCreated, webhook)
}
