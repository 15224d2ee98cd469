package handlers

import (
	"net/http"

	"github.com/TWRT/asana-client/internal/client"
)

type WorkspaceHandler struct {
	workspaces client.WorkspaceProvider
}

func NewWorkspaceHandler(workspaces client.WorkspaceProvider) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaces: workspaces,
	}
}

func (h *WorkspaceHandler) ListWorkspaces(w http.ResponseWriter, r *http.Request) {
	workspaces, err := h.workspaces.ListWorkspaces(r.Context())
	if err != nil {
		writeUpstreamError(w, "Error trying to get Asana workspaces", err)
		return
	}
	writeData(w, http.StatusOK, workspaces)
}
