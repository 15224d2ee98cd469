package handlers

import (
	"net/http"

	"github.com/TWRT/asana-client/internal/client"
	"github.com/TWRT/asana-client/internal/models"
)

type ProjectHandler struct {
	projects client.ProjectClient
}

func NewProjectHandler(projects client.ProjectClient) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
	}
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.ListProjects(r.Context())
	if err != nil {
		writeUpstreamError(w, "Error trying to get Asana projects", err)
		return
	}
	writeData(w, http.StatusOK, projects)
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	fields, err := readData[models.ProjectFields](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}

	project, err := h.projects.CreateProject(r.Context(), fields)
	if err != nil {
		writeUpstreamError(w, "Error trying to create project", err)
		return
	}
	writeData(w, http.StatusCreated, project)
}
