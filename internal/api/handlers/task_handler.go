package handlers

import (
	"net/http"

	"github.com/TWRT/asana-client/internal/client"
	"github.com/TWRT/asana-client/internal/models"
)

type TaskHandler struct {
	tasks client.TaskClient
}

func NewTaskHandler(tasks client.TaskClient) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
	}
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context(), r.URL.Query().Get("project"))
	if err != nil {
		writeUpstreamError(w, "Error trying to list tasks", err)
		return
	}
	writeData(w, http.StatusOK, tasks)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	fields, err := readData[models.TaskFields](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), fields)
	if err != nil {
		writeUpstreamError(w, "Error trying to create task", err)
		return
	}
	writeData(w, http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	fields, err := readData[models.TaskFields](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), r.PathValue("id"), fields)
	if err != nil {
		writeUpstreamError(w, "Error trying to update task", err)
		return
	}
	writeData(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.DeleteTask(r.Context(), r.PathValue("id")); err != nil {
		writeUpstreamError(w, "Error trying to delete task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
