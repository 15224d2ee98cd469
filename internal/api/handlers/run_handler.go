package handlers

import (
	"net/http"

	"github.com/TWRT/asana-client/internal/repository"
)

type RunService interface {
	GetRuns() ([]repository.Run, error)
	GetRunOperations(runId string) ([]repository.Operation, error)
}

type RunHandler struct {
	runService RunService
}

func NewRunHandler(runService RunService) *RunHandler {
	return &RunHandler{
		runService: runService,
	}
}

func (h *RunHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.runService.GetRuns()
	if err != nil {
		writeUpstreamError(w, "Error trying to get runs", err)
		return
	}
	if runs == nil {
		runs = []repository.Run{}
	}
	writeData(w, http.StatusOK, runs)
}

func (h *RunHandler) ListOperations(w http.ResponseWriter, r *http.Request) {
	ops, err := h.runService.GetRunOperations(r.PathValue("id"))
	if err != nil {
		writeUpstreamError(w, "Error trying to get run operations", err)
		return
	}
	if ops == nil {
		ops = []repository.Operation{}
	}
	writeData(w, http.StatusOK, ops)
}
