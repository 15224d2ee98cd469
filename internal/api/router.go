package api

import (
	"net/http"

	"github.com/TWRT/asana-client/internal/api/handlers"
	"github.com/TWRT/asana-client/internal/client"
)

// Service is everything the router needs: the Asana operations plus the
// journal queries.
type Service interface {
	client.AsanaAPI
	handlers.RunService
}

func SetupRouter(svc Service) *http.ServeMux {
	mux := http.NewServeMux()

	taskHandler := handlers.NewTaskHandler(svc)
	workspaceHandler := handlers.NewWorkspaceHandler(svc)
	projectHandler := handlers.NewProjectHandler(svc)
	webhookHandler := handlers.NewWebhookHandler(svc)
	runHandler := handlers.NewRunHandler(svc)

	mux.HandleFunc("GET /tasks", taskHandler.ListTasks)
	mux.HandleFunc("POST /tasks", taskHandler.CreateTask)
	mux.HandleFunc("PUT /tasks/{id}", taskHandler.UpdateTask)
	mux.HandleFunc("DELETE /tasks/{id}", taskHandler.DeleteTask)

	mux.HandleFunc("GET /workspaces", workspaceHandler.ListWorkspaces)
	mux.HandleFunc("GET /projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /projects", projectHandler.CreateProject)
	mux.HandleFunc("POST /webhooks", webhookHandler.RegisterWebhook)

	mux.HandleFunc("GET /runs", runHandler.ListRuns)
	mux.HandleFunc("GET /runs/{id}/operations", runHandler.ListOperations)

	return mux
}
