package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/TWRT/asana-client/internal/client/asana"
	"github.com/TWRT/asana-client/internal/service"
)

type envelope[T any] struct {
	Data T `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeData[T any](w http.ResponseWriter, status int, data T) {
	writeJSON(w, status, envelope[T]{Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeUpstreamError keeps the status Asana answered with; anything that never
// got an answer is reported as a bad gateway.
func writeUpstreamError(w http.ResponseWriter, message string, err error) {
	status := asana.StatusCode(err)
	switch {
	case status != 0:
	case errors.Is(err, service.ErrJournalDisabled), errors.Is(err, sql.ErrNoRows):
		status = http.StatusNotFound
	default:
		status = http.StatusBadGateway
	}
	writeError(w, status, message+": "+err.Error())
}

func readData[T any](r *http.Request) (T, error) {
	var body envelope[T]
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return body.Data, err
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return body.Data, err
	}
	return body.Data, nil
}
