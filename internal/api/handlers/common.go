package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hollis/teamhub/internal/api/dto"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message, StatusCode: status})
}

func writeValidationError(w http.ResponseWriter, details map[string]string) {
	writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
		Error:      "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details:    details,
	})
}
