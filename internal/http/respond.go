package http

import (
	"encoding/json"
	"log"
	"net/http"
)

// The two fixed auth error bodies every protected route shares.
type authError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

var (
	unauthorizedAccess = authError{Status: http.StatusUnauthorized, Message: "Unauthorized access"}
	forbiddenAccess    = authError{Status: http.StatusForbidden, Message: "Forbidden access"}
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

func respondUnauthorized(w http.ResponseWriter) {
	respondJSON(w, http.StatusUnauthorized, unauthorizedAccess)
}

func respondForbidden(w http.ResponseWriter) {
	respondJSON(w, http.StatusForbidden, forbiddenAccess)
}
