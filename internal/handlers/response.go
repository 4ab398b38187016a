package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON body of every error reply. Kind, Suggestion,
// Index and View are only set for calculator input errors.
type ErrorResponse struct {
	Error      string `json:"error"`
	Kind       string `json:"kind,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Index      *int   `json:"index,omitempty"`
	View       any    `json:"view,omitempty"`
}

// WriteError writes a standardised JSON error response.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteErrorResponse(w, status, ErrorResponse{Error: msg})
}

// WriteErrorResponse writes resp as a JSON error response.
func WriteErrorResponse(w http.ResponseWriter, status int, resp ErrorResponse) {
	WriteJSON(w, status, resp)
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
