package utils

import (
	"encoding/json"
	"net/http"
)

type M map[string]interface{}

// Envelope is the wire shape every API route responds with.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func SendSuccess(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	RespondWithJSON(w, statusCode, Envelope{Success: true, Message: message, Data: data})
}

func SendError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, Envelope{Success: false, Message: message})
}

// SendErrorDetail carries a machine-usable detail string (joined
// validation violations, conflict specifics) alongside the message.
func SendErrorDetail(w http.ResponseWriter, statusCode int, message, detail string) {
	RespondWithJSON(w, statusCode, Envelope{Success: false, Message: message, Error: detail})
}
