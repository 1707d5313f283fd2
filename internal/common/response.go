package common

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the uniform envelope every endpoint returns:
// {status: true, data: ...} on success, {status: false, message: ...} on failure.
type APIResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, APIResponse{Status: false, Message: message})
}

func RespondWithData(w http.ResponseWriter, code int, data interface{}) {
	RespondWithJSON(w, code, APIResponse{Status: true, Data: data})
}

func RespondWithMessage(w http.ResponseWriter, code int, message string, data interface{}) {
	RespondWithJSON(w, code, APIResponse{Status: true, Message: message, Data: data})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status": false, "message": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
