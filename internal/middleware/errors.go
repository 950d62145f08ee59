package middleware

import (
	"encoding/json"
	"net/http"
)

// errorBody mirrors handler/dto.ErrorResponse so middleware and handlers
// reject requests in the same shape.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: message, Code: code})
}
