package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the uniform error body for both services.
type ErrorResponse struct {
	Error         string `json:"error"`
	Detail        string `json:"detail,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	cid := CorrelationIDFromContext(r.Context())
	if cid != "" {
		w.Header().Set(CorrelationIDHeader, cid)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a structured error body. code is a stable machine-readable
// category; detail is an optional human-readable message.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, detail string) {
	WriteJSON(w, r, status, ErrorResponse{
		Error:         code,
		Detail:        detail,
		CorrelationID: CorrelationIDFromContext(r.Context()),
	})
}
