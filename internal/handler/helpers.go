package handler

import (
	"encoding/json"
	"net/http"

	"github.com/msfworks/showcase/internal/model"
)

// writeJSON serializes v as JSON and writes it to the response with the given
// HTTP status code. The Content-Type header is set to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeOK wraps data in the success envelope.
func writeOK(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, model.OKResponse(data))
}

// writeError writes a failure envelope with the given message. Messages for
// authentication failures must stay generic; see the auth handlers.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.ErrResponse(message))
}

// readJSON decodes the request body as JSON into v. The body is closed after
// decoding regardless of success or failure.
func readJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
