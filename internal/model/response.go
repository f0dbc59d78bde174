package model

// Envelope is the standard response wrapper used by every API endpoint:
// {"ok": true, "data": ...} on success, {"ok": false, "error": ...} on
// failure. The web frontend keys off the "ok" field.
type Envelope struct {
	OK    bool         `json:"ok"`
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail contains the structured error information returned by the API.
// Authentication failures deliberately carry a generic message so the
// response doesn't reveal whether a username exists or a session expired.
type ErrorDetail struct {
	Message string `json:"message"`
}

// OKResponse wraps data in a success envelope.
func OKResponse(data interface{}) Envelope {
	return Envelope{OK: true, Data: data}
}

// ErrResponse wraps a message in a failure envelope.
func ErrResponse(message string) Envelope {
	return Envelope{OK: false, Error: &ErrorDetail{Message: message}}
}
