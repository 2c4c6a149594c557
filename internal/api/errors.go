package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDecode marks a response body that could not be decoded.
var ErrDecode = errors.New("decode response")

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Op     string
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: backend returned %d", e.Op, e.Status)
}

// Detail returns the backend-provided detail message carried by err, if any.
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// parseDetail reads a FastAPI style {"detail": ...} body. Only string details
// are surfaced; validation error lists are left to the log.
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err != nil {
		return ""
	}
	return s
}
