package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized indicates the token is missing, expired, or invalid.
	ErrUnauthorized = errors.New("not authenticated, please sign in again")
	// ErrUnreachable indicates the server could not be contacted.
	ErrUnreachable = errors.New("cannot reach server")
	// ErrServer indicates a 5xx response.
	ErrServer = errors.New("server error, try later")
)

// ValidationError is a 4xx rejection. Server field errors are flattened
// into one human-readable message; the UI only ever displays the string.
type ValidationError struct {
	Status  int
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// validationMessage flattens a DRF-style error body into a single string.
// Handles {"detail": "..."}, {"field": ["msg", ...]}, and plain strings.
func validationMessage(body []byte) string {
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		return detail.Detail
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)

		var parts []string
		for _, name := range names {
			var msgs []string
			if err := json.Unmarshal(fields[name], &msgs); err == nil {
				parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(msgs, "; ")))
				continue
			}
			var msg string
			if err := json.Unmarshal(fields[name], &msg); err == nil {
				parts = append(parts, fmt.Sprintf("%s: %s", name, msg))
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}

	return "request rejected by server"
}
