package api

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// APIError is a non-2xx backend response normalized into something the
// screen layer can display. For 422-style validation failures Message holds
// the first field error; the rest are discarded on purpose (the UX contract
// is "show the first actionable error").
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// UserMessage returns the displayable message. The scheduling layer surfaces
// it verbatim instead of its generic fallback.
func (e *APIError) UserMessage() string {
	return e.Message
}

// errorBody covers the error shapes the backend emits: a plain message
// (either language key) and/or a field-errors map.
type errorBody struct {
	Message  string              `json:"message"`
	Mensaje  string              `json:"mensaje"`
	ErrorMsg string              `json:"error"`
	Errors   map[string][]string `json:"errors"`
}

// parseErrorBody extracts the most actionable message from a failed response
// body. Field errors win over the envelope message; fields are walked in
// sorted order so the pick is deterministic.
func parseErrorBody(status int, body []byte) *APIError {
	out := &APIError{Status: status}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if msg := firstFieldError(parsed.Errors); msg != "" {
			out.Message = msg
			return out
		}
		for _, msg := range []string{parsed.Mensaje, parsed.Message, parsed.ErrorMsg} {
			if strings.TrimSpace(msg) != "" {
				out.Message = strings.TrimSpace(msg)
				return out
			}
		}
	}

	out.Message = fmt.Sprintf("Error del servidor (%d)", status)
	return out
}

func firstFieldError(fields map[string][]string) string {
	if len(fields) == 0 {
		return ""
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, msg := range fields[name] {
			if strings.TrimSpace(msg) != "" {
				return strings.TrimSpace(msg)
			}
		}
	}
	return ""
}
