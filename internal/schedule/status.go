package schedule

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the closed appointment state enumeration. Wire literals are the
// Spanish strings the backend stores.
type Status string

const (
	StatusPending   Status = "pendiente"
	StatusConfirmed Status = "confirmada"
	StatusCancelled Status = "cancelada"
)

// ParseStatus validates a wire status string.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusConfirmed:
		return StatusConfirmed, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", fmt.Errorf("schedule: unknown status %q", s)
	}
}

// CanTransition encodes the appointment state machine:
//
//	pending   -> confirmed | cancelled
//	confirmed -> cancelled
//	cancelled -> (terminal)
//
// Rescheduling is a date/time mutation and never appears here.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled
	default:
		return false
	}
}

// Terminal reports whether no further transitions exist from s.
func (s Status) Terminal() bool {
	return s == StatusCancelled
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
