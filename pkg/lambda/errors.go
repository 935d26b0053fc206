package lambda

import (
	"errors"
	"fmt"
)

// ErrMalformedEvent is matched by every MalformedEventError
var ErrMalformedEvent = errors.New("malformed event")

// MalformedEventError reports an invocation payload that cannot be canonicalized
type MalformedEventError struct {
	Field  string // Event field at fault, empty when the payload as a whole is unusable
	Reason string
	Err    error // Underlying decode error, if any
}

func (e *MalformedEventError) Error() string {
	msg := "malformed event"
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *MalformedEventError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMalformedEvent) hold for every MalformedEventError
func (e *MalformedEventError) Is(target error) bool {
	return target == ErrMalformedEvent
}

func malformed(field, reason string, err error) *MalformedEventError {
	return &MalformedEventError{Field: field, Reason: reason, Err: err}
}

// IsMalformedEvent returns true if err is or wraps a MalformedEventError
func IsMalformedEvent(err error) bool {
	return errors.Is(err, ErrMalformedEvent)
}
