package dispatcher

import (
	"errors"
	"fmt"
)

// Handler fault causes that do not come from the handler's own error
var (
	ErrNilResponse     = errors.New("handler returned no response")
	ErrInvalidResponse = errors.New("handler returned an invalid response")
)

// HandlerFault wraps a handler error or panic. It is logged, never sent to the client.
type HandlerFault struct {
	Route string
	Err   error
	Panic interface{}
	Stack []byte
}

func (e *HandlerFault) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("handler for %s panicked: %v", e.Route, e.Panic)
	}
	return fmt.Sprintf("handler for %s failed: %v", e.Route, e.Err)
}

func (e *HandlerFault) Unwrap() error {
	return e.Err
}

// IsHandlerFault returns true if err is or wraps a HandlerFault
func IsHandlerFault(err error) bool {
	var fault *HandlerFault
	return errors.As(err, &fault)
}
