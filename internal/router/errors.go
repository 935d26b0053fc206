package router

import (
	"errors"
	"fmt"
)

// Registration errors
var (
	ErrInvalidMethod = errors.New("invalid route method")
	ErrNilHandler    = errors.New("route handler cannot be nil")
)

// CompileError reports a route template that cannot be compiled
type CompileError struct {
	Template string
	Reason   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid route template '%s': %s", e.Template, e.Reason)
}

// DuplicateRouteError reports a second registration of the same method and template shape
type DuplicateRouteError struct {
	Method   string
	Template string
	Existing string
}

func (e *DuplicateRouteError) Error() string {
	if e.Existing != e.Template {
		return fmt.Sprintf("route %s %s conflicts with %s %s", e.Method, e.Template, e.Method, e.Existing)
	}
	return fmt.Sprintf("route %s %s is already registered", e.Method, e.Template)
}

// IsCompileError returns true if err is or wraps a CompileError
func IsCompileError(err error) bool {
	var compileErr *CompileError
	return errors.As(err, &compileErr)
}

// IsDuplicateRoute returns true if err is or wraps a DuplicateRouteError
func IsDuplicateRoute(err error) bool {
	var dupErr *DuplicateRouteError
	return errors.As(err, &dupErr)
}
