package router

import (
	"fmt"
	"sort"
	"strings"

	"hello-api/internal/models"
)

// Outcome is the result kind of a route lookup
type Outcome int

const (
	NotFound Outcome = iota
	Matched
	MethodNotAllowed
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case MethodNotAllowed:
		return "method_not_allowed"
	default:
		return "not_found"
	}
}

// Resolution describes how a method and path resolved against the table
type Resolution struct {
	Outcome  Outcome
	Handler  models.Handler
	Params   models.Params
	Template string
	// Allowed lists the methods registered for the path when Outcome is MethodNotAllowed
	Allowed []string
}

// Route is a registered route entry
type Route struct {
	Method   models.Method
	Template *Template
	Handler  models.Handler
}

// Table is an ordered route table. Entries are matched in registration order and
// the first match wins. Registration must finish before the table is shared;
// Resolve takes no locks.
type Table struct {
	routes []*Route
}

// NewTable creates an empty route table
func NewTable() *Table {
	return &Table{}
}

// Register adds a route. The template is compiled immediately.
func (t *Table) Register(method models.Method, template string, handler models.Handler) error {
	method = models.Method(strings.ToUpper(string(method)))
	if !method.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
	if fn, ok := handler.(models.HandlerFunc); handler == nil || (ok && fn == nil) {
		return fmt.Errorf("%w: %s %s", ErrNilHandler, method, template)
	}

	compiled, err := Compile(template)
	if err != nil {
		return err
	}

	shape := compiled.shape()
	for _, existing := range t.routes {
		if existing.Method == method && existing.Template.shape() == shape {
			return &DuplicateRouteError{
				Method:   string(method),
				Template: template,
				Existing: existing.Template.String(),
			}
		}
	}

	t.routes = append(t.routes, &Route{Method: method, Template: compiled, Handler: handler})
	return nil
}

// Routes returns the registered routes in priority order
func (t *Table) Routes() []Route {
	out := make([]Route, 0, len(t.routes))
	for _, r := range t.routes {
		out = append(out, *r)
	}
	return out
}

// Len returns the number of registered routes
func (t *Table) Len() int {
	return len(t.routes)
}

// Resolve finds the handler for method and path
func (t *Table) Resolve(method models.Method, path string) Resolution {
	method = models.Method(strings.ToUpper(string(method)))

	var allowed map[string]struct{}
	for _, route := range t.routes {
		params, ok := route.Template.Match(path)
		if !ok {
			continue
		}

		if route.Method == models.MethodAny || route.Method == method {
			return Resolution{
				Outcome:  Matched,
				Handler:  route.Handler,
				Params:   params,
				Template: route.Template.String(),
			}
		}

		if allowed == nil {
			allowed = make(map[string]struct{})
		}
		allowed[string(route.Method)] = struct{}{}
	}

	if allowed == nil {
		return Resolution{Outcome: NotFound}
	}

	methods := make([]string, 0, len(allowed))
	for m := range allowed {
		methods = append(methods, m)
	}
	sort.Strings(methods)

	return Resolution{Outcome: MethodNotAllowed, Allowed: methods}
}

// Group registers routes under a common path prefix
type Group struct {
	table  *Table
	prefix string
}

// Group returns a registrar that prefixes every template with prefix
func (t *Table) Group(prefix string) *Group {
	return &Group{table: t, prefix: strings.TrimSuffix(prefix, "/")}
}

// Register adds a route whose template is joined to the group prefix
func (g *Group) Register(method models.Method, template string, handler models.Handler) error {
	return g.table.Register(method, g.prefix+template, handler)
}

// GET registers a GET route
func (g *Group) GET(template string, handler models.HandlerFunc) error {
	return g.Register(models.MethodGet, template, handler)
}

// POST registers a POST route
func (g *Group) POST(template string, handler models.HandlerFunc) error {
	return g.Register(models.MethodPost, template, handler)
}

// Any registers a route that accepts every method
func (g *Group) Any(template string, handler models.HandlerFunc) error {
	return g.Register(models.MethodAny, template, handler)
}
