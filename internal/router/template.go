package router

import (
	"fmt"
	"net/url"
	"strings"

	"hello-api/internal/models"
)

type segmentKind int

const (
	segmentLiteral segmentKind = iota
	segmentParam
	segmentCatchAll
)

type segment struct {
	kind  segmentKind
	value string // literal text or parameter name
}

// Template is a compiled route template such as /api/items/{id} or /files/{path+}
type Template struct {
	raw      string
	segments []segment
}

// Compile parses a route template. Segments are literals, {name} parameters,
// or a single trailing {name+} catch-all.
func Compile(template string) (*Template, error) {
	if !strings.HasPrefix(template, "/") {
		return nil, &CompileError{Template: template, Reason: "must start with '/'"}
	}

	parts := strings.Split(template, "/")[1:]
	segments := make([]segment, 0, len(parts))
	names := make(map[string]struct{})

	for i, part := range parts {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, &CompileError{Template: template, Reason: err.Error()}
		}

		if seg.kind == segmentCatchAll && i != len(parts)-1 {
			return nil, &CompileError{Template: template, Reason: fmt.Sprintf("catch-all '{%s+}' must be the last segment", seg.value)}
		}

		if seg.kind != segmentLiteral {
			if _, dup := names[seg.value]; dup {
				return nil, &CompileError{Template: template, Reason: fmt.Sprintf("duplicate parameter '%s'", seg.value)}
			}
			names[seg.value] = struct{}{}
		}

		segments = append(segments, seg)
	}

	return &Template{raw: template, segments: segments}, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(template string) *Template {
	t, err := Compile(template)
	if err != nil {
		panic(err)
	}
	return t
}

func parseSegment(part string) (segment, error) {
	open := strings.Count(part, "{")
	closing := strings.Count(part, "}")

	if open == 0 && closing == 0 {
		return segment{kind: segmentLiteral, value: part}, nil
	}
	if open != 1 || closing != 1 || !strings.HasPrefix(part, "{") || !strings.HasSuffix(part, "}") {
		return segment{}, fmt.Errorf("malformed segment '%s'", part)
	}

	name := part[1 : len(part)-1]
	kind := segmentParam
	if strings.HasSuffix(name, "+") {
		name = strings.TrimSuffix(name, "+")
		kind = segmentCatchAll
	}
	if name == "" || strings.ContainsAny(name, "+/") {
		return segment{}, fmt.Errorf("invalid parameter name in '%s'", part)
	}

	return segment{kind: kind, value: name}, nil
}

// String returns the template as it was registered
func (t *Template) String() string {
	return t.raw
}

// shape returns the template with parameter names erased, so /a/{id} and /a/{key} compare equal
func (t *Template) shape() string {
	var b strings.Builder
	for _, seg := range t.segments {
		b.WriteByte('/')
		switch seg.kind {
		case segmentLiteral:
			b.WriteString(seg.value)
		case segmentParam:
			b.WriteString("{}")
		case segmentCatchAll:
			b.WriteString("{+}")
		}
	}
	return b.String()
}

// ParamNames returns the parameter names in template order
func (t *Template) ParamNames() []string {
	var names []string
	for _, seg := range t.segments {
		if seg.kind != segmentLiteral {
			names = append(names, seg.value)
		}
	}
	return names
}

// Match tests path against the template and returns the bound parameters.
// A catch-all needs at least one non-empty remaining segment.
func (t *Template) Match(path string) (models.Params, bool) {
	if !strings.HasPrefix(path, "/") {
		return nil, false
	}
	parts := strings.Split(path, "/")[1:]
	params := models.Params{}

	for i, seg := range t.segments {
		switch seg.kind {
		case segmentLiteral:
			if i >= len(parts) || parts[i] != seg.value {
				return nil, false
			}

		case segmentParam:
			if i >= len(parts) || parts[i] == "" {
				return nil, false
			}
			value, err := url.PathUnescape(parts[i])
			if err != nil {
				return nil, false
			}
			params[seg.value] = value

		case segmentCatchAll:
			rest := parts[i:]
			if !hasNonEmpty(rest) {
				return nil, false
			}
			decoded := make([]string, len(rest))
			for j, p := range rest {
				value, err := url.PathUnescape(p)
				if err != nil {
					return nil, false
				}
				decoded[j] = value
			}
			params[seg.value] = strings.Join(decoded, "/")
			return params, true
		}
	}

	if len(parts) != len(t.segments) {
		return nil, false
	}
	return params, true
}

func hasNonEmpty(parts []string) bool {
	for _, p := range parts {
		if p != "" {
			return true
		}
	}
	return false
}
