package lambda

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"hello-api/internal/models"
)

// Payload format versions understood by Canonicalize
const (
	PayloadV1 = "1.0"
	PayloadV2 = "2.0"
)

// EventInfo carries gateway metadata that is not part of the canonical request
type EventInfo struct {
	Version   string
	RequestID string
	Stage     string
	SourceIP  string
}

// eventProbe reads just enough of a payload to pick its shape
type eventProbe struct {
	Version    string          `json:"version"`
	HTTPMethod json.RawMessage `json:"httpMethod"`
}

// Canonicalize converts an API Gateway invocation payload into a canonical request.
// REST API (v1) and HTTP API (v2) payloads are accepted; anything else is rejected
// with a MalformedEventError.
func Canonicalize(payload []byte) (*models.Request, *EventInfo, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, nil, malformed("", "payload is not a JSON object", nil)
	}

	var probe eventProbe
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, nil, malformed("", "invalid JSON", err)
	}

	switch {
	case probe.Version == PayloadV2:
		var event events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(trimmed, &event); err != nil {
			return nil, nil, malformed("", "invalid HTTP API event", err)
		}
		return fromV2(&event)

	case len(probe.HTTPMethod) > 0 && string(probe.HTTPMethod) != "null":
		var event events.APIGatewayProxyRequest
		if err := json.Unmarshal(trimmed, &event); err != nil {
			return nil, nil, malformed("", "invalid REST API event", err)
		}
		return fromV1(&event)

	default:
		return nil, nil, malformed("httpMethod", "missing", nil)
	}
}

func fromV1(event *events.APIGatewayProxyRequest) (*models.Request, *EventInfo, error) {
	headers := make(map[string][]string, len(event.Headers))
	for k, v := range event.Headers {
		headers[k] = []string{v}
	}
	for k, v := range event.MultiValueHeaders {
		headers[k] = v
	}

	query := url.Values{}
	for k, v := range event.QueryStringParameters {
		query.Set(k, v)
	}
	for k, v := range event.MultiValueQueryStringParameters {
		query[k] = v
	}

	info := &EventInfo{
		Version:   PayloadV1,
		RequestID: event.RequestContext.RequestID,
		Stage:     event.RequestContext.Stage,
		SourceIP:  event.RequestContext.Identity.SourceIP,
	}

	req, err := build(event.HTTPMethod, event.Path, headers, query, event.Body, event.IsBase64Encoded, info)
	if err != nil {
		return nil, nil, err
	}
	return req, info, nil
}

func fromV2(event *events.APIGatewayV2HTTPRequest) (*models.Request, *EventInfo, error) {
	headers := make(map[string][]string, len(event.Headers)+1)
	for k, v := range event.Headers {
		headers[k] = []string{v}
	}
	if len(event.Cookies) > 0 {
		headers["cookie"] = []string{strings.Join(event.Cookies, "; ")}
	}

	query := url.Values{}
	if event.RawQueryString != "" {
		parsed, err := url.ParseQuery(event.RawQueryString)
		if err != nil {
			return nil, nil, malformed("rawQueryString", "cannot be parsed", err)
		}
		query = parsed
	} else {
		for k, v := range event.QueryStringParameters {
			query.Set(k, v)
		}
	}

	path := event.RawPath
	if path == "" {
		path = event.RequestContext.HTTP.Path
	}

	info := &EventInfo{
		Version:   PayloadV2,
		RequestID: event.RequestContext.RequestID,
		Stage:     event.RequestContext.Stage,
		SourceIP:  event.RequestContext.HTTP.SourceIP,
	}

	req, err := build(event.RequestContext.HTTP.Method, path, headers, query, event.Body, event.IsBase64Encoded, info)
	if err != nil {
		return nil, nil, err
	}
	return req, info, nil
}

func build(method, path string, headers map[string][]string, query url.Values, body string, isBase64 bool, info *EventInfo) (*models.Request, error) {
	if strings.TrimSpace(method) == "" {
		return nil, malformed("httpMethod", "missing", nil)
	}
	if _, err := models.ParseMethod(method); err != nil {
		return nil, malformed("httpMethod", "unsupported", err)
	}
	if path == "" {
		return nil, malformed("path", "missing", nil)
	}
	if !strings.HasPrefix(path, "/") {
		return nil, malformed("path", "must start with '/'", nil)
	}

	data := []byte(body)
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, malformed("body", "invalid base64", err)
		}
		data = decoded
	}

	if info.RequestID == "" {
		info.RequestID = firstHeader(headers, "x-request-id")
	}
	if info.RequestID == "" {
		info.RequestID = uuid.New().String()
	}

	req, err := models.NewRequest(models.RequestInit{
		Method:    method,
		Path:      path,
		Headers:   headers,
		Query:     query,
		Body:      data,
		Binary:    isBase64,
		RequestID: info.RequestID,
	})
	if err != nil {
		return nil, malformed("", "invalid request", err)
	}
	return req, nil
}

func firstHeader(headers map[string][]string, key string) string {
	for k, v := range headers {
		if strings.EqualFold(k, key) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}
