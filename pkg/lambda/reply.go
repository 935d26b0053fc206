package lambda

import (
	"encoding/base64"
	"strconv"
	"strings"

	"hello-api/internal/models"
)

// Reply is the response document returned to API Gateway. Every field is always
// emitted except multiValueHeaders and cookies, which are only set when needed.
type Reply struct {
	StatusCode        int                 `json:"statusCode"`
	Headers           map[string]string   `json:"headers"`
	MultiValueHeaders map[string][]string `json:"multiValueHeaders,omitempty"`
	Cookies           []string            `json:"cookies,omitempty"`
	Body              string              `json:"body"`
	IsBase64Encoded   bool                `json:"isBase64Encoded"`
}

// Decode returns the body bytes the reply carries
func (r Reply) Decode() ([]byte, error) {
	if r.IsBase64Encoded {
		return base64.StdEncoding.DecodeString(r.Body)
	}
	return []byte(r.Body), nil
}

// Serialize converts a canonical response into a REST API (v1) reply
func Serialize(resp *models.Response) Reply {
	return SerializeFor(resp, PayloadV1)
}

// SerializeFor converts a canonical response into the reply shape of the given
// payload version. v1 carries repeated headers in multiValueHeaders; v2 joins them
// with commas and moves Set-Cookie values to cookies.
func SerializeFor(resp *models.Response, version string) Reply {
	reply := Reply{
		StatusCode: resp.StatusCode(),
		Headers:    map[string]string{},
	}

	header := resp.Header()
	contentType := resp.ContentType()
	if contentType == "" {
		contentType = header.Get("Content-Type")
	} else if !header.Has("Content-Type") {
		header["Content-Type"] = []string{contentType}
	}

	if body := resp.Body(); len(body) > 0 {
		if models.IsTextContentType(contentType) {
			reply.Body = string(body)
		} else {
			reply.Body = base64.StdEncoding.EncodeToString(body)
			reply.IsBase64Encoded = true
		}
	}

	for _, key := range header.Keys() {
		values := header[key]
		if strings.EqualFold(key, "Content-Length") {
			values = []string{strconv.Itoa(len(reply.Body))}
		}
		if len(values) == 0 {
			continue
		}

		switch {
		case version == PayloadV2 && strings.EqualFold(key, "Set-Cookie"):
			reply.Cookies = append(reply.Cookies, values...)
		case version == PayloadV2:
			reply.Headers[key] = strings.Join(values, ",")
		case len(values) == 1:
			reply.Headers[key] = values[0]
		default:
			if reply.MultiValueHeaders == nil {
				reply.MultiValueHeaders = map[string][]string{}
			}
			reply.MultiValueHeaders[key] = append([]string(nil), values...)
		}
	}

	return reply
}
