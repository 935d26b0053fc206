package models

import (
	"errors"
	"mime"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors returned when a canonical value fails validation
var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrInvalidResponse = errors.New("invalid response")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("method", func(fl validator.FieldLevel) bool {
		m := Method(fl.Field().String())
		return m.IsValid() && m != MethodAny
	})
	if err != nil {
		panic("models: cannot register method validation: " + err.Error())
	}
	return v
}

// IsTextContentType reports whether a body with this content type can travel as text.
// text/*, application/json, application/xml and the +json / +xml suffixes qualify.
func IsTextContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}

	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case mediaType == "application/json", mediaType == "application/xml":
		return true
	case strings.HasPrefix(mediaType, "application/") &&
		(strings.HasSuffix(mediaType, "+json") || strings.HasSuffix(mediaType, "+xml")):
		return true
	}
	return false
}
