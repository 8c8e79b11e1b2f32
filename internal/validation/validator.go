// Package validation checks request payloads and strips markup from free text.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate = newValidate()
	strict   = bluemonday.StrictPolicy()

	// bluemonday escapes all text; only these entities are turned back. Encoded
	// angle brackets stay encoded so they can never render as tags.
	plainEntities = strings.NewReplacer("&amp;", "&", "&#39;", "'", "&#34;", `"`)
)

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates s against its `validate` tags. The returned error describes the
// first failing field by its JSON name.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return errors.New(message(fieldErrs[0]))
	}
	return err
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		if fe.Param() == "1" {
			return fmt.Sprintf("%s must not be empty", field)
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "gte", "lte":
		return fmt.Sprintf("%s is out of range", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// StripHTML removes every tag from s and trims surrounding whitespace. Anything that
// parses as a tag is dropped, including bare words in angle brackets.
func StripHTML(s string) string {
	return strings.TrimSpace(plainEntities.Replace(strict.Sanitize(s)))
}

// StripHTMLPtr applies StripHTML to a non-nil *string.
func StripHTMLPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := StripHTML(*s)
	return &v
}
