// Package validate checks request and response payloads against their
// struct tags and reports failures as field violations.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/tanker327/react-project-structure-best-practices/internal/errors"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// returns the shared validator, configured to report json field names
func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		UseJSONNames(v)
		instance = v
	})

	return instance
}

// UseJSONNames makes v report fields by their json names. The server applies
// it to gin's binding engine so both sides describe violations the same way.
func UseJSONNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}

// Error is a schema validation failure.
type Error struct {
	violations []apperrors.Violation
}

func (e *Error) Error() string {
	if len(e.violations) == 0 {
		return "validation failed"
	}

	parts := make([]string, len(e.violations))
	for i, v := range e.violations {
		parts[i] = v.Path + ": " + v.Message
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// Violations returns the field-level failures.
func (e *Error) Violations() []apperrors.Violation {
	out := make([]apperrors.Violation, len(e.violations))
	copy(out, e.violations)

	return out
}

// NewError builds a validation failure from explicit violations.
func NewError(violations ...apperrors.Violation) *Error {
	return &Error{violations: violations}
}

// Struct validates v. It returns nil or a *Error.
func Struct(v any) error {
	return fromValidator(engine().Struct(v), "")
}

// Slice validates every element of items, prefixing paths with the index.
func Slice[T any](items []T) error {
	var all []apperrors.Violation

	for i := range items {
		err := fromValidator(engine().Struct(items[i]), fmt.Sprintf("[%d].", i))
		if err == nil {
			continue
		}

		var ve *Error
		if !errors.As(err, &ve) {
			return err
		}

		all = append(all, ve.violations...)
	}

	if len(all) == 0 {
		return nil
	}

	return &Error{violations: all}
}

// FromBinding converts a gin binding failure into a *Error when it is a
// validation failure; decoding errors are returned unchanged.
func FromBinding(err error) error {
	return fromValidator(err, "")
}

// Var validates a single value against a tag expression, reporting it under path.
func Var(path string, value any, tag string) error {
	err := engine().Var(value, tag)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make([]apperrors.Violation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperrors.Violation{Path: path, Message: message(fe)})
	}

	return &Error{violations: out}
}

func fromValidator(err error, prefix string) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: nil or non-struct input
		return err
	}

	out := make([]apperrors.Violation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperrors.Violation{
			Path:    prefix + fieldPath(fe.Namespace()),
			Message: message(fe),
		})
	}

	return &Error{violations: out}
}

// drops the root struct name from a validator namespace
func fieldPath(ns string) string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		return ns
	}

	return rest
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "gt":
		if fe.Param() == "0" {
			return "expected positive number"
		}
		return "must be greater than " + fe.Param()
	case "gte":
		if fe.Param() == "0" {
			return "expected non-negative number"
		}
		return "must be at least " + fe.Param()
	case "min", "max":
		bound := ternary(fe.Tag() == "min", "at least ", "at most ")
		switch fe.Kind() {
		case reflect.String:
			return "must have " + bound + fe.Param() + " characters"
		case reflect.Slice, reflect.Map, reflect.Array:
			return "must have " + bound + fe.Param() + " items"
		}
		return "must be " + bound + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "alphanum":
		return "must contain only letters and digits"
	}

	return fmt.Sprintf("failed %q check", fe.Tag())
}

func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}

	return b
}
