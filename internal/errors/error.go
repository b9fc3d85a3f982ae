package errors

import (
	"errors"
	"log/slog"
	"reflect"
)

// Error is the single error shape that crosses a wrapped operation.
//
// It is immutable once constructed: Context returns a copy and there are no
// setters. The cause is kept for errors.Is / errors.As but is never part of
// the message or the log value.
type Error struct {
	message    string
	statusCode int
	kind       Kind
	context    map[string]any
	cause      error
}

// New builds a normalized error. ctx is cloned.
func New(kind Kind, statusCode int, message string, ctx map[string]any, cause error) *Error {
	return &Error{
		message:    message,
		statusCode: statusCode,
		kind:       kind,
		context:    cloneMap(ctx),
		cause:      cause,
	}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	return e.message
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Message() string         { return e.message }
func (e *Error) StatusCode() int         { return e.statusCode }
func (e *Error) Kind() Kind              { return e.kind }
func (e *Error) Context() map[string]any { return cloneMap(e.context) }

// Operation returns the name of the outermost operation that wrapped the failure.
func (e *Error) Operation() string {
	op, _ := e.context[KeyOperation].(string)
	return op
}

// Violations returns the field violations recorded for a validation failure.
func (e *Error) Violations() []Violation {
	v, _ := e.context[KeyViolations].([]Violation)
	return cloneViolations(v)
}

// LogValue renders the error for slog. Arguments are already redacted.
func (e *Error) LogValue() slog.Value {
	if e == nil {
		return slog.StringValue("<nil>")
	}

	attrs := []slog.Attr{
		slog.String("kind", e.kind.String()),
		slog.Int("status", e.statusCode),
		slog.String("message", e.message),
	}

	if op := e.Operation(); op != "" {
		attrs = append(attrs, slog.String("operation", op))
	}

	if args, ok := e.context[KeyArguments]; ok {
		attrs = append(attrs, slog.Any("arguments", args))
	}

	if v := e.Violations(); len(v) > 0 {
		attrs = append(attrs, slog.Any("violations", v))
	}

	return slog.GroupValue(attrs...)
}

// As reports whether err is, or wraps, a normalized error.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}

// IsKind reports whether err is a normalized error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.kind == kind
}

// StatusOf returns the transport status carried by err, or 0.
func StatusOf(err error) int {
	if e, ok := As(err); ok {
		return e.statusCode
	}

	return 0
}

func cloneMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}

	out := make(map[string]any, len(in))

	for k, v := range in {
		out[k] = cloneValue(v)
	}

	return out
}

// copies the container types the normalization layer itself stores
func cloneValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return cloneMap(tv)
	case []any:
		out := make([]any, len(tv))
		for i := range tv {
			out[i] = cloneValue(tv[i])
		}
		return out
	case []Violation:
		return cloneViolations(tv)
	default:
		return copySlice(v)
	}
}

// returns a shallow copy of v when it is a non-nil slice of any type
func copySlice(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || rv.IsNil() {
		return v
	}

	out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	reflect.Copy(out, rv)

	return out.Interface()
}

func cloneViolations(in []Violation) []Violation {
	if in == nil {
		return nil
	}

	out := make([]Violation, len(in))
	copy(out, in)

	return out
}

// merges next over prev without touching either
func mergeContext(prev, next map[string]any) map[string]any {
	out := make(map[string]any, len(prev)+len(next))

	for k, v := range prev {
		out[k] = cloneValue(v)
	}

	for k, v := range next {
		out[k] = v
	}

	return out
}
