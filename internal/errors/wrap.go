package errors

import (
	"context"
	"errors"
	"fmt"
)

// Op names a wrapped operation. Name defaults to "<Entity>.<Method>".
type Op struct {
	Entity string
	Method string
	Name   string
}

func (o Op) String() string {
	switch {
	case o.Name != "":
		return o.Name
	case o.Entity == "":
		return o.Method
	default:
		return o.Entity + "." + o.Method
	}
}

// Func is the untyped operation shape used by entity tables.
type Func func(ctx context.Context, args ...any) (any, error)

// Normalize converts any failure raised by op into a *Error.
//
// Classification, first match wins:
//  1. a *Error anywhere in the chain is re-wrapped: kind and status kept,
//     context merged, message "Failed in <op>: <previous message>";
//  2. an error carrying field violations becomes KindValidation;
//  3. any other error becomes KindUnknown;
//  4. a non-error value (a recovered panic) becomes KindUnknown with the
//     value under context.raw.
//
// args are the operation's positional arguments; they are sanitized before
// being stored.
func Normalize(op Op, failure any, args ...any) *Error {
	name := op.String()

	ctx := map[string]any{
		KeyOperation: name,
		KeyEntity:    op.Entity,
		KeyMethod:    op.Method,
		KeyArguments: SanitizeArguments(args...),
	}

	err, ok := failure.(error)
	if !ok {
		ctx[KeyRaw] = sanitizeValue(failure, true)

		return &Error{
			message: fmt.Sprintf("Error in %s: unexpected failure of type %T", name, failure),
			kind:    KindUnknown,
			context: ctx,
		}
	}

	// a typed-nil *Error goes straight to the ordinary error rule
	var prev *Error
	found := errors.As(err, &prev)
	if found && prev != nil {
		return &Error{
			message:    "Failed in " + name + ": " + prev.message,
			statusCode: prev.statusCode,
			kind:       prev.kind,
			context:    mergeContext(prev.context, ctx),
			cause:      err,
		}
	}

	var ve violationError
	if !found && errors.As(err, &ve) {
		ctx[KeyViolations] = cloneViolations(ve.Violations())

		return &Error{
			message: "Error in " + name + ": " + err.Error(),
			kind:    KindValidation,
			context: ctx,
			cause:   err,
		}
	}

	return &Error{
		message: "Error in " + name + ": " + err.Error(),
		kind:    KindUnknown,
		context: ctx,
		cause:   err,
	}
}

// runs fn and routes both returned errors and panics through Normalize
func invoke[R any](op Op, args []any, fn func() (R, error)) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero R
			result, err = zero, Normalize(op, r, args...)
		}
	}()

	result, err = fn()
	if err != nil {
		var zero R
		return zero, Normalize(op, err, args...)
	}

	return result, nil
}

// Wrap0 instruments an operation that takes no arguments besides ctx.
func Wrap0[R any](op Op, fn func(context.Context) (R, error)) func(context.Context) (R, error) {
	return func(ctx context.Context) (R, error) {
		return invoke(op, nil, func() (R, error) { return fn(ctx) })
	}
}

// Wrap1 instruments a one-argument operation.
func Wrap1[A, R any](op Op, fn func(context.Context, A) (R, error)) func(context.Context, A) (R, error) {
	return func(ctx context.Context, a A) (R, error) {
		return invoke(op, []any{a}, func() (R, error) { return fn(ctx, a) })
	}
}

// Wrap2 instruments a two-argument operation.
func Wrap2[A, B, R any](op Op, fn func(context.Context, A, B) (R, error)) func(context.Context, A, B) (R, error) {
	return func(ctx context.Context, a A, b B) (R, error) {
		return invoke(op, []any{a, b}, func() (R, error) { return fn(ctx, a, b) })
	}
}

// Wrap3 instruments a three-argument operation.
func Wrap3[A, B, C, R any](op Op, fn func(context.Context, A, B, C) (R, error)) func(context.Context, A, B, C) (R, error) {
	return func(ctx context.Context, a A, b B, c C) (R, error) {
		return invoke(op, []any{a, b, c}, func() (R, error) { return fn(ctx, a, b, c) })
	}
}

// WrapErr0 instruments an operation that only reports failure.
func WrapErr0(op Op, fn func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := invoke(op, nil, func() (struct{}, error) { return struct{}{}, fn(ctx) })
		return err
	}
}

// WrapErr1 instruments a one-argument operation that only reports failure.
func WrapErr1[A any](op Op, fn func(context.Context, A) error) func(context.Context, A) error {
	return func(ctx context.Context, a A) error {
		_, err := invoke(op, []any{a}, func() (struct{}, error) { return struct{}{}, fn(ctx, a) })
		return err
	}
}

// WrapFunc instruments an untyped operation.
func WrapFunc(op Op, fn Func) Func {
	return func(ctx context.Context, args ...any) (any, error) {
		return invoke(op, args, func() (any, error) { return fn(ctx, args...) })
	}
}
