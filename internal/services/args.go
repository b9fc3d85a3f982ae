package services

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/tanker327/react-project-structure-best-practices/internal/errors"
	"github.com/tanker327/react-project-structure-best-practices/internal/validate"
)

// argAt converts the i-th untyped argument into T. Values that are already a T
// are used as is; anything else (decoded JSON) is re-encoded into T. A missing
// optional argument yields the zero value.
func argAt[T any](args []any, i int, required bool) (T, error) {
	var zero T

	if i >= len(args) || args[i] == nil {
		if required {
			return zero, argError(i, "is required")
		}
		return zero, nil
	}

	if v, ok := args[i].(T); ok {
		return v, nil
	}

	if p, ok := args[i].(*T); ok && p != nil {
		return *p, nil
	}

	raw, err := json.Marshal(args[i])
	if err != nil {
		return zero, argError(i, "cannot be encoded")
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, argError(i, fmt.Sprintf("expected %T", zero))
	}

	return out, nil
}

func argError(i int, message string) error {
	return validate.NewError(apperrors.Violation{
		Path:    fmt.Sprintf("args[%d]", i),
		Message: message,
	})
}
