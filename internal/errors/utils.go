package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
)

// network failure categories, stored under context.reason
const (
	CategoryTimeout    = "timeout"
	CategoryCanceled   = "canceled"
	CategoryConnection = "connection"
	CategoryUnknown    = "unknown"
)

// Network converts a failed round trip (no response received) into a
// normalized error with status 0.
func Network(method, url string, cause error) *Error {
	info := classifyNetworkError(cause)

	return &Error{
		message: fmt.Sprintf("%s %s: %s", method, url, info.sanitized),
		kind:    KindNetwork,
		context: map[string]any{
			KeyHTTPMethod: method,
			KeyURL:        url,
			KeyReason:     info.category,
		},
		cause: cause,
	}
}

// Remote converts an error-status response into a normalized error carrying
// the real status. body is the decoded server error, possibly empty.
func Remote(status int, method, url string, body ErrorResponse) *Error {
	msg := body.Message
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}

	ctx := map[string]any{
		KeyHTTPMethod: method,
		KeyURL:        url,
	}

	if body.Error != "" {
		ctx[KeyRemoteCode] = body.Error
	}

	if len(body.Violations) > 0 {
		ctx[KeyViolations] = cloneViolations(body.Violations)
	}

	return &Error{
		message:    fmt.Sprintf("%s %s: %s", method, url, msg),
		statusCode: status,
		kind:       KindRemote,
		context:    ctx,
	}
}

// analyzes a transport failure and returns its category and a message safe
// to show to users
func classifyNetworkError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{CategoryUnknown, "request failed"}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorInfo{CategoryTimeout, "request timed out"}
	}

	if errors.Is(err, context.Canceled) {
		return ErrorInfo{CategoryCanceled, "request canceled"}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorInfo{CategoryTimeout, "request timed out"}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrorInfo{CategoryConnection, "connection error occurred"}
	}

	// fallback to string matching for unknown error types
	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline") {
		return ErrorInfo{CategoryTimeout, "request timed out"}
	}

	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network") ||
		strings.Contains(errMsg, "dial") {
		return ErrorInfo{CategoryConnection, "connection error occurred"}
	}

	return ErrorInfo{CategoryUnknown, "request failed"}
}

// sanitizes error messages for production
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}

	errMsg := err.Error()
	isProduction := os.Getenv("ENVIRONMENT") == "production"

	if !isProduction {
		return errMsg
	}

	lower := strings.ToLower(errMsg)

	switch {
	case strings.Contains(lower, "connection") || strings.Contains(lower, "network"):
		return "connection error occurred"
	case strings.Contains(lower, "timeout"):
		return "request timed out"
	case strings.Contains(lower, "permission") || strings.Contains(lower, "unauthorized"):
		return "permission denied"
	case strings.Contains(lower, "not found"):
		return "resource not found"
	}

	return ternary(strings.Contains(lower, "validation"), "validation failed", "an error occurred")
}

// ternary helper for cleaner conditional assignment
func ternary(condition bool, trueVal, falseVal string) string {
	if condition {
		return trueVal
	}

	return falseVal
}
