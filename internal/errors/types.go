package errors

// Kind classifies a normalized error
type Kind string

const (
	KindValidation Kind = "VALIDATION" // input/output shape mismatch
	KindNetwork    Kind = "NETWORK"    // no response received from a remote call
	KindRemote     Kind = "REMOTE"     // remote call returned an error status
	KindUnknown    Kind = "UNKNOWN"    // anything else
)

func (k Kind) String() string {
	return string(k)
}

// context keys written by the normalization layer
const (
	KeyOperation  = "operation"
	KeyEntity     = "entity"
	KeyMethod     = "method"
	KeyArguments  = "arguments"
	KeyViolations = "violations"
	KeyRaw        = "raw"

	// set by the transport converter
	KeyHTTPMethod = "httpMethod"
	KeyURL        = "url"
	KeyReason     = "reason"
	KeyRemoteCode = "remoteCode"
)

// Violation is a single field-level schema failure
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// implemented by schema validation failures (see internal/validate)
type violationError interface {
	error
	Violations() []Violation
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error      string      `json:"error"`                // error code (e.g., "unauthorized", "not_found")
	Message    string      `json:"message"`              // user-friendly message
	Details    string      `json:"details,omitempty"`    // optional details (sanitized in production)
	Violations []Violation `json:"violations,omitempty"` // field-level failures for validation errors
}

type ErrorInfo struct {
	category  string
	sanitized string
}
