package errx

import (
	"fmt"
)

// Type classifies an error for clients and for logging.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeUnavailable   Type = "UNAVAILABLE"
	TypeInternal      Type = "INTERNAL"
)

// Code identifies a registered error definition within a registry.
type Code struct {
	registry string
	name     string
}

func (c Code) String() string {
	return c.registry + "_" + c.name
}

type definition struct {
	errType    Type
	httpStatus int
	message    string
}

// Registry holds the error definitions for one domain (e.g. "RESUME").
type Registry struct {
	prefix string
	defs   map[Code]definition
}

// NewRegistry creates a registry with a domain prefix used in error codes.
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register adds an error definition and returns its code.
// Registration happens in package var blocks, before any concurrent use.
func (r *Registry) Register(name string, errType Type, httpStatus int, message string) Code {
	code := Code{registry: r.prefix, name: name}
	r.defs[code] = definition{
		errType:    errType,
		httpStatus: httpStatus,
		message:    message,
	}
	return code
}

// New creates an error for a registered code.
func (r *Registry) New(code Code) *Error {
	def := r.defs[code]
	return &Error{
		Code:       code,
		Type:       def.errType,
		HTTPStatus: def.httpStatus,
		Message:    def.message,
	}
}

// NewWithCause creates an error for a registered code wrapping an underlying cause.
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	e := r.New(code)
	e.Cause = cause
	return e
}

// Error is a structured error carrying a registered code, an HTTP status and
// arbitrary detail fields.
type Error struct {
	Code       Code
	Type       Type
	HTTPStatus int
	Message    string
	Details    map[string]any
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a single detail field and returns the error for chaining.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails attaches multiple detail fields at once.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// HTTPResponse is the JSON shape returned to clients for an Error.
type HTTPResponse struct {
	Error   string         `json:"error"`
	Type    Type           `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToHTTPResponse converts the error into its client-facing JSON shape.
// The cause is deliberately omitted; it is for logs only.
func (e *Error) ToHTTPResponse() HTTPResponse {
	return HTTPResponse{
		Error:   e.Message,
		Type:    e.Type,
		Code:    e.Code.String(),
		Message: e.Message,
		Details: e.Details,
	}
}

// IsType reports whether err is an *Error of the given type.
func IsType(err error, t Type) bool {
	e, ok := err.(*Error)
	return ok && e.Type == t
}
