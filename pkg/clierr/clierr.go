package clierr

import (
	"fmt"
)

// Kind categorizes a CLI-facing error for consistent messaging & exit behaviour.
type Kind string

const (
	AuthMissing   Kind = "auth_missing"
	AuthInvalid   Kind = "auth_invalid"
	APIFailure    Kind = "api_error"
	NotFound      Kind = "not_found"
	Validation    Kind = "validation"
	AccessDenied  Kind = "access_denied"
	InvalidCursor Kind = "invalid_cursor"
	Network       Kind = "network"
	RateLimit     Kind = "rate_limit"
	QuerySyntax   Kind = "query_syntax"
	ContentState  Kind = "content_state"
	Unexpected    Kind = "unexpected"
)

// MaxCauseDepth bounds UnwrapDeepCause so a self-referencing chain still terminates.
const MaxCauseDepth = 10

// Error is a structured user-facing error. It is never mutated after construction.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int   // 0 when the failure has no HTTP status
	Cause      error // optional underlying error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Cause }

// HTTPStatus exposes the status code to the classifier.
func (e *Error) HTTPStatus() int { return e.StatusCode }

// New constructs a new CLI Error.
func New(k Kind, msg string, status int, cause error) *Error {
	return &Error{Kind: k, Message: msg, StatusCode: status, Cause: cause}
}

func NewAuthMissing(msg string) *Error { return New(AuthMissing, msg, 0, nil) }

func NewAuthInvalid(msg string, status int, cause error) *Error {
	return New(AuthInvalid, msg, status, cause)
}

func NewAPIError(msg string, status int, cause error) *Error {
	return New(APIFailure, msg, status, cause)
}

func NewNotFound(msg string, status int, cause error) *Error {
	return New(NotFound, msg, status, cause)
}

func NewValidation(msg string, cause error) *Error { return New(Validation, msg, 0, cause) }

func NewAccessDenied(msg string, status int, cause error) *Error {
	return New(AccessDenied, msg, status, cause)
}

func NewInvalidCursor(msg string, cause error) *Error { return New(InvalidCursor, msg, 0, cause) }

func NewNetwork(msg string, status int, cause error) *Error {
	return New(Network, msg, status, cause)
}

func NewRateLimit(msg string, status int, cause error) *Error {
	return New(RateLimit, msg, status, cause)
}

func NewQuerySyntax(msg string, status int, cause error) *Error {
	return New(QuerySyntax, msg, status, cause)
}

func NewContentState(msg string, status int, cause error) *Error {
	return New(ContentState, msg, status, cause)
}

func NewUnexpected(msg string, cause error) *Error { return New(Unexpected, msg, 0, cause) }

// Ensure converts any value into an *Error.
// An *Error anywhere in the chain is returned as-is, other errors are wrapped as
// Unexpected keeping them as the cause, and non-error values are stringified.
func Ensure(v any) *Error {
	switch x := v.(type) {
	case nil:
		return NewUnexpected("unknown error", nil)
	case *Error:
		return x
	case error:
		if e, ok := find[*Error](x); ok {
			return e
		}
		return NewUnexpected(x.Error(), x)
	default:
		return NewUnexpected(fmt.Sprint(x), nil)
	}
}

// UnwrapDeepCause walks the cause chain below err and returns the innermost
// value that is not an *Error, usually the raw vendor payload.
// It gives up after MaxCauseDepth hops and returns nil in that case.
func UnwrapDeepCause(err error) error {
	cur := err
	for depth := 0; depth <= MaxCauseDepth; depth++ {
		e, ok := cur.(*Error)
		if !ok {
			return cur
		}
		if e.Cause == nil {
			return nil
		}
		cur = e.Cause
	}
	return nil
}
