package apperrors

import "fmt"

// Kind classifies an application error so handlers can map it to a
// transport status without string matching.
type Kind int

const (
	KindInternal Kind = iota
	KindAuthenticationFailed
	KindUnauthenticated
	KindForbidden
	KindInvalidTransition
	KindMalformedPayload
	KindNotFound
)

// Error is an application-level error carrying a Kind for classification.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying error, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match two application errors by Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf returns the Kind of err, or KindInternal when err is not an
// application error.
func KindOf(err error) Kind {
	if appErr, ok := err.(*Error); ok {
		return appErr.Kind
	}
	return KindInternal
}

func AuthenticationFailed(msg string) *Error {
	return &Error{Kind: KindAuthenticationFailed, Message: msg}
}

func AuthenticationFailedWrap(err error, msg string) *Error {
	return &Error{Kind: KindAuthenticationFailed, Message: msg, Err: err}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func InvalidTransition(msg string) *Error {
	return &Error{Kind: KindInvalidTransition, Message: msg}
}

func InvalidTransitionf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidTransition, Message: fmt.Sprintf(format, args...)}
}

func MalformedPayload(msg string) *Error {
	return &Error{Kind: KindMalformedPayload, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// Wrap wraps an error with a kind and message.
func Wrap(err error, kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}
