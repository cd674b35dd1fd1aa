package apperr

import "errors"

// Kind classifies an error for the request boundary. Handlers map kinds to
// HTTP status codes; services never touch transport concerns.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindState          Kind = "state"
)

// Error carries a machine-readable kind and a human message.
type Error struct {
	Kind    Kind
	Message string
	// Reason distinguishes denial causes internally (e.g. forbidden-role vs
	// forbidden-scope) without leaking them to clients.
	Reason string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Authorization builds a denial with a generic client message. The reason is
// kept for logging only so role and scope failures read the same externally.
func Authorization(reason string) *Error {
	return &Error{Kind: KindAuthorization, Message: "Forbidden", Reason: reason}
}

func State(message string) *Error {
	return &Error{Kind: KindState, Message: message}
}

// KindOf extracts the kind from err, unwrapping as needed.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
