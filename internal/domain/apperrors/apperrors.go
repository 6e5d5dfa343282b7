package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can decide how to present it.
type Kind string

const (
	KindConnectivity   Kind = "connectivity"
	KindAuth           Kind = "auth"
	KindValidation     Kind = "validation"
	KindSchemaMismatch Kind = "schema_mismatch"
	KindNotFound       Kind = "not_found"
)

// Suggested actions a caller can offer the user. Presentation of the choice
// belongs to the caller; this package only names it.
const (
	ActionRetry       = "retry"
	ActionUseOffline  = "use_offline"
	ActionReauth      = "login_again"
	ActionCreateAsNew = "create_as_new"
	ActionFixInput    = "fix_input"
)

// Error is a structured failure: a machine-readable kind, a human-readable
// detail, whether another attempt could plausibly succeed, and the action a
// caller should offer next.
type Error struct {
	Kind            Kind
	Detail          string
	Recoverable     bool
	SuggestedAction string
	Err             error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// Connectivity reports a host/network failure. Recoverable by default; the
// connectivity guard downgrades it to terminal once retries are exhausted.
func Connectivity(detail string, err error) *Error {
	return &Error{Kind: KindConnectivity, Detail: detail, Recoverable: true, SuggestedAction: ActionRetry, Err: err}
}

// ConnectivityExhausted reports that the bounded retry budget was spent.
func ConnectivityExhausted(detail string, err error) *Error {
	return &Error{Kind: KindConnectivity, Detail: detail, Recoverable: false, SuggestedAction: ActionUseOffline, Err: err}
}

// Auth reports an expired or invalid token after the single post-refresh
// retry has been used.
func Auth(detail string, err error) *Error {
	return &Error{Kind: KindAuth, Detail: detail, Recoverable: false, SuggestedAction: ActionReauth, Err: err}
}

// Validation reports required fields missing before a remote call is even
// attempted. Never sent to the network.
func Validation(detail string, err error) *Error {
	return &Error{Kind: KindValidation, Detail: detail, Recoverable: true, SuggestedAction: ActionFixInput, Err: err}
}

// SchemaMismatch reports that the remote rejected a field the current
// backend version does not recognize.
func SchemaMismatch(detail string, err error) *Error {
	return &Error{Kind: KindSchemaMismatch, Detail: detail, Recoverable: true, SuggestedAction: ActionRetry, Err: err}
}

// NotFound reports that the target entity no longer exists remotely. The
// suggested action offers the caller a create-as-new path rather than
// failing silently.
func NotFound(detail string, err error) *Error {
	return &Error{Kind: KindNotFound, Detail: detail, Recoverable: false, SuggestedAction: ActionCreateAsNew, Err: err}
}

// KindOf extracts the kind from any error in the chain, or "" if the error
// carries no classification.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
