package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog ingestion. Every failure raised while reading
// a document wraps exactly one of them.
var (
	// ErrSchemaViolation indicates the document structure does not match the
	// grammar: a missing element or attribute, wrong cardinality, or a
	// foreign namespace.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrUnsupportedFeature indicates a documented construct, attribute value
	// or update mode that the parser does not implement.
	ErrUnsupportedFeature = errors.New("unsupported feature")

	// ErrOverwriteConflict indicates a New-mode insert targets an existing key.
	ErrOverwriteConflict = errors.New("overwrite conflict")

	// ErrMalformedValue indicates a scalar failed pattern or vocabulary validation.
	ErrMalformedValue = errors.New("malformed value")
)

// Error locates a failure inside a document.
// Kind is one of the sentinels above; errors.Is matches against it.
type Error struct {
	Kind   error
	Path   string
	Detail string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%v at %s: %s", e.Kind, e.Path, e.Detail)
}

// Unwrap exposes Kind to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Errorf builds a located error of the given kind.
func Errorf(kind error, path, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Detail: fmt.Sprintf(format, args...)}
}

// KindName returns a stable snake_case label for err's sentinel, for use in
// metrics labels and ledger rows. Unknown errors map to "error".
func KindName(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrSchemaViolation):
		return "schema_violation"
	case errors.Is(err, ErrUnsupportedFeature):
		return "unsupported_feature"
	case errors.Is(err, ErrOverwriteConflict):
		return "overwrite_conflict"
	case errors.Is(err, ErrMalformedValue):
		return "malformed_value"
	default:
		return "error"
	}
}
