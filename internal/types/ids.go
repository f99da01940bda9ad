package types

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var (
	keyPattern    = regexp.MustCompile(`^[A-Za-z0-9.\-_|+]+$`)
	tokenPattern  = regexp.MustCompile(`^\S{1,128}$`)
	namePattern   = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	sourcePattern = regexp.MustCompile(`^\S+$`)
)

// ParseKey validates and converts a string to Key.
func ParseKey(s string) (Key, error) {
	if !keyPattern.MatchString(s) {
		return "", fmt.Errorf("%w: key %q must match [A-Za-z0-9.-_|+]+", ErrMalformedValue, s)
	}
	return Key(s), nil
}

// ParseIdentifier validates and converts a string to Identifier.
func ParseIdentifier(s string) (Identifier, error) {
	if !keyPattern.MatchString(s) {
		return "", fmt.Errorf("%w: identifier %q must match [A-Za-z0-9.-_|+]+", ErrMalformedValue, s)
	}
	return Identifier(s), nil
}

// ParseToken validates and converts a string to Token.
func ParseToken(s string) (Token, error) {
	if !tokenPattern.MatchString(s) {
		return "", fmt.Errorf("%w: token %q must be 1-128 non-space characters", ErrMalformedValue, s)
	}
	return Token(s), nil
}

// ParseName validates and converts a string to Name.
func ParseName(s string) (Name, error) {
	if !namePattern.MatchString(s) {
		return "", fmt.Errorf("%w: name %q must be alphanumeric", ErrMalformedValue, s)
	}
	return Name(s), nil
}

// ParseSource validates and converts a string to Source.
func ParseSource(s string) (Source, error) {
	if !sourcePattern.MatchString(s) {
		return "", fmt.Errorf("%w: source %q must be non-empty without spaces", ErrMalformedValue, s)
	}
	return Source(s), nil
}

// NewIngestID generates a UUIDv7 ingestion identifier.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewIngestID() IngestID {
	return IngestID(uuid.Must(uuid.NewV7()).String())
}

// ParseIngestID validates and converts a string to IngestID.
func ParseIngestID(s string) (IngestID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("%w: ingest id %q: %v", ErrMalformedValue, s, err)
	}
	return IngestID(s), nil
}

// IngestIDTime extracts the timestamp embedded in a UUIDv7 ID.
// Returns zero time for invalid UUIDs; caller should check IsZero().
func IngestIDTime(id IngestID) time.Time {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}
