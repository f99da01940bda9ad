// Package types provides the validated identifier domains, error taxonomy and
// ordered collections shared by every OTDS ingestion component.
//
// Key, Token, Identifier, Name and Source share a string representation but
// are distinct types: each is produced only by its Parse constructor, so a
// value of one domain cannot be passed where another is expected.
package types

// Key addresses an entity within its collection.
// Pattern: [A-Za-z0-9.\-_|+]+
type Key string

// Token is a free-form class or tag name of 1 to 128 non-space characters.
type Token string

// Identifier names layers, combination groups and codes.
// Same pattern as Key, but never interchangeable with it.
type Identifier string

// Name is an alphanumeric component or parameter name.
type Name string

// Source references a component by role (e.g. "ThisComponent", "Product").
type Source string

// IngestID represents a UUIDv7 ingestion identifier.
// Time-ordered IDs keep ledger rows clustered by ingestion time.
type IngestID string

// Literal defaults used across the grammar.
const (
	// DefaultKey is used by Tags and Filter blocks without a Key attribute.
	DefaultKey Key = "default"

	// DefaultIdentifier is the default layer name and combination group.
	DefaultIdentifier Identifier = "Default"

	// DefaultName is the default booking parameter name.
	DefaultName Name = "Default"

	// SourceThisComponent is the default source of booking groups and parameters.
	SourceThisComponent Source = "ThisComponent"

	// SourceProduct is the default source of day allocation rules.
	SourceProduct Source = "Product"
)
