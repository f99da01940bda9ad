// Package vocab defines the closed vocabularies of the OTDS grammar.
//
// Each vocabulary is a string type with one constant per admitted token and a
// Parse function that rejects everything else with types.ErrMalformedValue.
// Tokens are case-sensitive and matched exactly.
package vocab

import (
	"fmt"

	"github.com/solatis/otds/internal/types"
)

type vocabulary[T ~string] struct {
	name   string
	values map[string]T
	order  []T
}

func newVocabulary[T ~string](name string, values ...T) vocabulary[T] {
	m := make(map[string]T, len(values))
	for _, v := range values {
		m[string(v)] = v
	}
	return vocabulary[T]{name: name, values: m, order: values}
}

func (v vocabulary[T]) parse(s string) (T, error) {
	if t, ok := v.values[s]; ok {
		return t, nil
	}
	var zero T
	return zero, fmt.Errorf("%w: %q is not a valid %s", types.ErrMalformedValue, s, v.name)
}

func (v vocabulary[T]) list() []T {
	return append([]T(nil), v.order...)
}

// UpdateMode governs how an element affects existing content.
type UpdateMode string

const (
	UpdateNew    UpdateMode = "New"
	UpdateMerge  UpdateMode = "Merge"
	UpdateDelete UpdateMode = "Delete"
)

var updateModes = newVocabulary("UpdateMode", UpdateNew, UpdateMerge, UpdateDelete)

func ParseUpdateMode(s string) (UpdateMode, error) { return updateModes.parse(s) }
