// Package rules builds the typed records of OTDS entities.
//
// Each parser consumes one element subtree, walks its children in document
// order and returns a finished record; nothing is mutated after a parser
// returns. Keyed children are inserted with markup.Insert, so a repeated key
// is a types.ErrOverwriteConflict. Child tags a parser does not know are
// types.ErrUnsupportedFeature.
package rules

import (
	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/types"
)

// once rejects a second occurrence of a singleton child element.
type once map[string]bool

func (o once) check(e markup.Element) error {
	if o[e.Name()] {
		return e.Fail(types.ErrSchemaViolation, "element %s may appear only once", e.Name())
	}
	o[e.Name()] = true
	return nil
}

// implicit fails when an attribute whose default depends on product context
// is left out; those defaults are not modelled.
func implicit(e markup.Element, name string) (string, error) {
	v, ok := e.Attr(name)
	if !ok {
		return "", e.Fail(types.ErrUnsupportedFeature, "implicit %s is not supported", name)
	}
	return v, nil
}
