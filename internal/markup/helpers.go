package markup

import (
	"fmt"

	"github.com/solatis/otds/internal/types"
)

// EnumAttr parses a vocabulary attribute, returning dflt when it is absent.
func EnumAttr[T ~string](e Element, name string, dflt T, parse func(string) (T, error)) (T, error) {
	v, ok := e.Attr(name)
	if !ok {
		return dflt, nil
	}
	t, err := parse(v)
	if err != nil {
		return t, e.Locate(fmt.Errorf("attribute %s: %w", name, err))
	}
	return t, nil
}

// RequireEnumAttr parses a mandatory vocabulary attribute.
func RequireEnumAttr[T ~string](e Element, name string, parse func(string) (T, error)) (T, error) {
	v, err := e.RequireAttr(name)
	if err != nil {
		var zero T
		return zero, err
	}
	t, err := parse(v)
	if err != nil {
		return t, e.Locate(fmt.Errorf("attribute %s: %w", name, err))
	}
	return t, nil
}

// OptionalEnumAttr parses a vocabulary attribute, returning nil when absent.
func OptionalEnumAttr[T ~string](e Element, name string, parse func(string) (T, error)) (*T, error) {
	if _, ok := e.Attr(name); !ok {
		return nil, nil
	}
	t, err := RequireEnumAttr(e, name, parse)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// EnumText parses the element text as a single vocabulary token.
func EnumText[T ~string](e Element, parse func(string) (T, error)) (T, error) {
	s, err := e.RequireText()
	if err != nil {
		var zero T
		return zero, err
	}
	t, err := parse(s)
	return t, e.Locate(err)
}

// EnumList parses whitespace-separated vocabulary tokens from the element text.
func EnumList[T ~string](e Element, parse func(string) (T, error)) ([]T, error) {
	items, err := e.FieldsText()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, s := range items {
		t, err := parse(s)
		if err != nil {
			return nil, e.Locate(err)
		}
		out = append(out, t)
	}
	return out, nil
}

// Insert adds v under k, failing with ErrOverwriteConflict if k is taken.
func Insert[K comparable, V any](e Element, into *types.Ordered[K, V], k K, v V) error {
	if !into.Insert(k, v) {
		return e.Fail(types.ErrOverwriteConflict, "key %v already defined", k)
	}
	return nil
}

// Single returns the only child of e, failing when there are zero or several.
func Single(e Element) (Element, error) {
	kids, err := e.Children()
	if err != nil {
		return Element{}, err
	}
	if len(kids) != 1 {
		return Element{}, e.Fail(types.ErrSchemaViolation, "%s must contain exactly one element, found %d", e.Name(), len(kids))
	}
	return kids[0], nil
}
