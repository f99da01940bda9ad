package markup

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/solatis/otds/internal/scalar"
	"github.com/solatis/otds/internal/types"
	"github.com/solatis/otds/internal/vocab"
)

// Element is a read-only view of one element of an OTDS document.
type Element struct {
	el      *etree.Element
	path    string
	dialect *Dialect
}

// Root returns the document element after checking its name and namespace.
func Root(doc *etree.Document, d *Dialect) (Element, error) {
	root := doc.Root()
	if root == nil {
		return Element{}, types.Errorf(types.ErrSchemaViolation, "/", "document has no root element")
	}
	e := Element{el: root, path: "/" + root.Tag, dialect: d}
	if root.Tag != RootTag {
		return Element{}, e.Fail(types.ErrSchemaViolation, "root element must be %s", RootTag)
	}
	if err := e.checkNamespace(); err != nil {
		return Element{}, err
	}
	return e, nil
}

// Fragment parses a standalone element, e.g. a single Condition block.
// The fragment must declare the dialect's namespace.
func Fragment(xml string, d *Dialect) (Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		return Element{}, types.Errorf(types.ErrSchemaViolation, "/", "unreadable fragment: %v", err)
	}
	root := doc.Root()
	if root == nil {
		return Element{}, types.Errorf(types.ErrSchemaViolation, "/", "fragment has no element")
	}
	e := Element{el: root, path: "/" + root.Tag, dialect: d}
	if err := e.checkNamespace(); err != nil {
		return Element{}, err
	}
	return e, nil
}

func (e Element) checkNamespace() error {
	if ns := e.el.NamespaceURI(); ns != e.dialect.Namespace {
		return e.Fail(types.ErrSchemaViolation, "namespace %q, want %q", ns, e.dialect.Namespace)
	}
	return nil
}

// Name returns the local tag name.
func (e Element) Name() string { return e.el.Tag }

// Path returns the element's location, qualified by Key where present.
func (e Element) Path() string { return e.path }

// Dialect returns the dialect the document is read with.
func (e Element) Dialect() *Dialect { return e.dialect }

// Children returns the child elements in document order.
// Comments and processing instructions are skipped.
func (e Element) Children() ([]Element, error) {
	kids := e.el.ChildElements()
	out := make([]Element, 0, len(kids))
	for _, k := range kids {
		p := e.path + "/" + k.Tag
		if key := k.SelectAttrValue("Key", ""); key != "" {
			p += "[@Key='" + key + "']"
		}
		c := Element{el: k, path: p, dialect: e.dialect}
		if err := c.checkNamespace(); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Fail builds a located error of the given kind.
func (e Element) Fail(kind error, format string, args ...any) error {
	return types.Errorf(kind, e.path, format, args...)
}

// Unsupported reports an element this parser does not implement.
func (e Element) Unsupported() error {
	return e.Fail(types.ErrUnsupportedFeature, "unsupported element %s", e.el.Tag)
}

// Locate attaches e's path to err. Located errors pass through unchanged;
// errors without a known kind are classed as malformed values.
func (e Element) Locate(err error) error {
	if err == nil {
		return nil
	}
	var located *types.Error
	if errors.As(err, &located) {
		return err
	}
	for _, kind := range []error{types.ErrSchemaViolation, types.ErrUnsupportedFeature, types.ErrOverwriteConflict, types.ErrMalformedValue} {
		if errors.Is(err, kind) {
			return &types.Error{Kind: kind, Path: e.path, Detail: err.Error()}
		}
	}
	return &types.Error{Kind: types.ErrMalformedValue, Path: e.path, Detail: err.Error()}
}

// Attr returns the attribute value and whether it is present.
func (e Element) Attr(name string) (string, bool) {
	a := e.el.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// AttrOr returns the attribute value, or dflt when it is absent.
func (e Element) AttrOr(name, dflt string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return dflt
}

// RequireAttr returns a mandatory attribute.
func (e Element) RequireAttr(name string) (string, error) {
	v, ok := e.Attr(name)
	if !ok {
		return "", e.Fail(types.ErrSchemaViolation, "missing attribute %s", name)
	}
	return v, nil
}

// Forbid fails if any of the named attributes is present.
func (e Element) Forbid(names ...string) error {
	for _, n := range names {
		if v, ok := e.Attr(n); ok {
			return e.Fail(types.ErrUnsupportedFeature, "attribute %s=%q is not supported", n, v)
		}
	}
	return nil
}

// Expect fails unless the attribute is absent or equal to want.
func (e Element) Expect(name, want string) error {
	if v, ok := e.Attr(name); ok && v != want {
		return e.Fail(types.ErrUnsupportedFeature, "attribute %s=%q is not supported, only %q", name, v, want)
	}
	return nil
}

// ExpectInt fails unless the attribute is absent or numerically equal to want.
func (e Element) ExpectInt(name string, want int) error {
	v, ok := e.Attr(name)
	if !ok {
		return nil
	}
	n, err := scalar.Int(v)
	if err != nil {
		return e.Locate(fmt.Errorf("attribute %s: %w", name, err))
	}
	if n != want {
		return e.Fail(types.ErrUnsupportedFeature, "attribute %s=%d is not supported, only %d", name, n, want)
	}
	return nil
}

// IntAttr returns an integer attribute, or dflt when it is absent.
func (e Element) IntAttr(name string, dflt int) (int, error) {
	v, ok := e.Attr(name)
	if !ok {
		return dflt, nil
	}
	n, err := scalar.Int(v)
	if err != nil {
		return 0, e.Locate(fmt.Errorf("attribute %s: %w", name, err))
	}
	return n, nil
}

// OptionalIntAttr returns an integer attribute, or nil when it is absent.
func (e Element) OptionalIntAttr(name string) (*int, error) {
	if _, ok := e.Attr(name); !ok {
		return nil, nil
	}
	n, err := e.IntAttr(name, 0)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// RequireIntAttr returns a mandatory integer attribute.
func (e Element) RequireIntAttr(name string) (int, error) {
	if _, err := e.RequireAttr(name); err != nil {
		return 0, err
	}
	return e.IntAttr(name, 0)
}

// DateAttr returns a mandatory ISO date attribute.
func (e Element) DateAttr(name string) (time.Time, error) {
	v, err := e.RequireAttr(name)
	if err != nil {
		return time.Time{}, err
	}
	d, err := scalar.Date(v)
	if err != nil {
		return time.Time{}, e.Locate(fmt.Errorf("attribute %s: %w", name, err))
	}
	return d, nil
}

// Key returns the mandatory Key attribute.
func (e Element) Key() (types.Key, error) {
	v, err := e.RequireAttr("Key")
	if err != nil {
		return "", err
	}
	k, err := types.ParseKey(v)
	return k, e.Locate(err)
}

// KeyOr returns the Key attribute, or dflt when it is absent.
func (e Element) KeyOr(dflt types.Key) (types.Key, error) {
	v, ok := e.Attr("Key")
	if !ok {
		return dflt, nil
	}
	k, err := types.ParseKey(v)
	return k, e.Locate(err)
}

// Source returns the mandatory Source attribute.
func (e Element) Source() (types.Source, error) {
	v, err := e.RequireAttr("Source")
	if err != nil {
		return "", err
	}
	s, err := types.ParseSource(v)
	return s, e.Locate(err)
}

// SourceOr returns the Source attribute, or dflt when it is absent.
func (e Element) SourceOr(dflt types.Source) (types.Source, error) {
	v, ok := e.Attr("Source")
	if !ok {
		return dflt, nil
	}
	s, err := types.ParseSource(v)
	return s, e.Locate(err)
}

// Class returns the mandatory Class attribute as a Token.
func (e Element) Class() (types.Token, error) {
	v, err := e.RequireAttr("Class")
	if err != nil {
		return "", err
	}
	tok, err := types.ParseToken(v)
	return tok, e.Locate(err)
}

// Text returns the raw character data of the element.
func (e Element) Text() string { return e.el.Text() }

// RequireText returns the trimmed character data, which must be non-empty.
func (e Element) RequireText() (string, error) {
	s := strings.TrimSpace(e.el.Text())
	if s == "" {
		return "", e.Fail(types.ErrSchemaViolation, "element %s must not be empty", e.el.Tag)
	}
	return s, nil
}

// IntText parses the element text as an integer.
func (e Element) IntText() (int, error) {
	s, err := e.RequireText()
	if err != nil {
		return 0, err
	}
	n, err := scalar.Int(s)
	return n, e.Locate(err)
}

// OptionalIntText parses the element text as an integer; empty text yields nil.
func (e Element) OptionalIntText() (*int, error) {
	if strings.TrimSpace(e.el.Text()) == "" {
		return nil, nil
	}
	n, err := e.IntText()
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// DateText parses the element text as an ISO date.
func (e Element) DateText() (time.Time, error) {
	s, err := e.RequireText()
	if err != nil {
		return time.Time{}, err
	}
	d, err := scalar.Date(s)
	return d, e.Locate(err)
}

// DecimalText parses the element text as an exact decimal.
func (e Element) DecimalText() (decimal.Decimal, error) {
	s, err := e.RequireText()
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := scalar.Decimal(s)
	return d, e.Locate(err)
}

// FieldsText splits the element text on whitespace; it must hold at least one item.
func (e Element) FieldsText() ([]string, error) {
	s, err := e.RequireText()
	if err != nil {
		return nil, err
	}
	return scalar.Fields(s), nil
}

// UpdateMode returns the element's update mode, New when absent.
func (e Element) UpdateMode() (vocab.UpdateMode, error) {
	m, err := vocab.ParseUpdateMode(e.AttrOr("UpdateMode", string(vocab.UpdateNew)))
	return m, e.Locate(err)
}

// RequireNew fails unless the element's update mode is New.
func (e Element) RequireNew() error {
	m, err := e.UpdateMode()
	if err != nil {
		return err
	}
	if m != vocab.UpdateNew {
		return e.Fail(types.ErrUnsupportedFeature, "update mode %s is not supported", m)
	}
	return nil
}

// RequireLang fails unless the xml:lang of localized text is absent or "de".
func (e Element) RequireLang() error {
	return e.Expect("lang", "de")
}
