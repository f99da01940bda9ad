package markup

import (
	"fmt"
	"os"

	"github.com/beevik/etree"
	"github.com/solatis/otds/internal/types"
)

// Validator checks a parsed document before the catalog reads it.
// Implementations report the first violation as a types.ErrSchemaViolation.
type Validator interface {
	Validate(doc *etree.Document) error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(doc *etree.Document) error

func (f ValidatorFunc) Validate(doc *etree.Document) error { return f(doc) }

// RootValidator accepts documents whose root is an OTDS element in the
// dialect's namespace. Full grammar conformance is left to an external gate.
type RootValidator struct {
	Dialect *Dialect
}

func (v RootValidator) Validate(doc *etree.Document) error {
	_, err := Root(doc, v.Dialect)
	return err
}

// Chain runs validators in order and stops at the first failure.
type Chain []Validator

func (c Chain) Validate(doc *etree.Document) error {
	for _, v := range c {
		if err := v.Validate(doc); err != nil {
			return err
		}
	}
	return nil
}

// ReadBytes parses an XML document.
// Unreadable input is a schema violation.
func ReadBytes(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, types.Errorf(types.ErrSchemaViolation, "/", "malformed XML: %v", err)
	}
	return doc, nil
}

// ReadFile parses the XML document at path.
func ReadFile(path string) (*etree.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ReadBytes(data)
}
