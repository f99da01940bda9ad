// internal/rules/pricing.go
package rules

import (
	"github.com/shopspring/decimal"

	"github.com/solatis/otds/internal/condition"
	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/scalar"
	"github.com/solatis/otds/internal/types"
)

/*
 * Price items and their combinatorics.
 *
 * A PriceItems block groups PriceItem elements by class. Each item carries at
 * most one Absolute and one Percent impact, an optional applicability
 * Condition and a Combinatorics map keyed by (layer name, layer level).
 * Amounts are decimal.Decimal; nothing here computes a price.
 */

// TermKind identifies an Absolute term.
type TermKind int

const (
	TermDayBase TermKind = iota
	TermPersonBase
	TermAppliedBy
)

// AbsoluteTerm qualifies an absolute amount. Count is nil for the wildcard
// "x" on DayBase and PersonBase.
type AbsoluteTerm struct {
	Kind      TermKind
	Source    types.Source
	Count     *int
	AppliedBy string
}

// Absolute is a fixed monetary impact.
type Absolute struct {
	Value decimal.Decimal
	Terms []AbsoluteTerm
}

// Percent is a relative impact applied to price items of the listed classes.
// Each ApplyTo element contributes one class list.
type Percent struct {
	Value   decimal.Decimal
	ApplyTo [][]types.Token
}

// PriceItem is one priced rule.
type PriceItem struct {
	Absolute      *Absolute
	Percent       *Percent
	Condition     condition.Condition
	Combinatorics types.Ordered[LayerKey, Combinatorics]
}

// PriceClasses groups the items of one PriceItems block by class.
type PriceClasses = types.Ordered[types.Token, []PriceItem]

// PriceItems holds PriceItems blocks by key.
type PriceItems = types.Ordered[types.Key, PriceClasses]

// ParsePriceItems reads a keyed PriceItems block into items.
func ParsePriceItems(e markup.Element, items *PriceItems) error {
	if err := e.RequireNew(); err != nil {
		return err
	}
	key, err := e.Key()
	if err != nil {
		return err
	}
	kids, err := e.Children()
	if err != nil {
		return err
	}
	var classes PriceClasses
	for _, k := range kids {
		if k.Name() != "PriceItem" {
			return k.Unsupported()
		}
		class, err := k.Class()
		if err != nil {
			return err
		}
		item, err := parsePriceItem(k)
		if err != nil {
			return err
		}
		list, _ := classes.Get(class)
		classes.Set(class, append(list, item))
	}
	return markup.Insert(e, items, key, classes)
}

func parsePriceItem(e markup.Element) (PriceItem, error) {
	var p PriceItem
	kids, err := e.Children()
	if err != nil {
		return p, err
	}
	seen := once{}
	for _, k := range kids {
		if k.Name() != "Combinatorics" {
			if err := seen.check(k); err != nil {
				return p, err
			}
		}
		switch k.Name() {
		case "Absolute":
			a, err := parseAbsolute(k)
			if err != nil {
				return p, err
			}
			p.Absolute = &a
		case "Percent":
			pc, err := parsePercent(k)
			if err != nil {
				return p, err
			}
			p.Percent = &pc
		case "Combinatorics":
			if err := parseCombinatorics(k, &p.Combinatorics); err != nil {
				return p, err
			}
		case "Condition":
			if p.Condition, err = condition.ParseSingle(k); err != nil {
				return p, err
			}
		default:
			return p, k.Unsupported()
		}
	}
	return p, nil
}

// impactValue reads the Value child shared by Absolute and Percent.
func impactValue(e markup.Element, v *decimal.Decimal, seen once) error {
	if err := seen.check(e); err != nil {
		return err
	}
	d, err := e.DecimalText()
	if err != nil {
		return err
	}
	*v = d
	return nil
}

func parseAbsolute(e markup.Element) (Absolute, error) {
	var a Absolute
	kids, err := e.Children()
	if err != nil {
		return a, err
	}
	seen := once{}
	for _, k := range kids {
		switch k.Name() {
		case "Value":
			err = impactValue(k, &a.Value, seen)
		case "DayBase":
			var t AbsoluteTerm
			t, err = parseDayBase(k)
			a.Terms = append(a.Terms, t)
		case "PersonBase":
			t := AbsoluteTerm{Kind: TermPersonBase}
			t.Count, err = baseCount(k)
			a.Terms = append(a.Terms, t)
		case "AppliedBy":
			var s string
			s, err = parseAppliedBy(k)
			a.Terms = append(a.Terms, AbsoluteTerm{Kind: TermAppliedBy, AppliedBy: s})
		default:
			return a, k.Unsupported()
		}
		if err != nil {
			return a, err
		}
	}
	if !seen["Value"] {
		return a, e.Fail(types.ErrSchemaViolation, "Absolute requires a Value")
	}
	return a, nil
}

func parseDayBase(e markup.Element) (AbsoluteTerm, error) {
	t := AbsoluteTerm{Kind: TermDayBase}
	var err error
	if t.Source, err = e.SourceOr(types.SourceThisComponent); err != nil {
		return t, err
	}
	if err = e.Expect("IntervalType", "Stay"); err != nil {
		return t, err
	}
	t.Count, err = baseCount(e)
	return t, err
}

// baseCount reads an integer count or the wildcard "x".
func baseCount(e markup.Element) (*int, error) {
	s, err := e.RequireText()
	if err != nil {
		return nil, err
	}
	if s == "x" {
		return nil, nil
	}
	n, err := scalar.Int(s)
	if err != nil {
		return nil, e.Locate(err)
	}
	return &n, nil
}

// checkRelation validates the attributes shared by AppliedBy and ApplyTo.
func checkRelation(e markup.Element) error {
	if err := e.Forbid("Component", "Source"); err != nil {
		return err
	}
	return e.Expect("LogicalRelation", "Or")
}

func parseAppliedBy(e markup.Element) (string, error) {
	if err := checkRelation(e); err != nil {
		return "", err
	}
	return e.RequireText()
}

func parsePercent(e markup.Element) (Percent, error) {
	var p Percent
	kids, err := e.Children()
	if err != nil {
		return p, err
	}
	seen := once{}
	for _, k := range kids {
		switch k.Name() {
		case "Value":
			if err := impactValue(k, &p.Value, seen); err != nil {
				return p, err
			}
		case "ApplyTo":
			if err := checkRelation(k); err != nil {
				return p, err
			}
			fields, err := k.FieldsText()
			if err != nil {
				return p, err
			}
			classes := make([]types.Token, 0, len(fields))
			for _, f := range fields {
				c, err := types.ParseToken(f)
				if err != nil {
					return p, k.Locate(err)
				}
				classes = append(classes, c)
			}
			p.ApplyTo = append(p.ApplyTo, classes)
		default:
			return p, k.Unsupported()
		}
	}
	if !seen["Value"] {
		return p, e.Fail(types.ErrSchemaViolation, "Percent requires a Value")
	}
	return p, nil
}
