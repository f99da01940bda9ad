package rules

import (
	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/types"
	"github.com/solatis/otds/internal/vocab"
)

// DayAllocationRule maps a component's start or end onto a reference day.
type DayAllocationRule struct {
	Part      vocab.DayAllocationPart
	Level     int
	Source    types.Source
	Reference vocab.DayReference
	Shift     vocab.Shift
}

// ParseDayAllocation reads a DayAllocation block of start and end rules.
func ParseDayAllocation(e markup.Element) ([]DayAllocationRule, error) {
	if err := e.RequireNew(); err != nil {
		return nil, err
	}
	kids, err := e.Children()
	if err != nil {
		return nil, err
	}
	var out []DayAllocationRule
	for _, k := range kids {
		var r DayAllocationRule
		switch k.Name() {
		case "DayAllocationStart":
			r, err = parseDayAllocationRule(k, vocab.PartStart, vocab.ReferenceCheckIn)
		case "DayAllocationEnd":
			r, err = parseDayAllocationRule(k, vocab.PartEnd, vocab.ReferenceCheckOut)
		default:
			return nil, k.Unsupported()
		}
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseDayAllocationRule(e markup.Element, part vocab.DayAllocationPart, ref vocab.DayReference) (DayAllocationRule, error) {
	r := DayAllocationRule{Part: part}
	var err error
	if err = e.ExpectInt("Offset", 0); err != nil {
		return r, err
	}
	if r.Source, err = e.SourceOr(types.SourceProduct); err != nil {
		return r, err
	}
	if r.Reference, err = markup.EnumAttr(e, "DayReference", ref, vocab.ParseDayReference); err != nil {
		return r, err
	}
	if r.Level, err = e.IntAttr("DayAllocationLevel", 0); err != nil {
		return r, err
	}
	r.Shift, err = markup.EnumAttr(e, "Shift", vocab.ShiftNone, vocab.ParseShift)
	return r, err
}

// ComponentKind identifies the variant of a Component.
type ComponentKind int

const (
	ComponentAccommodation ComponentKind = iota
	ComponentCombi
	ComponentDefined
	ComponentOnewayFlight
)

// SellingAccomRef names one selling accommodation of an Accommodation component.
type SellingAccomRef struct {
	Name               types.Name
	DayAllocationIndex int
}

// DefinedComponentRef refers to a defined component by role.
type DefinedComponentRef struct {
	Role               vocab.Role
	Name               types.Name
	DayAllocationLevel int
}

// CombiComponent bundles defined component references. It has no key and is
// addressed only by its position in the Components list.
type CombiComponent struct {
	Role               vocab.Role
	Name               types.Name
	DayAllocationIndex int
	Components         []DefinedComponentRef
}

// OnewayFlightRef refers to a one-way flight component.
type OnewayFlightRef struct {
	Name               types.Name
	DayAllocationIndex int
	DayAllocationLevel int
}

// Component is one entry of a Components block. Exactly the field matching
// Kind is set.
type Component struct {
	Kind          ComponentKind
	Accommodation []SellingAccomRef
	Combi         *CombiComponent
	Defined       *DefinedComponentRef
	Flight        *OnewayFlightRef
}

// ParseComponents reads a Components block. The product type supplies the
// default name of DefinedComponent references.
func ParseComponents(e markup.Element, pt vocab.ProductType) ([]Component, error) {
	if err := e.RequireNew(); err != nil {
		return nil, err
	}
	kids, err := e.Children()
	if err != nil {
		return nil, err
	}
	var out []Component
	for _, k := range kids {
		var c Component
		switch k.Name() {
		case "Accommodation":
			c.Kind = ComponentAccommodation
			c.Accommodation, err = parseAccommodationComponent(k)
		case "CombiComponent":
			c.Kind = ComponentCombi
			c.Combi, err = parseCombiComponent(k, pt)
		case "DefinedComponent":
			c.Kind = ComponentDefined
			var ref DefinedComponentRef
			ref, err = parseDefinedComponentRef(k, pt)
			c.Defined = &ref
		case "OnewayFlight":
			c.Kind = ComponentOnewayFlight
			c.Flight, err = parseOnewayFlightRef(k)
		default:
			return nil, k.Unsupported()
		}
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func componentName(e markup.Element) (types.Name, error) {
	s, err := implicit(e, "Name")
	if err != nil {
		return "", err
	}
	n, err := types.ParseName(s)
	return n, e.Locate(err)
}

func componentIndex(e markup.Element) (int, error) {
	if _, err := implicit(e, "DayAllocationIndex"); err != nil {
		return 0, err
	}
	return e.RequireIntAttr("DayAllocationIndex")
}

func parseAccommodationComponent(e markup.Element) ([]SellingAccomRef, error) {
	if err := e.Forbid("Name", "DayAllocationIndex"); err != nil {
		return nil, err
	}
	if err := e.ExpectInt("DayAllocationLevel", 0); err != nil {
		return nil, err
	}
	kids, err := e.Children()
	if err != nil {
		return nil, err
	}
	var out []SellingAccomRef
	for _, k := range kids {
		if k.Name() != "SellingAccom" {
			return nil, k.Unsupported()
		}
		var ref SellingAccomRef
		if ref.Name, err = componentName(k); err != nil {
			return nil, err
		}
		if ref.DayAllocationIndex, err = componentIndex(k); err != nil {
			return nil, err
		}
		if err := k.ExpectInt("DayAllocationLevel", 0); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}

func parseCombiComponent(e markup.Element, pt vocab.ProductType) (*CombiComponent, error) {
	if err := e.RequireNew(); err != nil {
		return nil, err
	}
	var (
		c   CombiComponent
		err error
	)
	if c.Name, err = componentName(e); err != nil {
		return nil, err
	}
	if c.DayAllocationIndex, err = componentIndex(e); err != nil {
		return nil, err
	}
	if err = e.ExpectInt("DayAllocationLevel", 0); err != nil {
		return nil, err
	}
	if c.Role, err = markup.RequireEnumAttr(e, "Role", vocab.ParseRole); err != nil {
		return nil, err
	}
	kids, err := e.Children()
	if err != nil {
		return nil, err
	}
	for _, k := range kids {
		if k.Name() != "DefinedComponent" {
			return nil, k.Unsupported()
		}
		ref, err := parseDefinedComponentRef(k, pt)
		if err != nil {
			return nil, err
		}
		c.Components = append(c.Components, ref)
	}
	return &c, nil
}

func parseDefinedComponentRef(e markup.Element, pt vocab.ProductType) (DefinedComponentRef, error) {
	var (
		r   DefinedComponentRef
		err error
	)
	if err = e.Forbid("DayAllocationIndex"); err != nil {
		return r, err
	}
	if r.Role, err = markup.RequireEnumAttr(e, "UseRole", vocab.ParseRole); err != nil {
		return r, err
	}
	if s, ok := e.Attr("Name"); ok {
		if r.Name, err = types.ParseName(s); err != nil {
			return r, e.Locate(err)
		}
	} else if r.Name, ok = e.Dialect().ComponentName(pt); !ok {
		return r, e.Fail(types.ErrUnsupportedFeature, "no default component name for product type %s", pt)
	}
	r.DayAllocationLevel, err = e.IntAttr("DayAllocationLevel", 0)
	return r, err
}

func parseOnewayFlightRef(e markup.Element) (*OnewayFlightRef, error) {
	var (
		r   OnewayFlightRef
		err error
	)
	if r.Name, err = componentName(e); err != nil {
		return nil, err
	}
	if r.DayAllocationIndex, err = e.IntAttr("DayAllocationIndex", 0); err != nil {
		return nil, err
	}
	if r.DayAllocationLevel, err = e.IntAttr("DayAllocationLevel", 0); err != nil {
		return nil, err
	}
	return &r, nil
}
