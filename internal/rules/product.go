package rules

import (
	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/types"
	"github.com/solatis/otds/internal/vocab"
)

// Product is a sellable composition of components.
type Product struct {
	Type          vocab.ProductType
	Tags          TagSets
	Components    []Component
	DayAllocation []DayAllocationRule
	Filters       Filters
}

// DefinedComponent is a reusable component rule referenced by role.
type DefinedComponent struct {
	Role       vocab.Role
	Booking    Booking
	Components []Component
	Filters    Filters
}

// Brand carries brand-wide booking rules and tags.
type Brand struct {
	Booking Booking
	Tags    TagSets
}

// entity reads the key of a top-level record, which must be New.
func entity(e markup.Element) (types.Key, error) {
	if err := e.RequireNew(); err != nil {
		return "", err
	}
	return e.Key()
}

// ParseProduct reads a Product element.
func ParseProduct(e markup.Element) (types.Key, Product, error) {
	var p Product
	key, err := entity(e)
	if err != nil {
		return "", p, err
	}
	if p.Type, err = markup.RequireEnumAttr(e, "ProductType", vocab.ParseProductType); err != nil {
		return "", p, err
	}
	kids, err := e.Children()
	if err != nil {
		return "", p, err
	}
	seen := once{}
	for _, k := range kids {
		switch k.Name() {
		case "Tags":
			err = ParseTags(k, &p.Tags)
		case "Components":
			if err = seen.check(k); err == nil {
				p.Components, err = ParseComponents(k, p.Type)
			}
		case "DayAllocation":
			if err = seen.check(k); err == nil {
				p.DayAllocation, err = ParseDayAllocation(k)
			}
		case "Filter":
			err = ParseFilter(k, &p.Filters)
		default:
			return "", p, k.Unsupported()
		}
		if err != nil {
			return "", p, err
		}
	}
	return key, p, nil
}

// ParseDefinedComponent reads a DefineComponent element. The component's
// role must name a product type; that type supplies the default names of
// nested component references.
func ParseDefinedComponent(e markup.Element) (types.Key, DefinedComponent, error) {
	var d DefinedComponent
	key, err := entity(e)
	if err != nil {
		return "", d, err
	}
	if err = e.Forbid("DayAllocationIndex"); err != nil {
		return "", d, err
	}
	if d.Role, err = markup.RequireEnumAttr(e, "Role", vocab.ParseRole); err != nil {
		return "", d, err
	}
	pt, ok := e.Dialect().ProductTypeForRole(d.Role)
	if !ok {
		return "", d, e.Fail(types.ErrUnsupportedFeature, "role %s does not define a component", d.Role)
	}
	kids, err := e.Children()
	if err != nil {
		return "", d, err
	}
	seen := once{}
	for _, k := range kids {
		switch k.Name() {
		case "Booking":
			if err = seen.check(k); err == nil {
				d.Booking, err = ParseBooking(k)
			}
		case "Components":
			if err = seen.check(k); err == nil {
				d.Components, err = ParseComponents(k, pt)
			}
		case "Filter":
			err = ParseFilter(k, &d.Filters)
		default:
			return "", d, k.Unsupported()
		}
		if err != nil {
			return "", d, err
		}
	}
	return key, d, nil
}

// ParseBrand reads a Brand element.
func ParseBrand(e markup.Element) (types.Key, Brand, error) {
	var b Brand
	key, err := entity(e)
	if err != nil {
		return "", b, err
	}
	kids, err := e.Children()
	if err != nil {
		return "", b, err
	}
	seen := once{}
	for _, k := range kids {
		switch k.Name() {
		case "Booking":
			if err = seen.check(k); err == nil {
				b.Booking, err = ParseBooking(k)
			}
		case "Tags":
			err = ParseTags(k, &b.Tags)
		default:
			return "", b, k.Unsupported()
		}
		if err != nil {
			return "", b, err
		}
	}
	return key, b, nil
}
