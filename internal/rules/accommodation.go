// internal/rules/accommodation.go
package rules

import (
	"github.com/solatis/otds/internal/availability"
	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/types"
)

/*
 * Accommodation records.
 *
 * The hierarchy is Accommodation > SellingAccom > Board | Unit > SellingUnit.
 * Every level is keyed within its parent; tags, properties, price items and
 * occupancy blocks are keyed within the element that holds them.
 */

// Accommodation is one hotel or holiday property.
type Accommodation struct {
	Tags              TagSets
	Properties        Properties
	Selling           types.Ordered[types.Key, SellingAccom]
	CatchmentAirports []string
	Availabilities    availability.Set
}

// SellingAccom is a sellable variant of an accommodation.
type SellingAccom struct {
	Tags       TagSets
	Booking    Booking
	Filters    Filters
	Boards     types.Ordered[types.Key, Board]
	PriceItems PriceItems
	Units      types.Ordered[types.Key, Unit]
}

// Board is a meal plan offered with a selling accommodation.
type Board struct {
	Tags       TagSets
	Booking    Booking
	Properties Properties
	PriceItems PriceItems
}

// Unit is a room or apartment type.
type Unit struct {
	Tags         TagSets
	Properties   Properties
	SellingUnits types.Ordered[types.Key, SellingUnit]
}

// SellingUnit is a sellable occupancy of a unit.
type SellingUnit struct {
	Tags      TagSets
	Booking   Booking
	Occupancy Occupancy
}

// ParseAccommodation reads an Accommodation element.
func ParseAccommodation(e markup.Element) (types.Key, Accommodation, error) {
	var a Accommodation
	key, err := entity(e)
	if err != nil {
		return "", a, err
	}
	kids, err := e.Children()
	if err != nil {
		return "", a, err
	}
	seen := once{}
	for _, k := range kids {
		switch k.Name() {
		case "Tags":
			err = ParseTags(k, &a.Tags)
		case "Properties":
			err = ParseProperties(k, &a.Properties)
		case "SellingAccom":
			err = parseSellingAccom(k, &a.Selling)
		case "CatchmentAirports":
			if err = seen.check(k); err != nil {
				break
			}
			if err = k.RequireNew(); err != nil {
				break
			}
			a.CatchmentAirports, err = k.FieldsText()
		case "Availabilities":
			err = availability.ParseAvailabilities(k, &a.Availabilities)
		default:
			return "", a, k.Unsupported()
		}
		if err != nil {
			return "", a, err
		}
	}
	return key, a, nil
}

func parseSellingAccom(e markup.Element, into *types.Ordered[types.Key, SellingAccom]) error {
	var s SellingAccom
	key, err := entity(e)
	if err != nil {
		return err
	}
	kids, err := e.Children()
	if err != nil {
		return err
	}
	seen := once{}
	for _, k := range kids {
		switch k.Name() {
		case "Tags":
			err = ParseTags(k, &s.Tags)
		case "Booking":
			if err = seen.check(k); err == nil {
				s.Booking, err = ParseBooking(k)
			}
		case "Filter":
			err = ParseFilter(k, &s.Filters)
		case "Board":
			err = parseBoard(k, &s.Boards)
		case "PriceItems":
			err = ParsePriceItems(k, &s.PriceItems)
		case "Unit":
			err = parseUnit(k, &s.Units)
		default:
			return k.Unsupported()
		}
		if err != nil {
			return err
		}
	}
	return markup.Insert(e, into, key, s)
}

func parseBoard(e markup.Element, into *types.Ordered[types.Key, Board]) error {
	var b Board
	key, err := entity(e)
	if err != nil {
		return err
	}
	kids, err := e.Children()
	if err != nil {
		return err
	}
	seen := once{}
	for _, k := range kids {
		switch k.Name() {
		case "Tags":
			err = ParseTags(k, &b.Tags)
		case "Booking":
			if err = seen.check(k); err == nil {
				b.Booking, err = ParseBooking(k)
			}
		case "Properties":
			err = ParseProperties(k, &b.Properties)
		case "PriceItems":
			err = ParsePriceItems(k, &b.PriceItems)
		default:
			return k.Unsupported()
		}
		if err != nil {
			return err
		}
	}
	return markup.Insert(e, into, key, b)
}

func parseUnit(e markup.Element, into *types.Ordered[types.Key, Unit]) error {
	var u Unit
	key, err := entity(e)
	if err != nil {
		return err
	}
	kids, err := e.Children()
	if err != nil {
		return err
	}
	for _, k := range kids {
		switch k.Name() {
		case "Tags":
			err = ParseTags(k, &u.Tags)
		case "Properties":
			err = ParseProperties(k, &u.Properties)
		case "SellingUnit":
			err = parseSellingUnit(k, &u.SellingUnits)
		default:
			return k.Unsupported()
		}
		if err != nil {
			return err
		}
	}
	return markup.Insert(e, into, key, u)
}

func parseSellingUnit(e markup.Element, into *types.Ordered[types.Key, SellingUnit]) error {
	var s SellingUnit
	key, err := entity(e)
	if err != nil {
		return err
	}
	kids, err := e.Children()
	if err != nil {
		return err
	}
	seen := once{}
	for _, k := range kids {
		switch k.Name() {
		case "Tags":
			err = ParseTags(k, &s.Tags)
		case "Booking":
			if err = seen.check(k); err == nil {
				s.Booking, err = ParseBooking(k)
			}
		case "Occupancy":
			err = ParseOccupancy(k, &s.Occupancy)
		default:
			return k.Unsupported()
		}
		if err != nil {
			return err
		}
	}
	return markup.Insert(e, into, key, s)
}
