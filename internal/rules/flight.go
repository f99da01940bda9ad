package rules

import (
	"github.com/solatis/otds/internal/availability"
	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/types"
	"github.com/solatis/otds/internal/vocab"
)

// OnewayFlight is a single flight leg offered for sale.
type OnewayFlight struct {
	Tags               TagSets
	Departure          string
	Arrival            string
	CheckOutDateOffset *int
	Filters            Filters
	BookingClasses     types.Ordered[types.Key, BookingClass]
	Corrections        types.Ordered[types.Key, NeighbourCorrection]
	Properties         Properties
	PriceItems         PriceItems
}

// BookingClass is a fare class of a one-way flight.
type BookingClass struct {
	Availabilities availability.Set
	Tags           TagSets
	Booking        Booking
	Occupancy      Occupancy
	PriceItems     PriceItems
	Properties     Properties
}

// DateOffset shifts a date, optionally relative to a neighbouring component.
type DateOffset struct {
	Days      int
	Component *vocab.ComponentAttribute
}

// NeighbourCorrection adjusts check-in and check-out against neighbouring
// components of a product.
type NeighbourCorrection struct {
	CheckIn  *DateOffset
	CheckOut *DateOffset
}

// ParseOnewayFlight reads an OnewayFlight element. Departure and arrival
// airports are required.
func ParseOnewayFlight(e markup.Element) (types.Key, OnewayFlight, error) {
	var f OnewayFlight
	key, err := entity(e)
	if err != nil {
		return "", f, err
	}
	kids, err := e.Children()
	if err != nil {
		return "", f, err
	}
	seen := once{}
	for _, k := range kids {
		switch k.Name() {
		case "Tags":
			err = ParseTags(k, &f.Tags)
		case "DepartureAirport":
			f.Departure, err = newText(k, seen)
		case "ArrivalAirport":
			f.Arrival, err = newText(k, seen)
		case "CheckOutDateOffset":
			if _, err = newText(k, seen); err == nil {
				var n int
				n, err = k.IntText()
				f.CheckOutDateOffset = &n
			}
		case "Filter":
			err = ParseFilter(k, &f.Filters)
		case "BookingClass":
			err = parseBookingClass(k, &f.BookingClasses)
		case "NeighbourComponentCorrection":
			err = parseCorrection(k, &f.Corrections)
		case "Properties":
			err = ParseProperties(k, &f.Properties)
		case "PriceItems":
			err = ParsePriceItems(k, &f.PriceItems)
		default:
			return "", f, k.Unsupported()
		}
		if err != nil {
			return "", f, err
		}
	}
	if f.Departure == "" || f.Arrival == "" {
		return "", f, e.Fail(types.ErrSchemaViolation, "OnewayFlight requires DepartureAirport and ArrivalAirport")
	}
	return key, f, nil
}

// newText reads a singleton New-mode simple element.
func newText(e markup.Element, seen once) (string, error) {
	if err := seen.check(e); err != nil {
		return "", err
	}
	if err := e.RequireNew(); err != nil {
		return "", err
	}
	return e.RequireText()
}

func parseBookingClass(e markup.Element, into *types.Ordered[types.Key, BookingClass]) error {
	var b BookingClass
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
		case "Availabilities":
			err = availability.ParseAvailabilities(k, &b.Availabilities)
		case "Tags":
			err = ParseTags(k, &b.Tags)
		case "Booking":
			if err = seen.check(k); err == nil {
				b.Booking, err = ParseBooking(k)
			}
		case "Occupancy":
			err = ParseOccupancy(k, &b.Occupancy)
		case "PriceItems":
			err = ParsePriceItems(k, &b.PriceItems)
		case "Properties":
			err = ParseProperties(k, &b.Properties)
		default:
			return k.Unsupported()
		}
		if err != nil {
			return err
		}
	}
	return markup.Insert(e, into, key, b)
}

func parseCorrection(e markup.Element, into *types.Ordered[types.Key, NeighbourCorrection]) error {
	if err := e.RequireNew(); err != nil {
		return err
	}
	key, err := e.KeyOr("Default")
	if err != nil {
		return err
	}
	kids, err := e.Children()
	if err != nil {
		return err
	}
	var (
		c    NeighbourCorrection
		seen = once{}
	)
	for _, k := range kids {
		if err := seen.check(k); err != nil {
			return err
		}
		var off *DateOffset
		switch k.Name() {
		case "CheckInDateOffset", "CheckOutDateOffset":
			if off, err = parseDateOffset(k); err != nil {
				return err
			}
		default:
			return k.Unsupported()
		}
		if k.Name() == "CheckInDateOffset" {
			c.CheckIn = off
		} else {
			c.CheckOut = off
		}
	}
	return markup.Insert(e, into, key, c)
}

func parseDateOffset(e markup.Element) (*DateOffset, error) {
	n, err := e.IntText()
	if err != nil {
		return nil, err
	}
	comp, err := markup.OptionalEnumAttr(e, "Component", vocab.ParseComponentAttribute)
	if err != nil {
		return nil, err
	}
	return &DateOffset{Days: n, Component: comp}, nil
}
