// internal/rules/properties.go
package rules

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solatis/otds/internal/condition"
	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/scalar"
	"github.com/solatis/otds/internal/types"
	"github.com/solatis/otds/internal/vocab"
)

/*
 * Descriptive properties of accommodations, boards, units and flights.
 *
 * A Properties block holds PropertyGroups; each group describes one aspect
 * set, optionally under a Condition. Localized text is accepted in German
 * only, and at most once per group. Repeats of localized text are reported as
 * unsupported, since choosing between translations is not modelled.
 */

// Reference is an external content reference, e.g. a GIATA id.
type Reference struct {
	Type  string
	Value string
}

// GeoCode is a WGS84 position.
type GeoCode struct {
	Latitude   decimal.Decimal
	Longitude  decimal.Decimal
	AccuracyKm int
}

// Address is a postal address with optional position.
type Address struct {
	Street  string
	Zip     string
	City    string
	Country string
	Phone   string
	Fax     string
	Geo     *GeoCode
}

// BaggageAllowance is the luggage included with a booking class.
type BaggageAllowance struct {
	Pieces     *int
	Weight     *decimal.Decimal
	WeightUnit string
}

// RouteNode is one end of a flight leg. Time is an offset from midnight.
type RouteNode struct {
	Airport    string
	DateOffset *int
	Time       *time.Duration
}

// Route is one flight leg.
type Route struct {
	Departure    *RouteNode
	Arrival      *RouteNode
	Carrier      string
	FlightNumber string
	StopOvers    *int
}

// Addon is an optionally bookable addon with its teaser text.
type Addon struct {
	Type   vocab.OptionalBookableAddonType
	Teaser string
}

// PropertyGroup is one group of descriptive properties.
type PropertyGroup struct {
	Cities           []string
	Type             *vocab.AccommodationType
	Name             string
	References       types.Ordered[string, Reference]
	OfficialCategory *scalar.Category
	OperatorCategory *scalar.Category
	Address          *Address
	TargetGroups     []vocab.AccommodationTargetgroup
	BoardName        string
	BoardType        *vocab.BoardType
	Baggage          types.Ordered[vocab.BaggageType, BaggageAllowance]
	Routes           []Route
	UnitFacilities   []vocab.UnitFacility
	UnitName         string
	UnitTypes        []vocab.UnitType
	IncludedServices []vocab.GeneralIncludedService
	Addons           []Addon
	Condition        condition.Condition
}

// Properties holds Properties blocks by key.
type Properties = types.Ordered[types.Key, []PropertyGroup]

// ParseProperties reads a keyed Properties block.
func ParseProperties(e markup.Element, into *Properties) error {
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
	groups := make([]PropertyGroup, 0, len(kids))
	for _, k := range kids {
		if k.Name() != "PropertyGroup" {
			return k.Unsupported()
		}
		g, err := parsePropertyGroup(k)
		if err != nil {
			return err
		}
		groups = append(groups, g)
	}
	return markup.Insert(e, into, key, groups)
}

// localized reads German text into dst, which must still be empty.
func localized(e markup.Element, dst *string) error {
	if err := e.RequireLang(); err != nil {
		return err
	}
	if *dst != "" {
		return e.Fail(types.ErrUnsupportedFeature, "repeated localized %s", e.Name())
	}
	s, err := e.RequireText()
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

func parsePropertyGroup(e markup.Element) (PropertyGroup, error) {
	var g PropertyGroup
	if err := e.ExpectInt("Priority", 0); err != nil {
		return g, err
	}
	kids, err := e.Children()
	if err != nil {
		return g, err
	}
	for _, k := range kids {
		switch k.Name() {
		case "AccommodationCity":
			var city string
			if err = localized(k, &city); err == nil {
				g.Cities = append(g.Cities, city)
			}
		case "AccommodationType":
			var t vocab.AccommodationType
			t, err = markup.EnumText(k, vocab.ParseAccommodationType)
			g.Type = &t
		case "AccommodationName":
			err = localized(k, &g.Name)
		case "AccommodationInfo":
			err = parseAccommodationInfo(k, &g.References)
		case "AccommodationOfficialCategory":
			g.OfficialCategory, err = categoryText(k)
		case "AccommodationOperatorCategory":
			g.OperatorCategory, err = categoryText(k)
		case "AccommodationAddress":
			if g.Address == nil {
				g.Address = &Address{}
			}
			err = parseAddress(k, g.Address)
		case "AccomodationTargetgroups":
			g.TargetGroups, err = markup.EnumList(k, vocab.ParseAccommodationTargetgroup)
		case "BoardName":
			err = localized(k, &g.BoardName)
		case "BoardType":
			var t vocab.BoardType
			t, err = markup.EnumText(k, vocab.ParseBoardType)
			g.BoardType = &t
		case "FlightBookingClassBaggageAllowances":
			err = parseBaggage(k, &g.Baggage)
		case "FlightRoutes":
			g.Routes, err = parseRoutes(k)
		case "UnitFacilities":
			g.UnitFacilities, err = markup.EnumList(k, vocab.ParseUnitFacility)
		case "UnitName":
			// Empty UnitName elements occur in production feeds and carry nothing.
			if strings.TrimSpace(k.Text()) != "" {
				err = localized(k, &g.UnitName)
			}
		case "UnitType":
			if strings.TrimSpace(k.Text()) != "" {
				g.UnitTypes, err = markup.EnumList(k, vocab.ParseUnitType)
			}
		case "GeneralIncludedServices":
			g.IncludedServices, err = parseIncludedServices(k)
		case "OptionalBookableAddonTypes":
			g.Addons, err = parseAddons(k)
		case "Condition":
			g.Condition, err = condition.ParseSingle(k)
		default:
			return g, k.Unsupported()
		}
		if err != nil {
			return g, err
		}
	}
	return g, nil
}

func categoryText(e markup.Element) (*scalar.Category, error) {
	s, err := e.RequireText()
	if err != nil {
		return nil, err
	}
	c, err := scalar.ParseCategory(s)
	if err != nil {
		return nil, e.Locate(err)
	}
	return &c, nil
}

func parseAccommodationInfo(e markup.Element, refs *types.Ordered[string, Reference]) error {
	kids, err := e.Children()
	if err != nil {
		return err
	}
	for _, k := range kids {
		if k.Name() != "Reference" {
			return k.Unsupported()
		}
		sys, err := k.RequireAttr("ReferenceSystem")
		if err != nil {
			return err
		}
		sys = strings.ToLower(sys)
		if sys != "giata" && sys != "geocodes" {
			return k.Fail(types.ErrUnsupportedFeature, "reference system %q is not supported", sys)
		}
		var ref Reference
		if ref.Type, err = k.RequireAttr("ReferenceType"); err != nil {
			return err
		}
		if ref.Value, err = k.RequireText(); err != nil {
			return err
		}
		refs.Set(sys, ref)
	}
	return nil
}

func parseAddress(e markup.Element, a *Address) error {
	kids, err := e.Children()
	if err != nil {
		return err
	}
	for _, k := range kids {
		switch k.Name() {
		case "Street":
			a.Street, err = k.RequireText()
		case "ZipCode":
			a.Zip, err = k.RequireText()
		case "City":
			err = localized(k, &a.City)
		case "Country":
			err = localized(k, &a.Country)
		case "Phone":
			a.Phone, err = k.RequireText()
		case "Fax":
			a.Fax, err = k.RequireText()
		case "GeoInfo":
			a.Geo, err = parseGeoInfo(k)
		default:
			return k.Unsupported()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func parseGeoInfo(e markup.Element) (*GeoCode, error) {
	code, err := markup.Single(e)
	if err != nil {
		return nil, err
	}
	if code.Name() != "GeoCode" {
		return nil, code.Unsupported()
	}
	kids, err := code.Children()
	if err != nil {
		return nil, err
	}
	var (
		g    GeoCode
		seen = once{}
	)
	for _, k := range kids {
		if err := seen.check(k); err != nil {
			return nil, err
		}
		switch k.Name() {
		case "Latitude", "Longitude":
			// Coordinates are optional in the grammar; an empty one leaves
			// the position undefined.
			if strings.TrimSpace(k.Text()) == "" {
				return nil, k.Fail(types.ErrUnsupportedFeature, "empty %s", k.Name())
			}
			d, err := k.DecimalText()
			if err != nil {
				return nil, err
			}
			if k.Name() == "Latitude" {
				g.Latitude = d
			} else {
				g.Longitude = d
			}
		case "Accuracy":
			if g.AccuracyKm, err = k.IntText(); err != nil {
				return nil, err
			}
		default:
			return nil, k.Unsupported()
		}
	}
	for _, want := range []string{"Latitude", "Longitude", "Accuracy"} {
		if !seen[want] {
			return nil, code.Fail(types.ErrSchemaViolation, "GeoCode requires %s", want)
		}
	}
	return &g, nil
}

func parseBaggage(e markup.Element, into *types.Ordered[vocab.BaggageType, BaggageAllowance]) error {
	kids, err := e.Children()
	if err != nil {
		return err
	}
	for _, k := range kids {
		if k.Name() != "BaggageAllowance" {
			return k.Unsupported()
		}
		bt, err := markup.EnumAttr(k, "BaggageType", vocab.BaggageChecked, vocab.ParseBaggageType)
		if err != nil {
			return err
		}
		items, err := k.Children()
		if err != nil {
			return err
		}
		var a BaggageAllowance
		for _, it := range items {
			switch it.Name() {
			case "Pieces":
				n, err := it.IntText()
				if err != nil {
					return err
				}
				a.Pieces = &n
			case "Weight":
				w, err := it.DecimalText()
				if err != nil {
					return err
				}
				a.Weight = &w
				a.WeightUnit = it.AttrOr("Unit", "")
			default:
				return it.Unsupported()
			}
		}
		if err := markup.Insert(k, into, bt, a); err != nil {
			return err
		}
	}
	return nil
}

func parseRoutes(e markup.Element) ([]Route, error) {
	kids, err := e.Children()
	if err != nil {
		return nil, err
	}
	out := make([]Route, 0, len(kids))
	for _, k := range kids {
		r, err := parseRoute(k)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseRoute(e markup.Element) (Route, error) {
	var r Route
	kids, err := e.Children()
	if err != nil {
		return r, err
	}
	for _, k := range kids {
		switch k.Name() {
		case "Departure":
			r.Departure, err = parseRouteNode(k)
		case "Arrival":
			r.Arrival, err = parseRouteNode(k)
		case "Operating":
			err = parseOperating(k, &r)
		case "StopOvers":
			var n int
			n, err = k.IntText()
			r.StopOvers = &n
		default:
			return r, k.Unsupported()
		}
		if err != nil {
			return r, err
		}
	}
	return r, nil
}

func parseRouteNode(e markup.Element) (*RouteNode, error) {
	var n RouteNode
	kids, err := e.Children()
	if err != nil {
		return nil, err
	}
	for _, k := range kids {
		switch k.Name() {
		case "Airport":
			n.Airport, err = k.RequireText()
		case "DateOffset":
			var off int
			off, err = k.IntText()
			n.DateOffset = &off
		case "Time":
			if err = k.Forbid("UTCOffsetOfTimeZone"); err != nil {
				return nil, err
			}
			var s string
			if s, err = k.RequireText(); err != nil {
				return nil, err
			}
			var t time.Duration
			if t, err = scalar.TimeOfDay(s); err != nil {
				return nil, k.Locate(err)
			}
			n.Time = &t
		default:
			return nil, k.Unsupported()
		}
		if err != nil {
			return nil, err
		}
	}
	return &n, nil
}

func parseOperating(e markup.Element, r *Route) error {
	kids, err := e.Children()
	if err != nil {
		return err
	}
	for _, k := range kids {
		switch k.Name() {
		case "Carrier":
			id, err := markup.Single(k)
			if err != nil {
				return err
			}
			if id.Name() != "Identifier" {
				return id.Unsupported()
			}
			if r.Carrier, err = id.RequireText(); err != nil {
				return err
			}
		case "FlightNumber":
			if r.FlightNumber, err = k.RequireText(); err != nil {
				return err
			}
		default:
			return k.Unsupported()
		}
	}
	return nil
}

func parseIncludedServices(e markup.Element) ([]vocab.GeneralIncludedService, error) {
	if err := e.Forbid("Class"); err != nil {
		return nil, err
	}
	kids, err := e.Children()
	if err != nil {
		return nil, err
	}
	out := make([]vocab.GeneralIncludedService, 0, len(kids))
	for _, k := range kids {
		if k.Name() != "GeneralIncludedService" {
			return nil, k.Unsupported()
		}
		if err := k.RequireLang(); err != nil {
			return nil, err
		}
		if err := k.Forbid("ShortServiceAnnotation"); err != nil {
			return nil, err
		}
		s, err := markup.EnumText(k, vocab.ParseGeneralIncludedService)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func parseAddons(e markup.Element) ([]Addon, error) {
	if err := e.Forbid("Class"); err != nil {
		return nil, err
	}
	kids, err := e.Children()
	if err != nil {
		return nil, err
	}
	out := make([]Addon, 0, len(kids))
	for _, k := range kids {
		if k.Name() != "OptionalBookableAddonType" {
			return nil, k.Unsupported()
		}
		if err := k.RequireLang(); err != nil {
			return nil, err
		}
		t, err := markup.EnumText(k, vocab.ParseOptionalBookableAddonType)
		if err != nil {
			return nil, err
		}
		out = append(out, Addon{Type: t, Teaser: k.AttrOr("ShortTeaserText", "")})
	}
	return out, nil
}
