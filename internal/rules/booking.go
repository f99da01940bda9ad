// internal/rules/booking.go
package rules

import (
	"github.com/solatis/otds/internal/condition"
	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/scalar"
	"github.com/solatis/otds/internal/types"
	"github.com/solatis/otds/internal/vocab"
)

/*
 * Booking-string construction rules.
 *
 * A Booking element holds BookingGroups; each group interleaves conditions
 * and BookingParameters. A parameter renders one Field of the reservation
 * string from ordered segments (tag value, date, person age, literal) framed
 * by left and right separators.
 *
 * Padding: only right-padding with spaces, applied always, is representable.
 * Literal segments are padded at parse time; other segments are rendered by
 * the consumer.
 */

// Booking is the ordered list of booking groups of one element.
type Booking []BookingGroup

// BookingGroup scopes a set of booking parameters.
type BookingGroup struct {
	Area     vocab.BookingGroupArea
	Source   types.Source
	Base     *vocab.EvaluationBase
	Priority int
	Entries  []BookingEntry
}

// BookingEntry is either a Condition or a Parameter.
type BookingEntry struct {
	Condition condition.Condition
	Parameter *BookingParameter
}

// BookingParameter renders one field of a booking string.
type BookingParameter struct {
	Field          vocab.Field
	Index          int
	Name           types.Name
	Segments       []Segment
	LeftSeparator  string
	RightSeparator string
}

// SegmentKind identifies the source of a booking segment.
type SegmentKind int

const (
	SegmentValue SegmentKind = iota
	SegmentTag
	SegmentDate
	SegmentPersonAge
)

// Segment is one rendered piece of a BookingParameter. Fields not relevant
// to Kind are zero.
type Segment struct {
	Kind    SegmentKind
	Value   string
	Source  types.Source
	Class   types.Token
	DayType vocab.DayType
	Format  vocab.DateFormat
	AgeType vocab.AgeType
}

// ParseBooking reads a Booking element.
func ParseBooking(e markup.Element) (Booking, error) {
	if err := e.RequireNew(); err != nil {
		return nil, err
	}
	kids, err := e.Children()
	if err != nil {
		return nil, err
	}
	out := make(Booking, 0, len(kids))
	for _, k := range kids {
		if k.Name() != "BookingGroup" {
			return nil, k.Unsupported()
		}
		g, err := parseBookingGroup(k)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func parseBookingGroup(e markup.Element) (BookingGroup, error) {
	var g BookingGroup
	if err := e.Forbid("Class"); err != nil {
		return g, err
	}
	area, err := markup.RequireEnumAttr(e, "Area", vocab.ParseBookingGroupArea)
	if err != nil {
		return g, err
	}
	src, err := e.SourceOr(types.SourceThisComponent)
	if err != nil {
		return g, err
	}
	base, err := markup.OptionalEnumAttr(e, "EvaluationBase", vocab.ParseEvaluationBase)
	if err != nil {
		return g, err
	}
	prio, err := e.IntAttr("Priority", 0)
	if err != nil {
		return g, err
	}
	g = BookingGroup{Area: area, Source: src, Base: base, Priority: prio}

	kids, err := e.Children()
	if err != nil {
		return g, err
	}
	for _, k := range kids {
		switch k.Name() {
		case "BookingParameter":
			p, err := parseBookingParameter(k)
			if err != nil {
				return g, err
			}
			g.Entries = append(g.Entries, BookingEntry{Parameter: &p})
		case "Condition":
			c, err := condition.ParseSingle(k)
			if err != nil {
				return g, err
			}
			g.Entries = append(g.Entries, BookingEntry{Condition: c})
		default:
			return g, k.Unsupported()
		}
	}
	return g, nil
}

func parseBookingParameter(e markup.Element) (BookingParameter, error) {
	var p BookingParameter
	for _, a := range [][2]string{{"PadOrientation", "Right"}, {"Padding", " "}, {"PadCondition", "Always"}} {
		if err := e.Expect(a[0], a[1]); err != nil {
			return p, err
		}
	}
	pad, err := e.IntAttr("PadLength", 0)
	if err != nil {
		return p, err
	}
	if p.Field, err = markup.RequireEnumAttr(e, "Field", vocab.ParseField); err != nil {
		return p, err
	}
	if p.Index, err = e.IntAttr("Index", 0); err != nil {
		return p, err
	}
	p.Name, err = types.ParseName(e.AttrOr("Name", string(types.DefaultName)))
	if err != nil {
		return p, e.Locate(err)
	}
	p.LeftSeparator = e.AttrOr("LeftSeparator", "")
	p.RightSeparator = e.AttrOr("RightSeparator", "")

	kids, err := e.Children()
	if err != nil {
		return p, err
	}
	for _, k := range kids {
		s, err := parseSegment(k, pad)
		if err != nil {
			return p, err
		}
		p.Segments = append(p.Segments, s)
	}
	return p, nil
}

func parseSegment(e markup.Element, pad int) (Segment, error) {
	var (
		s   Segment
		err error
	)
	switch e.Name() {
	case "Value":
		// Literal text is kept verbatim; only emptiness is rejected.
		v := e.Text()
		if v == "" {
			return s, e.Fail(types.ErrSchemaViolation, "empty booking value")
		}
		s = Segment{Kind: SegmentValue, Value: scalar.PadRight(v, pad)}
	case "Date":
		s.Kind = SegmentDate
		if s.DayType, err = markup.RequireEnumAttr(e, "DayType", vocab.ParseDayType); err != nil {
			return s, err
		}
		if s.Source, err = e.SourceOr(types.SourceThisComponent); err != nil {
			return s, err
		}
		s.Format, err = markup.EnumAttr(e, "DateFormat", vocab.DateShort, vocab.ParseDateFormat)
	case "PersonAge":
		s.Kind = SegmentPersonAge
		if s.AgeType, err = markup.EnumAttr(e, "AgeType", vocab.AgeTravel, vocab.ParseAgeType); err != nil {
			return s, err
		}
		s.Format, err = markup.EnumAttr(e, "DateFormat", vocab.DateShort, vocab.ParseDateFormat)
	case "Tag":
		s.Kind = SegmentTag
		if err = e.Forbid("DayAllocation", "Length", "TagValueType"); err != nil {
			return s, err
		}
		if err = e.Expect("EvaluationMode", string(vocab.EvaluationAny)); err != nil {
			return s, err
		}
		if err = e.ExpectInt("Offset", 0); err != nil {
			return s, err
		}
		if s.Source, err = e.Source(); err != nil {
			return s, err
		}
		s.Class, err = e.Class()
	default:
		return s, e.Unsupported()
	}
	return s, err
}
