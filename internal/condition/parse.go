// internal/condition/parse.go
package condition

import (
	"time"

	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/scalar"
	"github.com/solatis/otds/internal/types"
	"github.com/solatis/otds/internal/vocab"
)

/*
 * Recursive descent over condition elements.
 *
 * ParseGroup reads the children of a container element (Condition, Filter,
 * And, Or, Not, If, Then) in document order. Each leaf checks its attribute
 * allow-list before reading content: an attribute value the model cannot
 * represent is types.ErrUnsupportedFeature, never silently dropped.
 *
 * Shape errors (wrong child count, missing branch) are
 * types.ErrSchemaViolation; unknown child tags are types.ErrUnsupportedFeature.
 */

// ParseGroup parses every child of e as a condition.
func ParseGroup(e markup.Element) ([]Condition, error) {
	kids, err := e.Children()
	if err != nil {
		return nil, err
	}
	out := make([]Condition, 0, len(kids))
	for _, k := range kids {
		c, err := Parse(k)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseSingle parses a container that must hold exactly one condition.
func ParseSingle(e markup.Element) (Condition, error) {
	k, err := markup.Single(e)
	if err != nil {
		return nil, err
	}
	return Parse(k)
}

// Parse parses one condition element.
func Parse(e markup.Element) (Condition, error) {
	switch e.Name() {
	case "And":
		children, err := nonEmptyGroup(e)
		if err != nil {
			return nil, err
		}
		return And{Children: children}, nil
	case "Or":
		children, err := nonEmptyGroup(e)
		if err != nil {
			return nil, err
		}
		return Or{Children: children}, nil
	case "Not":
		child, err := ParseSingle(e)
		if err != nil {
			return nil, err
		}
		return Not{Child: child}, nil
	case "Imply":
		return parseImply(e)
	case "Airports":
		return parseAirports(e)
	case "BookingDate":
		return parseBookingDate(e)
	case "BookingDateOffset":
		return parseBookingDateOffset(e)
	case "ConditionalTags":
		return ParseConditionalTags(e)
	case "Date":
		return parseDate(e)
	case "DayImpact":
		return parseDayImpact(e)
	case "Duration":
		return parseDuration(e)
	case "Impact":
		return parseImpact(e)
	case "Keys":
		return parseKeys(e)
	case "MatchEqual":
		return parseMatchEqual(e)
	case "PersonCount":
		return parsePersonCount(e)
	case "PersonGroup":
		return parsePersonGroup(e)
	case "PersonImpact":
		return parsePersonImpact(e)
	case "Tags":
		return parseTags(e)
	case "Weekdays":
		return parseWeekdays(e)
	default:
		return nil, e.Unsupported()
	}
}

func nonEmptyGroup(e markup.Element) ([]Condition, error) {
	children, err := ParseGroup(e)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, e.Fail(types.ErrSchemaViolation, "%s must contain at least one condition", e.Name())
	}
	return children, nil
}

func parseImply(e markup.Element) (Condition, error) {
	kids, err := e.Children()
	if err != nil {
		return nil, err
	}
	var imply Imply
	for _, k := range kids {
		var dst *Condition
		switch k.Name() {
		case "If":
			dst = &imply.If
		case "Then":
			dst = &imply.Then
		default:
			return nil, k.Unsupported()
		}
		if *dst != nil {
			return nil, k.Fail(types.ErrSchemaViolation, "duplicate %s branch", k.Name())
		}
		if *dst, err = ParseSingle(k); err != nil {
			return nil, err
		}
	}
	if imply.If == nil || imply.Then == nil {
		return nil, e.Fail(types.ErrSchemaViolation, "Imply requires both If and Then")
	}
	return imply, nil
}

// read fills Min or Max from c and reports whether c was one of them.
func (b *Bounds[T]) read(c markup.Element, value func(markup.Element) (T, error)) (bool, error) {
	var dst **T
	switch c.Name() {
	case "Min":
		dst = &b.Min
	case "Max":
		dst = &b.Max
	default:
		return false, nil
	}
	v, err := value(c)
	if err != nil {
		return true, err
	}
	*dst = &v
	return true, nil
}

// readBounds reads an element whose only children are Min and Max.
func readBounds[T any](e markup.Element, value func(markup.Element) (T, error)) (Bounds[T], error) {
	var b Bounds[T]
	kids, err := e.Children()
	if err != nil {
		return b, err
	}
	for _, k := range kids {
		ok, err := b.read(k, value)
		if err != nil {
			return b, err
		}
		if !ok {
			return b, k.Unsupported()
		}
	}
	return b, nil
}

func intPtr(e markup.Element) (*int, error) {
	n, err := e.IntText()
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseAirports(e markup.Element) (Condition, error) {
	src, err := e.Source()
	if err != nil {
		return nil, err
	}
	typ, err := markup.RequireEnumAttr(e, "AirportType", vocab.ParseAirportType)
	if err != nil {
		return nil, err
	}
	codes, err := e.FieldsText()
	if err != nil {
		return nil, err
	}
	return Airports{Source: src, Type: typ, Codes: codes}, nil
}

func parseBookingDate(e markup.Element) (Condition, error) {
	src, err := e.Source()
	if err != nil {
		return nil, err
	}
	b, err := readBounds(e, markup.Element.DateText)
	if err != nil {
		return nil, err
	}
	return BookingDate{Source: src, Bounds: b}, nil
}

func parseBookingDateOffset(e markup.Element) (Condition, error) {
	src, err := e.Source()
	if err != nil {
		return nil, err
	}
	b, err := readBounds(e, markup.Element.IntText)
	if err != nil {
		return nil, err
	}
	return BookingDateOffset{Source: src, Bounds: b}, nil
}

// ParseConditionalTags parses a ConditionalTags element. Only whole-value,
// any-day matching is representable.
func ParseConditionalTags(e markup.Element) (ConditionalTags, error) {
	if err := checkTagAttrs(e); err != nil {
		return ConditionalTags{}, err
	}
	src, err := e.Source()
	if err != nil {
		return ConditionalTags{}, err
	}
	class, err := e.Class()
	if err != nil {
		return ConditionalTags{}, err
	}
	values, err := e.FieldsText()
	if err != nil {
		return ConditionalTags{}, err
	}
	return ConditionalTags{Source: src, Class: class, Values: values}, nil
}

// checkTagAttrs admits only the defaults of the tag-matching attributes.
func checkTagAttrs(e markup.Element) error {
	if err := e.Expect("DayAllocation", string(vocab.DayAllocationAll)); err != nil {
		return err
	}
	if err := e.Expect("EvaluationMode", string(vocab.EvaluationAny)); err != nil {
		return err
	}
	if err := e.ExpectInt("Offset", 0); err != nil {
		return err
	}
	return e.Forbid("Length")
}

// checkPersonAttrs rejects day allocation and non-default evaluation on
// person-scoped leaves.
func checkPersonAttrs(e markup.Element) error {
	if err := e.Forbid("DayAllocation"); err != nil {
		return err
	}
	return e.Expect("EvaluationMode", string(vocab.EvaluationAny))
}

func checkImpactOrder(e markup.Element) error {
	return e.Expect("ImpactExecutionOrder", "BeforeCombinatorics")
}

// ParseDate parses a Date element.
func ParseDate(e markup.Element) (Date, error) {
	src, err := e.Source()
	if err != nil {
		return Date{}, err
	}
	dt, err := markup.EnumAttr(e, "DayType", vocab.DayStay, vocab.ParseDayType)
	if err != nil {
		return Date{}, err
	}
	d := Date{DayType: dt, Source: src}
	kids, err := e.Children()
	if err != nil {
		return Date{}, err
	}
	for _, k := range kids {
		ok, err := d.Bounds.read(k, markup.Element.DateText)
		if err != nil {
			return Date{}, err
		}
		if ok {
			continue
		}
		if k.Name() != "Dates" {
			return Date{}, k.Unsupported()
		}
		items, err := k.FieldsText()
		if err != nil {
			return Date{}, err
		}
		for _, s := range items {
			day, err := scalar.Date(s)
			if err != nil {
				return Date{}, k.Locate(err)
			}
			d.Dates = append(d.Dates, day)
		}
	}
	return d, nil
}

func parseDate(e markup.Element) (Condition, error) {
	return ParseDate(e)
}

func parseDayImpact(e markup.Element) (Condition, error) {
	if err := checkImpactOrder(e); err != nil {
		return nil, err
	}
	k, err := markup.Single(e)
	if err != nil {
		return nil, err
	}
	switch k.Name() {
	case "Date":
		d, err := ParseDate(k)
		if err != nil {
			return nil, err
		}
		return DayImpact{Date: &d}, nil
	case "DayIndex":
		d, err := parseDayIndex(k)
		if err != nil {
			return nil, err
		}
		return DayImpact{DayIndex: &d}, nil
	case "Weekdays":
		w, err := ParseWeekdays(k)
		if err != nil {
			return nil, err
		}
		return DayImpact{Weekdays: &w}, nil
	default:
		return nil, k.Unsupported()
	}
}

func parseDayIndex(e markup.Element) (DayIndex, error) {
	if err := e.Expect("IntervalType", "Stay"); err != nil {
		return DayIndex{}, err
	}
	src, err := e.Source()
	if err != nil {
		return DayIndex{}, err
	}
	repeat, err := e.OptionalIntAttr("Repeat")
	if err != nil {
		return DayIndex{}, err
	}
	d := DayIndex{Source: src, Repeat: repeat}
	kids, err := e.Children()
	if err != nil {
		return DayIndex{}, err
	}
	for _, k := range kids {
		bound, err := vocab.ParseDayIndexBound(k.Name())
		if err != nil {
			return DayIndex{}, k.Unsupported()
		}
		n, err := k.IntText()
		if err != nil {
			return DayIndex{}, err
		}
		d.Entries = append(d.Entries, DayIndexEntry{Bound: bound, Value: n})
	}
	return d, nil
}

func parseDuration(e markup.Element) (Condition, error) {
	src, err := e.Source()
	if err != nil {
		return nil, err
	}
	unit, err := markup.EnumAttr(e, "DurationUnit", vocab.UnitNights, vocab.ParseDurationUnit)
	if err != nil {
		return nil, err
	}
	d := Duration{Source: src, Unit: unit}
	kids, err := e.Children()
	if err != nil {
		return nil, err
	}
	span := func(c markup.Element) (time.Duration, error) {
		n, err := c.IntText()
		if err != nil {
			return 0, err
		}
		v, err := scalar.Duration(n, unit)
		return v, c.Locate(err)
	}
	for _, k := range kids {
		ok, err := d.Bounds.read(k, span)
		if err != nil {
			return nil, err
		}
		if ok {
			continue
		}
		switch k.Name() {
		case "Durations":
			items, err := k.FieldsText()
			if err != nil {
				return nil, err
			}
			for _, s := range items {
				n, err := scalar.Int(s)
				if err != nil {
					return nil, k.Locate(err)
				}
				d.Durations = append(d.Durations, n)
			}
		case "MultiplesOf":
			if d.MultiplesOf, err = intPtr(k); err != nil {
				return nil, err
			}
		default:
			return nil, k.Unsupported()
		}
	}
	return d, nil
}

// ParseImpact parses an Impact element holding one ConditionalTags.
func ParseImpact(e markup.Element) (Impact, error) {
	if err := checkImpactOrder(e); err != nil {
		return Impact{}, err
	}
	k, err := markup.Single(e)
	if err != nil {
		return Impact{}, err
	}
	if k.Name() != "ConditionalTags" {
		return Impact{}, k.Unsupported()
	}
	tags, err := ParseConditionalTags(k)
	if err != nil {
		return Impact{}, err
	}
	return Impact{Tags: tags}, nil
}

func parseImpact(e markup.Element) (Condition, error) {
	return ParseImpact(e)
}

func parseKeys(e markup.Element) (Condition, error) {
	if err := e.Expect("EvaluationMode", string(vocab.EvaluationAny)); err != nil {
		return nil, err
	}
	src, err := e.Source()
	if err != nil {
		return nil, err
	}
	da, err := markup.OptionalEnumAttr(e, "DayAllocation", vocab.ParseDayAllocation)
	if err != nil {
		return nil, err
	}
	v, err := e.RequireText()
	if err != nil {
		return nil, err
	}
	return Keys{Source: src, Value: v, DayAllocation: da}, nil
}

func parseMatchEqual(e markup.Element) (Condition, error) {
	kids, err := e.Children()
	if err != nil {
		return nil, err
	}
	var m MatchEqual
	for _, k := range kids {
		op, err := parseOperand(k)
		if err != nil {
			return nil, err
		}
		m.Operands = append(m.Operands, op)
	}
	if len(m.Operands) < 2 {
		return nil, e.Fail(types.ErrSchemaViolation, "MatchEqual requires at least two operands, found %d", len(m.Operands))
	}
	return m, nil
}

func parseOperand(e markup.Element) (Operand, error) {
	var op Operand
	switch e.Name() {
	case "Element":
		if err := checkPersonAttrs(e); err != nil {
			return op, err
		}
		el, err := markup.EnumText(e, vocab.ParseMatchElement)
		if err != nil {
			return op, err
		}
		op.Kind, op.Element = OperandElement, el
	case "Tag":
		if err := checkTagAttrs(e); err != nil {
			return op, err
		}
		if err := e.Expect("TagValueType", "String"); err != nil {
			return op, err
		}
		class, err := e.Class()
		if err != nil {
			return op, err
		}
		op.Kind, op.Class = OperandTag, class
	case "Key":
		if err := e.Expect("DayAllocation", string(vocab.DayAllocationAll)); err != nil {
			return op, err
		}
		if err := e.Expect("EvaluationMode", string(vocab.EvaluationAny)); err != nil {
			return op, err
		}
		op.Kind = OperandKey
	default:
		return op, e.Unsupported()
	}
	src, err := e.Source()
	if err != nil {
		return op, err
	}
	op.Source = src
	return op, nil
}

func parsePersonCount(e markup.Element) (Condition, error) {
	if err := checkPersonAttrs(e); err != nil {
		return nil, err
	}
	src, err := e.Source()
	if err != nil {
		return nil, err
	}
	pc := PersonCount{Source: src}
	kids, err := e.Children()
	if err != nil {
		return nil, err
	}
	for _, k := range kids {
		switch k.Name() {
		case "Min":
			if pc.Min, err = intPtr(k); err != nil {
				return nil, err
			}
		case "PersonFilter":
			f, err := markup.Single(k)
			if err != nil {
				return nil, err
			}
			if f.Name() != "Impact" {
				return nil, f.Unsupported()
			}
			impact, err := ParseImpact(f)
			if err != nil {
				return nil, err
			}
			pc.Filter = &impact
		default:
			return nil, k.Unsupported()
		}
	}
	return pc, nil
}

func parsePersonGroup(e markup.Element) (Condition, error) {
	if err := checkPersonAttrs(e); err != nil {
		return nil, err
	}
	src, err := e.Source()
	if err != nil {
		return nil, err
	}
	pg := PersonGroup{Source: src}
	kids, err := e.Children()
	if err != nil {
		return nil, err
	}
	for _, k := range kids {
		if k.Name() != "Person" {
			return nil, k.Unsupported()
		}
		fields, err := k.Children()
		if err != nil {
			return nil, err
		}
		var m PersonGroupMember
		for _, f := range fields {
			switch f.Name() {
			case "MinAge":
				m.MinAge, err = intPtr(f)
			case "MinCount":
				m.MinCount, err = intPtr(f)
			default:
				return nil, f.Unsupported()
			}
			if err != nil {
				return nil, err
			}
		}
		pg.Members = append(pg.Members, m)
	}
	return pg, nil
}

func parsePersonImpact(e markup.Element) (Condition, error) {
	if err := checkImpactOrder(e); err != nil {
		return nil, err
	}
	k, err := markup.Single(e)
	if err != nil {
		return nil, err
	}
	if k.Name() != "PersonAge" && k.Name() != "PersonIndex" && k.Name() != "PersonGenders" {
		return nil, k.Unsupported()
	}
	if err := checkPersonAttrs(k); err != nil {
		return nil, err
	}
	src, err := k.Source()
	if err != nil {
		return nil, err
	}
	switch k.Name() {
	case "PersonAge":
		b, err := readBounds(k, markup.Element.IntText)
		if err != nil {
			return nil, err
		}
		return PersonImpact{Age: &PersonAge{Source: src, Bounds: b}}, nil
	case "PersonIndex":
		idx, err := parsePersonIndex(k, src)
		if err != nil {
			return nil, err
		}
		return PersonImpact{Index: &idx}, nil
	default:
		genders, err := markup.EnumList(k, vocab.ParsePersonGender)
		if err != nil {
			return nil, err
		}
		return PersonImpact{Genders: &PersonGenders{Source: src, Genders: genders}}, nil
	}
}

func parsePersonIndex(e markup.Element, src types.Source) (PersonIndex, error) {
	idx := PersonIndex{Source: src}
	kids, err := e.Children()
	if err != nil {
		return idx, err
	}
	for _, k := range kids {
		switch k.Name() {
		case "From":
			idx.From, err = intPtr(k)
		case "Until":
			idx.Until, err = intPtr(k)
		case "Indices":
			var items []string
			if items, err = k.FieldsText(); err != nil {
				break
			}
			for _, s := range items {
				n, perr := scalar.Int(s)
				if perr != nil {
					return idx, k.Locate(perr)
				}
				idx.Indices = append(idx.Indices, n)
			}
		case "PersonFilter":
			idx.Filter, err = parseIndexFilter(k)
		default:
			return idx, k.Unsupported()
		}
		if err != nil {
			return idx, err
		}
	}
	return idx, nil
}

func parseIndexFilter(e markup.Element) ([]ConditionalTags, error) {
	kids, err := e.Children()
	if err != nil {
		return nil, err
	}
	out := make([]ConditionalTags, 0, len(kids))
	for _, k := range kids {
		if k.Name() != "ConditionalTags" {
			return nil, k.Unsupported()
		}
		t, err := ParseConditionalTags(k)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func parseTags(e markup.Element) (Condition, error) {
	src, err := e.Source()
	if err != nil {
		return nil, err
	}
	class, err := e.Class()
	if err != nil {
		return nil, err
	}
	da, err := markup.EnumAttr(e, "DayAllocation", TagsDayAllocation, vocab.ParseDayAllocation)
	if err != nil {
		return nil, err
	}
	mode, err := markup.EnumAttr(e, "EvaluationMode", vocab.EvaluationAny, vocab.ParseEvaluationMode)
	if err != nil {
		return nil, err
	}
	start, err := e.IntAttr("Offset", 0)
	if err != nil {
		return nil, err
	}
	length, err := e.OptionalIntAttr("Length")
	if err != nil {
		return nil, err
	}
	if start < 0 || (length != nil && *length < 0) {
		return nil, e.Fail(types.ErrMalformedValue, "negative Offset or Length")
	}
	slice := Slice{Start: start}
	if length != nil {
		end := start + *length
		slice.End = &end
	}
	values, err := e.FieldsText()
	if err != nil {
		return nil, err
	}
	return Tags{Source: src, Class: class, Values: values, Slice: slice, Mode: mode, DayAllocation: da}, nil
}

// ParseWeekdays parses a Weekdays element.
func ParseWeekdays(e markup.Element) (Weekdays, error) {
	src, err := e.Source()
	if err != nil {
		return Weekdays{}, err
	}
	dt, err := markup.EnumAttr(e, "DayType", vocab.DayCheckIn, vocab.ParseDayType)
	if err != nil {
		return Weekdays{}, err
	}
	days, err := markup.EnumList(e, vocab.ParseWeekday)
	if err != nil {
		return Weekdays{}, err
	}
	return Weekdays{Source: src, DayType: dt, Days: days}, nil
}

func parseWeekdays(e markup.Element) (Condition, error) {
	return ParseWeekdays(e)
}
