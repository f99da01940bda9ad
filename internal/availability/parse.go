package availability

import (
	"strings"

	"github.com/solatis/otds/internal/condition"
	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/scalar"
	"github.com/solatis/otds/internal/types"
	"github.com/solatis/otds/internal/vocab"
)

// ParseAvailabilities reads a keyed Availabilities block into set.
func ParseAvailabilities(e markup.Element, set *Set) error {
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
	var (
		av      Availabilities
		hasCond bool
	)
	for _, k := range kids {
		switch k.Name() {
		case "Availability":
			if err := parseAvailability(k, &av.Items); err != nil {
				return err
			}
		case "Condition":
			if hasCond {
				return k.Fail(types.ErrSchemaViolation, "element Condition may appear only once")
			}
			hasCond = true
			if av.Condition, err = condition.ParseSingle(k); err != nil {
				return err
			}
		default:
			return k.Unsupported()
		}
	}
	return markup.Insert(e, set, key, av)
}

func parseAvailability(e markup.Element, into *types.Ordered[types.Key, Availability]) error {
	if err := e.RequireNew(); err != nil {
		return err
	}
	key, err := e.Key()
	if err != nil {
		return err
	}
	var a Availability
	if a.Start, err = e.DateAttr("StartDate"); err != nil {
		return err
	}
	if a.End, err = e.DateAttr("EndDate"); err != nil {
		return err
	}
	if a.End.Before(a.Start) {
		return e.Fail(types.ErrMalformedValue, "EndDate %s precedes StartDate %s",
			scalar.FormatDate(a.End), scalar.FormatDate(a.Start))
	}
	kids, err := e.Children()
	if err != nil {
		return err
	}
	hasDefault := false
	for _, k := range kids {
		switch k.Name() {
		case "DefaultDayState":
			if hasDefault {
				return k.Fail(types.ErrSchemaViolation, "element DefaultDayState may appear only once")
			}
			hasDefault = true
			if a.Default, err = parseDefault(k); err != nil {
				return err
			}
		case "DayState":
			if err := parseOverride(k, a.Days(), &a.Overrides); err != nil {
				return err
			}
		default:
			return k.Unsupported()
		}
	}
	if !hasDefault {
		return e.Fail(types.ErrSchemaViolation, "Availability requires a DefaultDayState")
	}
	return markup.Insert(e, into, key, a)
}

// dayState reads Closed, Open or Request. Open and Request take an optional
// capacity as text.
func dayState(e markup.Element) (DayState, bool, error) {
	var s DayState
	switch e.Name() {
	case "Closed":
		if strings.TrimSpace(e.Text()) != "" {
			return s, true, e.Fail(types.ErrSchemaViolation, "Closed takes no capacity")
		}
		return DayState{State: Closed}, true, nil
	case "Open":
		s.State = Open
	case "Request":
		s.State = Request
	default:
		return s, false, nil
	}
	c, err := e.OptionalIntText()
	if err != nil {
		return s, true, err
	}
	if c != nil && *c < 0 {
		return s, true, e.Fail(types.ErrMalformedValue, "negative capacity %d", *c)
	}
	s.Capacity = c
	return s, true, nil
}

func parseDefault(e markup.Element) (Default, error) {
	var d Default
	if err := e.RequireNew(); err != nil {
		return d, err
	}
	kids, err := e.Children()
	if err != nil {
		return d, err
	}
	hasState := false
	for _, k := range kids {
		s, ok, err := dayState(k)
		if err != nil {
			return d, err
		}
		switch {
		case ok:
			if hasState {
				return d, k.Fail(types.ErrSchemaViolation, "DefaultDayState holds a single day state")
			}
			hasState = true
			d.DayState = s
		case k.Name() == "CheckOut":
			if err := k.Expect("State", string(vocab.AvailabilityOpen)); err != nil {
				return d, err
			}
			c, err := k.OptionalIntText()
			if err != nil {
				return d, err
			}
			d.CheckOut = &DayState{State: Open, Capacity: c}
		default:
			return d, k.Unsupported()
		}
	}
	if !hasState {
		return d, e.Fail(types.ErrSchemaViolation, "DefaultDayState requires Closed, Open or Request")
	}
	return d, nil
}

func parseOverride(e markup.Element, days int, into *types.Ordered[types.Key, Override]) error {
	if err := e.RequireNew(); err != nil {
		return err
	}
	key, err := e.Key()
	if err != nil {
		return err
	}
	var o Override
	if o.Offset, err = e.RequireIntAttr("Offset"); err != nil {
		return err
	}
	if o.Offset < 0 || o.Offset >= days {
		return e.Fail(types.ErrMalformedValue, "offset %d outside availability of %d days", o.Offset, days)
	}
	kids, err := e.Children()
	if err != nil {
		return err
	}
	hasState := false
	for _, k := range kids {
		s, ok, err := dayState(k)
		if err != nil {
			return err
		}
		if ok {
			if hasState {
				return k.Fail(types.ErrSchemaViolation, "DayState holds a single day state")
			}
			hasState = true
			o.DayState = s
			continue
		}
		switch k.Name() {
		case "CheckIn":
			st, err := markup.EnumAttr(k, "State", vocab.AvailabilityOpen, vocab.ParseAvailabilityState)
			if err != nil {
				return err
			}
			o.CheckIn = Gate{Kind: Allowed, State: st}
		case "NoCheckIn":
			o.CheckIn = Gate{Kind: Forbidden}
		case "CheckOut":
			if strings.TrimSpace(k.Text()) != "" {
				return k.Fail(types.ErrUnsupportedFeature, "check-out capacity on a day state is not supported")
			}
			st, err := markup.EnumAttr(k, "State", vocab.AvailabilityOpen, vocab.ParseAvailabilityState)
			if err != nil {
				return err
			}
			o.CheckOut = Gate{Kind: Allowed, State: st}
		case "NoCheckOut":
			o.CheckOut = Gate{Kind: Forbidden}
		default:
			return k.Unsupported()
		}
	}
	if !hasState {
		return e.Fail(types.ErrSchemaViolation, "DayState requires Closed, Open or Request")
	}
	return markup.Insert(e, into, key, o)
}
