// internal/availability/availability.go
package availability

import (
	"time"

	"github.com/solatis/otds/internal/condition"
	"github.com/solatis/otds/internal/scalar"
	"github.com/solatis/otds/internal/types"
	"github.com/solatis/otds/internal/vocab"
)

/*
 * Availability calendars.
 *
 * An Availability covers the inclusive date range [Start, End]. Every day
 * takes the Default state unless a DayState override names its offset from
 * Start. Overrides are kept sparse and in document order; Resolve answers
 * for a single day, and expanding the whole calendar is left to consumers.
 *
 * Check-in and check-out of an override are tri-state: inherit the default,
 * explicitly forbidden, or allowed with an Open/Request state.
 */

// State is the booking status of a day.
type State int

const (
	Closed State = iota
	Open
	Request
)

var stateNames = [...]string{Closed: "Closed", Open: "Open", Request: "Request"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// DayState is a State with an optional capacity. Closed days have no capacity.
type DayState struct {
	State    State
	Capacity *int
}

// Equal reports whether two day states have the same state and capacity.
func (d DayState) Equal(o DayState) bool {
	if d.State != o.State || (d.Capacity == nil) != (o.Capacity == nil) {
		return false
	}
	return d.Capacity == nil || *d.Capacity == *o.Capacity
}

// clone returns d with its own copy of Capacity.
func (d DayState) clone() DayState {
	if d.Capacity != nil {
		c := *d.Capacity
		d.Capacity = &c
	}
	return d
}

// GateKind is the tri-state of a check-in or check-out flag.
type GateKind int

const (
	Inherit GateKind = iota
	Forbidden
	Allowed
)

// Gate is a check-in or check-out flag. State is set only when Kind is Allowed.
type Gate struct {
	Kind  GateKind
	State vocab.AvailabilityState
}

// Default is the state of every day without an override. CheckOut, when
// set, is an Open check-out with an optional capacity.
type Default struct {
	DayState DayState
	CheckOut *DayState
}

// Override replaces the default state of the day at Offset from Start.
type Override struct {
	Offset   int
	DayState DayState
	CheckIn  Gate
	CheckOut Gate
}

// Availability is one calendar.
type Availability struct {
	Start     time.Time
	End       time.Time
	Default   Default
	Overrides types.Ordered[types.Key, Override]
}

// Availabilities groups calendars under an optional applicability condition.
type Availabilities struct {
	Condition condition.Condition
	Items     types.Ordered[types.Key, Availability]
}

// Set holds Availabilities blocks by key.
type Set = types.Ordered[types.Key, Availabilities]

// Day is the resolved state of a single date.
type Day struct {
	DayState DayState
	CheckIn  Gate
	CheckOut Gate
}

// Days returns the number of days covered, counting both ends.
func (a Availability) Days() int {
	return dayDiff(a.Start, a.End) + 1
}

// Resolve returns the effective state of date, ignoring its clock time.
// It reports false when date lies outside [Start, End]. When several
// overrides share an offset the last one in document order wins. The
// returned capacity is a copy.
func (a Availability) Resolve(date time.Time) (Day, bool) {
	off := dayDiff(a.Start, date)
	if off < 0 || off >= a.Days() {
		return Day{}, false
	}
	day := Day{DayState: a.Default.DayState}
	for _, o := range a.Overrides.All() {
		if o.Offset == off {
			day = Day{DayState: o.DayState, CheckIn: o.CheckIn, CheckOut: o.CheckOut}
		}
	}
	day.DayState = day.DayState.clone()
	return day, true
}

func dayDiff(from, to time.Time) int {
	return int(scalar.Day(to).Sub(scalar.Day(from)) / (24 * time.Hour))
}
