// internal/condition/condition.go
package condition

import (
	"time"

	"github.com/solatis/otds/internal/types"
	"github.com/solatis/otds/internal/vocab"
)

/*
 * Condition trees.
 *
 * A Condition is one node of the boolean predicate grammar used by Filter,
 * PriceItem, BookingGroup, Availabilities, ConditionalTag and PropertyGroup
 * elements. Nodes are immutable values; connectives hold their children as
 * Condition interface values, leaves hold typed scalars only.
 *
 * Node kinds:
 *   - Connectives: And, Or (one or more children), Not (exactly one),
 *     Imply (one If condition and one Then condition)
 *   - Leaves: Airports, BookingDate, BookingDateOffset, ConditionalTags, Date,
 *     DayImpact, Duration, Impact, Keys, MatchEqual, PersonCount, PersonGroup,
 *     PersonImpact, Tags, Weekdays
 *
 * The parser captures predicates; nothing in this package evaluates them.
 */

// Kind identifies the node type of a Condition.
type Kind int

const (
	KindAnd Kind = iota
	KindOr
	KindNot
	KindImply
	KindAirports
	KindBookingDate
	KindBookingDateOffset
	KindConditionalTags
	KindDate
	KindDayImpact
	KindDuration
	KindImpact
	KindKeys
	KindMatchEqual
	KindPersonCount
	KindPersonGroup
	KindPersonImpact
	KindTags
	KindWeekdays
)

var kindNames = [...]string{
	KindAnd:               "And",
	KindOr:                "Or",
	KindNot:               "Not",
	KindImply:             "Imply",
	KindAirports:          "Airports",
	KindBookingDate:       "BookingDate",
	KindBookingDateOffset: "BookingDateOffset",
	KindConditionalTags:   "ConditionalTags",
	KindDate:              "Date",
	KindDayImpact:         "DayImpact",
	KindDuration:          "Duration",
	KindImpact:            "Impact",
	KindKeys:              "Keys",
	KindMatchEqual:        "MatchEqual",
	KindPersonCount:       "PersonCount",
	KindPersonGroup:       "PersonGroup",
	KindPersonImpact:      "PersonImpact",
	KindTags:              "Tags",
	KindWeekdays:          "Weekdays",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Condition is a node of a condition tree.
// The set of implementations is closed to this package.
type Condition interface {
	Kind() Kind
	condition()
}

// Bounds is an inclusive range where either end may be open.
type Bounds[T any] struct {
	Min *T
	Max *T
}

// TagsDayAllocation is the day allocation assumed by a Tags condition that
// does not name one.
const TagsDayAllocation = vocab.DayAllocationAll

// And holds when every child holds.
type And struct {
	Children []Condition
}

// Or holds when at least one child holds.
type Or struct {
	Children []Condition
}

// Not negates its only child.
type Not struct {
	Child Condition
}

// Imply holds when If does not hold or Then holds.
type Imply struct {
	If   Condition
	Then Condition
}

// Airports matches airport codes of the source component.
type Airports struct {
	Source types.Source
	Type   vocab.AirportType
	Codes  []string
}

// BookingDate bounds the date a booking is made.
type BookingDate struct {
	Source types.Source
	Bounds[time.Time]
}

// BookingDateOffset bounds the days between booking and travel.
type BookingDateOffset struct {
	Source types.Source
	Bounds[int]
}

// ConditionalTags matches a tag class against a list of values.
type ConditionalTags struct {
	Source types.Source
	Class  types.Token
	Values []string
}

// Date bounds or enumerates the travel dates of one day type.
type Date struct {
	DayType vocab.DayType
	Source  types.Source
	Bounds[time.Time]
	Dates []time.Time
}

// DayIndexEntry is one Indices, From or Until entry of a DayIndex.
type DayIndexEntry struct {
	Bound vocab.DayIndexBound
	Value int
}

// DayIndex selects days of a stay by position.
type DayIndex struct {
	Source  types.Source
	Entries []DayIndexEntry
	Repeat  *int
}

// DayImpact restricts a price impact to particular days. Exactly one of the
// fields is set.
type DayImpact struct {
	Date     *Date
	DayIndex *DayIndex
	Weekdays *Weekdays
}

// Duration bounds or enumerates the length of a stay.
type Duration struct {
	Source      types.Source
	Unit        vocab.DurationUnit
	Bounds[time.Duration]
	Durations   []int
	MultiplesOf *int
}

// Impact restricts a price impact by tag values.
type Impact struct {
	Tags ConditionalTags
}

// Keys matches the key of the source component.
type Keys struct {
	Source        types.Source
	Value         string
	DayAllocation *vocab.DayAllocation
}

// OperandKind distinguishes MatchEqual operands.
type OperandKind int

const (
	OperandElement OperandKind = iota
	OperandTag
	OperandKey
)

// Operand is one compared value of a MatchEqual. Element is set for
// OperandElement and Class for OperandTag.
type Operand struct {
	Kind    OperandKind
	Source  types.Source
	Element vocab.MatchElement
	Class   types.Token
}

// MatchEqual holds when all operands resolve to the same value.
type MatchEqual struct {
	Operands []Operand
}

// PersonCount bounds the number of travellers, optionally filtered.
type PersonCount struct {
	Source types.Source
	Min    *int
	Filter *Impact
}

// PersonGroupMember is one Person entry of a PersonGroup.
type PersonGroupMember struct {
	MinAge   *int
	MinCount *int
}

// PersonGroup requires a minimum party composition.
type PersonGroup struct {
	Source  types.Source
	Members []PersonGroupMember
}

// PersonAge bounds traveller age.
type PersonAge struct {
	Source types.Source
	Bounds[int]
}

// PersonIndex selects travellers by position.
type PersonIndex struct {
	Source  types.Source
	From    *int
	Until   *int
	Indices []int
	Filter  []ConditionalTags
}

// PersonGenders matches traveller genders.
type PersonGenders struct {
	Source  types.Source
	Genders []vocab.PersonGender
}

// PersonImpact restricts a price impact to particular travellers. Exactly
// one of the fields is set.
type PersonImpact struct {
	Age     *PersonAge
	Index   *PersonIndex
	Genders *PersonGenders
}

// Slice selects value[Start:End] of a tag value; a nil End runs to the end.
type Slice struct {
	Start int
	End   *int
}

// Tags matches a slice of a tag value against a list of values.
type Tags struct {
	Source        types.Source
	Class         types.Token
	Values        []string
	Slice         Slice
	Mode          vocab.EvaluationMode
	DayAllocation vocab.DayAllocation
}

// Weekdays matches the weekday of one day type.
type Weekdays struct {
	Source  types.Source
	DayType vocab.DayType
	Days    []vocab.Weekday
}

func (And) Kind() Kind               { return KindAnd }
func (Or) Kind() Kind                { return KindOr }
func (Not) Kind() Kind               { return KindNot }
func (Imply) Kind() Kind             { return KindImply }
func (Airports) Kind() Kind          { return KindAirports }
func (BookingDate) Kind() Kind       { return KindBookingDate }
func (BookingDateOffset) Kind() Kind { return KindBookingDateOffset }
func (ConditionalTags) Kind() Kind   { return KindConditionalTags }
func (Date) Kind() Kind              { return KindDate }
func (DayImpact) Kind() Kind         { return KindDayImpact }
func (Duration) Kind() Kind          { return KindDuration }
func (Impact) Kind() Kind            { return KindImpact }
func (Keys) Kind() Kind              { return KindKeys }
func (MatchEqual) Kind() Kind        { return KindMatchEqual }
func (PersonCount) Kind() Kind       { return KindPersonCount }
func (PersonGroup) Kind() Kind       { return KindPersonGroup }
func (PersonImpact) Kind() Kind      { return KindPersonImpact }
func (Tags) Kind() Kind              { return KindTags }
func (Weekdays) Kind() Kind          { return KindWeekdays }

func (And) condition()               {}
func (Or) condition()                {}
func (Not) condition()               {}
func (Imply) condition()             {}
func (Airports) condition()          {}
func (BookingDate) condition()       {}
func (BookingDateOffset) condition() {}
func (ConditionalTags) condition()   {}
func (Date) condition()              {}
func (DayImpact) condition()         {}
func (Duration) condition()          {}
func (Impact) condition()            {}
func (Keys) condition()              {}
func (MatchEqual) condition()        {}
func (PersonCount) condition()       {}
func (PersonGroup) condition()       {}
func (PersonImpact) condition()      {}
func (Tags) condition()              {}
func (Weekdays) condition()          {}
