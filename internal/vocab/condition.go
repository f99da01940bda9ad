package vocab

// AirportType selects which airport of a component an Airports condition inspects.
type AirportType string

const (
	AirportArrival   AirportType = "Arrival"
	AirportCatchment AirportType = "Catchment"
	AirportDeparture AirportType = "Departure"
)

var airportTypes = newVocabulary("AirportType", AirportArrival, AirportCatchment, AirportDeparture)

func ParseAirportType(s string) (AirportType, error) { return airportTypes.parse(s) }

// DayType selects the travel day a date condition applies to.
type DayType string

const (
	DayCheckIn  DayType = "CheckIn"
	DayCheckOut DayType = "CheckOut"
	DayStay     DayType = "Stay"
)

var dayTypes = newVocabulary("DayType", DayCheckIn, DayCheckOut, DayStay)

func ParseDayType(s string) (DayType, error) { return dayTypes.parse(s) }

// DayAllocation selects the days of a stay a tag condition is evaluated on.
type DayAllocation string

const (
	DayAllocationAll   DayAllocation = "All"
	DayAllocationFirst DayAllocation = "First"
	DayAllocationLast  DayAllocation = "Last"
)

var dayAllocations = newVocabulary("DayAllocation", DayAllocationAll, DayAllocationFirst, DayAllocationLast)

func ParseDayAllocation(s string) (DayAllocation, error) { return dayAllocations.parse(s) }

// EvaluationMode decides whether any or all evaluated days must match.
type EvaluationMode string

const (
	EvaluationAny EvaluationMode = "Any"
	EvaluationAll EvaluationMode = "All"
)

var evaluationModes = newVocabulary("EvaluationMode", EvaluationAny, EvaluationAll)

func ParseEvaluationMode(s string) (EvaluationMode, error) { return evaluationModes.parse(s) }

// MatchElement names the element compared by a MatchEqual Element operand.
type MatchElement string

const (
	MatchCatchmentAirport MatchElement = "CatchmentAirport"
	MatchDepartureAirport MatchElement = "DepartureAirport"
	MatchArrivalAirport   MatchElement = "ArrivalAirport"
)

var matchElements = newVocabulary("MatchElement", MatchCatchmentAirport, MatchDepartureAirport, MatchArrivalAirport)

func ParseMatchElement(s string) (MatchElement, error) { return matchElements.parse(s) }

// PersonGender is a traveller gender.
type PersonGender string

const (
	GenderMale      PersonGender = "Male"
	GenderFemale    PersonGender = "Female"
	GenderUndefined PersonGender = "Undefined"
)

var personGenders = newVocabulary("PersonGender", GenderMale, GenderFemale, GenderUndefined)

func ParsePersonGender(s string) (PersonGender, error) { return personGenders.parse(s) }

// Weekday is a day of the week as written in Weekdays conditions.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

var weekdays = newVocabulary("Weekday", Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday)

func ParseWeekday(s string) (Weekday, error) { return weekdays.parse(s) }

// DurationUnit is the unit of Duration bounds.
type DurationUnit string

const (
	UnitNights  DurationUnit = "Nights"
	UnitHours   DurationUnit = "Hours"
	UnitMinutes DurationUnit = "Minutes"
	UnitWeeks   DurationUnit = "Weeks"
)

var durationUnits = newVocabulary("DurationUnit", UnitNights, UnitHours, UnitMinutes, UnitWeeks)

func ParseDurationUnit(s string) (DurationUnit, error) { return durationUnits.parse(s) }

// DayIndexBound is the kind of one DayIndex entry.
type DayIndexBound string

const (
	DayIndexIndices DayIndexBound = "Indices"
	DayIndexFrom    DayIndexBound = "From"
	DayIndexUntil   DayIndexBound = "Until"
)

var dayIndexBounds = newVocabulary("DayIndex", DayIndexIndices, DayIndexFrom, DayIndexUntil)

func ParseDayIndexBound(s string) (DayIndexBound, error) { return dayIndexBounds.parse(s) }
