package vocab

// BookingGroupArea scopes a booking group.
type BookingGroupArea string

const (
	AreaGlobal  BookingGroupArea = "GlobalArea"
	AreaService BookingGroupArea = "ServiceArea"
	AreaPerson  BookingGroupArea = "PersonArea"
)

var bookingGroupAreas = newVocabulary("BookingGroupArea", AreaGlobal, AreaService, AreaPerson)

func ParseBookingGroupArea(s string) (BookingGroupArea, error) { return bookingGroupAreas.parse(s) }

// EvaluationBase is the unit over which booking parameters are evaluated.
type EvaluationBase string

const (
	BasePersonDay EvaluationBase = "Person Day"
	BasePerson    EvaluationBase = "Person"
	BaseDay       EvaluationBase = "Day"
)

var evaluationBases = newVocabulary("EvaluationBase", BasePersonDay, BasePerson, BaseDay)

func ParseEvaluationBase(s string) (EvaluationBase, error) { return evaluationBases.parse(s) }

// Field is a booking-string field.
type Field string

const (
	FieldTitle              Field = "Title"
	FieldBrandCode          Field = "BrandCode"
	FieldTravelType         Field = "TravelType"
	FieldRequestCode        Field = "RequestCode"
	FieldServiceCode        Field = "ServiceCode"
	FieldServiceFeatureCode Field = "ServiceFeatureCode"
	FieldBoardCode          Field = "BoardCode"
	FieldAssignment         Field = "Assignment"
	FieldDateStart          Field = "DateStart"
	FieldDateEnd            Field = "DateEnd"
	FieldAge                Field = "Age"
)

var fields = newVocabulary("Field",
	FieldTitle, FieldBrandCode, FieldTravelType, FieldRequestCode, FieldServiceCode,
	FieldServiceFeatureCode, FieldBoardCode, FieldAssignment, FieldDateStart, FieldDateEnd, FieldAge,
)

func ParseField(s string) (Field, error) { return fields.parse(s) }

// DateFormat is the picture string used to render dates into booking strings.
type DateFormat string

const (
	DateDotted DateFormat = "[D01].[M01].[Y0001]"
	DateShort  DateFormat = "[D01][M01][Y01]"
	DateDay    DateFormat = "[D01][M01]"
	DateISO    DateFormat = "[Y0001]-[M01]-[D01]"
	DateLong   DateFormat = "[D01][M01][Y0001]"
)

var dateFormats = newVocabulary("DateFormat", DateDotted, DateShort, DateDay, DateISO, DateLong)

func ParseDateFormat(s string) (DateFormat, error) { return dateFormats.parse(s) }

// AgeType selects how a traveller age is computed.
type AgeType string

const (
	AgeDateOfBirth AgeType = "DateOfBirth"
	AgeTravel      AgeType = "TravelAge"
	AgeBooking     AgeType = "BookingAge"
)

var ageTypes = newVocabulary("AgeType", AgeDateOfBirth, AgeTravel, AgeBooking)

func ParseAgeType(s string) (AgeType, error) { return ageTypes.parse(s) }
