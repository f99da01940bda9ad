package vocab

// ProductType classifies a product.
type ProductType string

const (
	ProductAccommodationOnly   ProductType = "AccommodationOnly"
	ProductOnewayFlightOnly    ProductType = "OnewayFlightOnly"
	ProductReturnFlightOnly    ProductType = "ReturnFlightOnly"
	ProductFlightAccommodation ProductType = "FlightAccommodation"
	ProductAddon               ProductType = "Addon"
)

var productTypes = newVocabulary("ProductType",
	ProductAccommodationOnly, ProductOnewayFlightOnly, ProductReturnFlightOnly,
	ProductFlightAccommodation, ProductAddon,
)

func ParseProductType(s string) (ProductType, error) { return productTypes.parse(s) }

// ProductTypes lists every product type in declaration order.
func ProductTypes() []ProductType { return productTypes.list() }

// Role is the part a component plays inside a product.
type Role string

const (
	RoleReturnFlight         Role = "ReturnFlight"
	RoleOnewayFlight         Role = "OnewayFlight"
	RoleOutbound             Role = "Outbound"
	RoleInbound              Role = "Inbound"
	RoleAccommodation        Role = "Accommodation"
	RoleAddon                Role = "Addon"
	RoleAccommodationWrapper Role = "AccommodationWrapper"
	RoleFlightWrapper        Role = "FlightWrapper"
	RoleAddonWrapper         Role = "AddonWrapper"
)

var roles = newVocabulary("Role",
	RoleReturnFlight, RoleOnewayFlight, RoleOutbound, RoleInbound, RoleAccommodation,
	RoleAddon, RoleAccommodationWrapper, RoleFlightWrapper, RoleAddonWrapper,
)

func ParseRole(s string) (Role, error) { return roles.parse(s) }

// DayAllocationPart distinguishes start and end rules.
type DayAllocationPart string

const (
	PartStart DayAllocationPart = "Start"
	PartEnd   DayAllocationPart = "End"
)

// DayReference is the reference point of a day allocation rule.
type DayReference string

const (
	ReferenceCheckIn  DayReference = "CheckIn"
	ReferenceCheckOut DayReference = "CheckOut"
)

var dayReferences = newVocabulary("DayReference", ReferenceCheckIn, ReferenceCheckOut)

func ParseDayReference(s string) (DayReference, error) { return dayReferences.parse(s) }

// Shift governs how a component span moves relative to its neighbour.
type Shift string

const (
	ShiftNone     Shift = "None"
	ShiftAuto     Shift = "Auto"
	ShiftExternal Shift = "External"
)

var shifts = newVocabulary("Shift", ShiftNone, ShiftAuto, ShiftExternal)

func ParseShift(s string) (Shift, error) { return shifts.parse(s) }

// ComponentAttribute names the neighbour a date correction refers to.
type ComponentAttribute string

const (
	ComponentPrevious ComponentAttribute = "Previous"
	ComponentNext     ComponentAttribute = "Next"
)

var componentAttributes = newVocabulary("ComponentAttribute", ComponentPrevious, ComponentNext)

func ParseComponentAttribute(s string) (ComponentAttribute, error) {
	return componentAttributes.parse(s)
}

// AvailabilityState is the admitted state of an explicit check-in or check-out.
type AvailabilityState string

const (
	AvailabilityOpen    AvailabilityState = "Open"
	AvailabilityRequest AvailabilityState = "Request"
)

var availabilityStates = newVocabulary("AvailabilityState", AvailabilityOpen, AvailabilityRequest)

func ParseAvailabilityState(s string) (AvailabilityState, error) { return availabilityStates.parse(s) }
