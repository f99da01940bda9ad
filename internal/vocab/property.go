package vocab

type AccommodationType string

const AccommodationHotel AccommodationType = "Hotel"

var accommodationTypes = newVocabulary("AccommodationType", AccommodationHotel)

func ParseAccommodationType(s string) (AccommodationType, error) { return accommodationTypes.parse(s) }

type BoardType string

const (
	BoardNone              BoardType = "None"
	BoardSelfCatering      BoardType = "SelfCatering"
	BoardBreakfast         BoardType = "Breakfast"
	BoardHalfBoard         BoardType = "HalfBoard"
	BoardHalfBoardPlus     BoardType = "HalfBoardPlus"
	BoardFullBoard         BoardType = "FullBoard"
	BoardFullBoardPlus     BoardType = "FullBoardPlus"
	BoardAllInclusive      BoardType = "AllInclusive"
	BoardAllInclusivePlus  BoardType = "AllInclusivePlus"
	BoardAllInclusiveLight BoardType = "AllInclusiveLight"
)

var boardTypes = newVocabulary("BoardType",
	BoardNone, BoardSelfCatering, BoardBreakfast, BoardHalfBoard, BoardHalfBoardPlus,
	BoardFullBoard, BoardFullBoardPlus, BoardAllInclusive, BoardAllInclusivePlus, BoardAllInclusiveLight,
)

func ParseBoardType(s string) (BoardType, error) { return boardTypes.parse(s) }

type GeneralIncludedService string

var includedServices = newVocabulary[GeneralIncludedService]("GeneralIncludedService",
	"Transfer", "CheckInTransfer", "CheckOutTransfer", "GolfArrangement", "CarRental",
	"WellnessArrangement", "SportsArrangement", "Skipass", "TourArrangement", "HotelServices",
	"GuidedTour", "OtherServices", "None", "Parking", "CookService", "LaundryService",
	"RollService", "CleaningService", "FinalCleanUp", "RailAndFly", "SkiLessons",
	"SnowboardLessons", "FreeCancellation", "FreeRebooking", "FreeCancellationWithFee",
	"FreeRebookingWithFee", "PrivateTransfer",
)

func ParseGeneralIncludedService(s string) (GeneralIncludedService, error) {
	return includedServices.parse(s)
}

type OptionalBookableAddonType string

var addonTypes = newVocabulary[OptionalBookableAddonType]("OptionalBookableAddonType",
	"TransferOptions", "GolfArrangements", "CarRentalOptions", "WellnessArrangements",
	"SportsArrangements", "SkipassOptions", "TourArrangements", "GuidedTours", "ParkingOptions",
	"RailAndFlyOptions", "SkiLessons", "SnowboardLessons", "FlexibleCancellationOptions",
)

func ParseOptionalBookableAddonType(s string) (OptionalBookableAddonType, error) {
	return addonTypes.parse(s)
}

type UnitFacility string

var unitFacilities = newVocabulary[UnitFacility]("UnitFacilities",
	"Airconditioning", "Balcony", "BalconyTerrace", "Basement", "BathShower", "BathOnFloor",
	"BathToiletteInCorridor", "BathTub", "CentralHeating", "ChargedHeating", "CityView", "Deluxe",
	"Dishwasher", "Duplex", "Family", "Fireplace", "FloorHeating", "Freezer", "GardenView",
	"GroundFloor", "Hairdryer", "HandicappedAccessible", "HourlyHeating", "InnercourtView", "Iron",
	"Kitchen", "Kitchenette", "LandView", "LakeView", "LaundryDryer", "Loft", "Maisonette",
	"Minibar", "MoreSeparateBedrooms", "NonSmokerRoom", "PetsAllowed", "PetsProhibited",
	"PoolView", "PremiumSuperior", "PremiumView", "PrivatePool", "PrivateSauna",
	"PrivateSolarium", "PrivateTennisCourt", "PrivateWhirlpool", "RoofedTerrace", "RoomSafe",
	"SatTV", "SeaView", "SeaViewSideSeaView", "SeparateBedroom", "SharedBathRoom",
	"SharedToilette", "ShortenedSeaView", "Shower", "SideSeaView", "StreetView", "Terrace", "TV",
	"TwoBedroomsWithConnectingDoor", "UpperFloor", "ValleyView", "Veranda", "WashingMachine",
	"Budget", "DirectSharedPoolAccess", "PrivateToilette", "Fridge",
)

func ParseUnitFacility(s string) (UnitFacility, error) { return unitFacilities.parse(s) }

type UnitType string

var unitTypes = newVocabulary[UnitType]("UnitType",
	"Single", "Double", "Apartment", "Studio", "Bungalow", "Triple", "Suite", "Other", "Family",
	"Villa", "HolidayHome", "SemidetachedHouse", "Quad", "SingleWithChild", "MobileHome", "Tent",
	"JuniorSuite", "HolidayFlat",
)

func ParseUnitType(s string) (UnitType, error) { return unitTypes.parse(s) }

// AccommodationTargetgroup is an audience an accommodation is marketed to.
type AccommodationTargetgroup string

var targetGroups = newVocabulary[AccommodationTargetgroup]("AccommodationTargetgroup",
	"Family", "Couple", "Single", "Senior", "Youth", "AdultsOnly", "Wellness", "Golf", "Beach",
	"City", "Ski", "Hiking", "Cycling", "Diving", "Culture", "Business", "Nature", "Party",
)

func ParseAccommodationTargetgroup(s string) (AccommodationTargetgroup, error) {
	return targetGroups.parse(s)
}

// BaggageType distinguishes checked luggage from cabin luggage.
type BaggageType string

const (
	BaggageChecked BaggageType = "Checked"
	BaggageHand    BaggageType = "Hand"
)

var baggageTypes = newVocabulary("BaggageType", BaggageChecked, BaggageHand)

func ParseBaggageType(s string) (BaggageType, error) { return baggageTypes.parse(s) }
