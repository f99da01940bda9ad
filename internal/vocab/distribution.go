package vocab

// DistributionChannel is a sales platform targeted by a global value.
type DistributionChannel string

const (
	ChannelBewotec        DistributionChannel = "Bewotec"
	ChannelCheck24        DistributionChannel = "Check24"
	ChannelPeakwork       DistributionChannel = "Peakwork"
	ChannelTravelTainment DistributionChannel = "TravelTainment"
	ChannelTraffics       DistributionChannel = "Traffics"
	ChannelSchmetterling  DistributionChannel = "Schmetterling"
)

var distributionChannels = newVocabulary("DistributionChannel",
	ChannelBewotec, ChannelCheck24, ChannelPeakwork, ChannelTravelTainment,
	ChannelTraffics, ChannelSchmetterling,
)

func ParseDistributionChannel(s string) (DistributionChannel, error) {
	return distributionChannels.parse(s)
}

// SalesChannel is the way travel is sold.
type SalesChannel string

const (
	SalesOnlineTravelAgency SalesChannel = "OnlineTravelAgency"
	SalesTravelAgency       SalesChannel = "TravelAgency"
	SalesIntern             SalesChannel = "Intern"
)

var salesChannels = newVocabulary("SalesChannel", SalesOnlineTravelAgency, SalesTravelAgency, SalesIntern)

func ParseSalesChannel(s string) (SalesChannel, error) { return salesChannels.parse(s) }

// CrsSystem is a reservation system identifying a distributor.
type CrsSystem string

const (
	CrsMerlin CrsSystem = "Merlin"
	CrsToma   CrsSystem = "Toma"
)

var crsSystems = newVocabulary("CrsSystem", CrsMerlin, CrsToma)

func ParseCrsSystem(s string) (CrsSystem, error) { return crsSystems.parse(s) }
