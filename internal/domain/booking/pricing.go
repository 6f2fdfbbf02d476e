package booking

const ServiceBasicHaircut = "Basic Haircut"

type Location string

const (
	LocationKK12         Location = "KK12"
	LocationKK11         Location = "KK11"
	LocationKK5          Location = "KK5"
	LocationOutsidePasum Location = "OUTSIDE PASUM"
)

type LocationInfo struct {
	Value Location `json:"value"`
	Label string   `json:"label"`
	Price float64  `json:"price"`
}

// locations is ordered for display; prices are copied onto bookings at creation.
var locations = []LocationInfo{
	{Value: LocationKK12, Label: "Kolej Kediaman 12 (KK12)", Price: 10.00},
	{Value: LocationKK11, Label: "Kolej Kediaman 11 (KK11)", Price: 12.00},
	{Value: LocationKK5, Label: "Kolej Kediaman 5 (KK5)", Price: 12.00},
	{Value: LocationOutsidePasum, Label: "Outside PASUM", Price: 15.00},
}

func Locations() []LocationInfo {
	out := make([]LocationInfo, len(locations))
	copy(out, locations)
	return out
}

// PriceFor returns the current price for a location.
func PriceFor(loc string) (float64, bool) {
	for _, l := range locations {
		if string(l.Value) == loc {
			return l.Price, true
		}
	}
	return 0, false
}
