package flights

import "time"

// MaxOffers is the number of cheapest qualifying offers returned per date.
const MaxOffers = 3

// FlightOffer is one priced one-way itinerary, described by its first segment.
type FlightOffer struct {
	Price         float64   `json:"price"`
	CarrierCode   string    `json:"carrierCode"`
	Carrier       string    `json:"carrier"`
	FlightNumber  string    `json:"flightNumber"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
}

// Segment is one leg of an itinerary as returned by the offer search.
type Segment struct {
	CarrierCode string
	Number      string
	Departure   time.Time
	Arrival     time.Time
}

var carrierNames = map[string]string{
	"DL": "Delta Air Lines",
	"AA": "American Airlines",
	"UA": "United Airlines",
	"WN": "Southwest Airlines",
	"AS": "Alaska Airlines",
	"B6": "JetBlue Airways",
	"NK": "Spirit Airlines",
	"SY": "Sun Country",
}

// CarrierName returns the display name for an IATA carrier code, or the code
// itself when unknown.
func CarrierName(code string) string {
	if name, ok := carrierNames[code]; ok {
		return name
	}
	return code
}
