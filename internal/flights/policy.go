package flights

import "strings"

// DefaultCarriers are the major carriers accepted by DefaultPolicy.
var DefaultCarriers = []string{"DL", "AA", "UA", "WN", "AS", "B6", "NK"}

// Policy decides which itineraries qualify for scoring.
type Policy struct {
	NonStop bool
	// EarliestDepartureHour is compared with the first segment's local departure hour.
	EarliestDepartureHour int
	AllowedCarriers       []string
}

// DefaultPolicy accepts non-stop itineraries departing at 06:00 or later on a major carrier.
func DefaultPolicy() Policy {
	return Policy{
		NonStop:               true,
		EarliestDepartureHour: 6,
		AllowedCarriers:       DefaultCarriers,
	}
}

// Allows reports whether the itinerary qualifies.
func (p Policy) Allows(segments []Segment) bool {
	if len(segments) == 0 {
		return false
	}
	if p.NonStop && len(segments) > 1 {
		return false
	}
	if segments[0].Departure.Hour() < p.EarliestDepartureHour {
		return false
	}
	for _, seg := range segments {
		if p.allowsCarrier(seg.CarrierCode) {
			return true
		}
	}
	return false
}

func (p Policy) allowsCarrier(code string) bool {
	for _, c := range p.AllowedCarriers {
		if strings.EqualFold(strings.TrimSpace(c), code) {
			return true
		}
	}
	return false
}
