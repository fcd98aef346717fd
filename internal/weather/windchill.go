package weather

import "math"

// Windchill applies the NWS windchill formula when it is defined
// (temperature at or below 50°F with wind of at least 3 mph) and returns
// the temperature unchanged otherwise.
func Windchill(tempF, windMph float64) float64 {
	if tempF > 50 || windMph < 3 {
		return tempF
	}
	w := math.Pow(windMph, 0.16)
	return 35.74 + 0.6215*tempF - 35.75*w + 0.4275*tempF*w
}
