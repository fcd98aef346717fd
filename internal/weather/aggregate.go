package weather

// AggregateDays combines several providers' entries for the same calendar day.
// Numeric fields are averaged; the condition is selected by majority, ties going
// to the earliest reading. The icon follows the first reading.
func AggregateDays(readings []DayWeather) DayWeather {
	if len(readings) == 0 {
		return DayWeather{Condition: ConditionUnknown}
	}
	if len(readings) == 1 {
		return readings[0]
	}

	var (
		sumTemp float64
		sumSnow float64
		sumRain float64
		sumWind float64
	)

	conditionCounts := make(map[string]int)
	for _, r := range readings {
		sumTemp += r.Temp
		sumSnow += r.Snow
		sumRain += r.Rain
		sumWind += r.WindSpeed

		conditionCounts[r.Condition]++
	}

	n := float64(len(readings))

	// Walk readings in order so ties resolve deterministically.
	bestCond := readings[0].Condition
	bestCount := 0
	for _, r := range readings {
		if count := conditionCounts[r.Condition]; count > bestCount {
			bestCount = count
			bestCond = r.Condition
		}
	}

	return DayWeather{
		Date:      readings[0].Date,
		Temp:      sumTemp / n,
		Condition: bestCond,
		Snow:      sumSnow / n,
		Rain:      sumRain / n,
		WindSpeed: sumWind / n,
		Icon:      readings[0].Icon,
	}
}
