package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/i474232898/travel-checker/internal/planner"
)

const dateLayout = "January 2, 2006"

type breakdownLine struct {
	label  string
	points float64
}

// breakdownLines lists the airfare and total always, other components only
// when they contributed.
func breakdownLines(r planner.Route, d planner.DayScore) []breakdownLine {
	b := d.Breakdown
	lines := []breakdownLine{{"Airfare Value", b.FlightPoints}}

	optional := []breakdownLine{
		{r.OriginCity + " Cold Weather Bonus", b.ColdPoints},
		{r.DestinationCity + " Weather Bonus", b.VegasPoints},
		{"Snow Event Adjustment", b.SnowPoints},
		{"Extra Snowy Days Bonus", b.ExtraSnowPoints},
		{"Severe Weather Bonus", b.SevereBonus},
	}
	for _, l := range optional {
		if l.points > 0 {
			lines = append(lines, l)
		}
	}

	return append(lines, breakdownLine{"Total Score", d.Score})
}

func writeReport(out io.Writer, r planner.Route, res *planner.BestDayResult) error {
	best := res.BestDay
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Best day to fly %s → %s: %s\n\n", r.OriginAirport, r.DestinationAirport, best.Date.Format(dateLayout))
	for _, msg := range res.Alerts {
		fmt.Fprintf(tw, "! %s\n", msg)
	}
	if len(res.Alerts) > 0 {
		fmt.Fprintln(tw)
	}

	for _, l := range breakdownLines(r, best) {
		fmt.Fprintf(tw, "%s:\t%.2f\n", l.label, l.points)
	}

	fmt.Fprintf(tw, "\nFlight Price:\t%s\n", best.FlightPrice)
	if f := best.FlightDetails; f != nil {
		fmt.Fprintf(tw, "Airline:\t%s\n", f.Carrier)
		fmt.Fprintf(tw, "Flight #:\t%s\n", f.FlightNumber)
		fmt.Fprintf(tw, "Departs:\t%s\n", f.DepartureTime.Format("Jan 2 3:04 PM MST"))
		fmt.Fprintf(tw, "Arrives:\t%s\n", f.ArrivalTime.Format("Jan 2 3:04 PM MST"))
	}
	for _, alt := range best.AlternativeFlights {
		fmt.Fprintf(tw, "Alternative:\t$%.2f %s #%s departs %s\n",
			alt.Price, alt.Carrier, alt.FlightNumber, alt.DepartureTime.Format("3:04 PM"))
	}
	fmt.Fprintf(tw, "Search:\t%s\n\n", best.FlightSearchURL)

	fmt.Fprintln(tw, "Date\tScore\tFare")
	for _, d := range res.DayScores {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\n", d.Date.Format("Mon 01/02"), d.Score, d.FlightPrice)
	}

	return tw.Flush()
}
