// Command bestday evaluates the departure window once and prints the result.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/i474232898/travel-checker/internal/app"
	"github.com/i474232898/travel-checker/internal/config"
	"github.com/i474232898/travel-checker/internal/planner"
)

// parseWeightFlags overlays the weight flags in args on base and validates the result.
func parseWeightFlags(fs *flag.FlagSet, args []string, base planner.Weights) (planner.Weights, error) {
	w := base
	fs.Float64Var(&w.Flight, "flight-weight", w.Flight, "weight of the airfare points")
	fs.Float64Var(&w.Cold, "cold-weight", w.Cold, "weight of the origin cold points")
	fs.Float64Var(&w.Destination, "destination-weight", w.Destination, "weight of the destination weather points")
	fs.Float64Var(&w.Snow, "snow-weight", w.Snow, "weight of the snow points and extra snow bonus")
	fs.Float64Var(&w.BeforeSevere, "before-severe-weight", w.BeforeSevere, "weight of the leave-before-severe-weather bonus")
	if err := fs.Parse(args); err != nil {
		return w, err
	}
	if err := w.Validate(); err != nil {
		return w, err
	}
	return w, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	w, err := parseWeightFlags(flag.CommandLine, os.Args[1:], cfg.Weights)
	if err != nil {
		log.Fatalf("invalid weights: %v", err)
	}

	plan, err := app.NewPlanner(cfg)
	if err != nil {
		log.Fatalf("failed to wire planner: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	res, err := plan.FindBestDay(ctx, w)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	if err := writeReport(os.Stdout, plan.Route(), res); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
}
