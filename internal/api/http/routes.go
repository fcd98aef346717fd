package httpapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/travel-checker/internal/planner"
	"github.com/i474232898/travel-checker/internal/store"
	"github.com/i474232898/travel-checker/internal/weather"
)

var validate = validator.New()

// BestDayFinder evaluates the departure window.
type BestDayFinder interface {
	FindBestDay(ctx context.Context, w planner.Weights) (*planner.BestDayResult, error)
}

// API bundles the dependencies of the HTTP handlers.
type API struct {
	Planner BestDayFinder
	Runs    planner.RunStore
	// Weights apply when a request does not override them.
	Weights planner.Weights
	// Timeout bounds one best-day computation.
	Timeout time.Duration
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, api API) {
	if api.Timeout <= 0 {
		api.Timeout = 90 * time.Second
	}

	v1 := app.Group("/api/v1")
	v1.Get("/bestday", api.bestDay)
	v1.Get("/runs/latest", api.latestRun)
	v1.Get("/runs", api.runHistory)
	v1.Post("/subscribe", subscribe)

	// Unversioned paths kept for the web frontend.
	app.Get("/api/bestday", api.bestDay)
	app.Post("/api/subscribe", subscribe)
}

func (api API) bestDay(c *fiber.Ctx) error {
	w, err := parseWeights(c, api.Weights)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), api.Timeout)
	defer cancel()

	res, err := api.Planner.FindBestDay(ctx, w)
	if err != nil {
		switch {
		case errors.Is(err, weather.ErrUnavailable):
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		case errors.Is(err, context.DeadlineExceeded):
			return fiber.NewError(fiber.StatusGatewayTimeout, "best day computation timed out")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "failed to compute best day")
		}
	}

	return c.JSON(res)
}

func (api API) latestRun(c *fiber.Ctx) error {
	run, err := api.Runs.Latest()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no best-day runs recorded yet")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch latest run")
	}
	return c.JSON(run)
}

func (api API) runHistory(c *fiber.Ctx) error {
	var req historyQuery
	if err := req.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	runs, err := api.Runs.Range(req.From, req.To)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no best-day runs for requested range")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch run history")
	}

	return c.JSON(fiber.Map{
		"from": req.From,
		"to":   req.To,
		"runs": runs,
	})
}

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// subscribe acknowledges an email subscription. Subscribers are not stored.
func subscribe(c *fiber.Ctx) error {
	var req subscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{
		"id":      uuid.NewString(),
		"message": fmt.Sprintf("Email %s subscribed. Persistence not implemented.", req.Email),
	})
}

// parseWeights overlays any weight query parameters on the defaults.
func parseWeights(c *fiber.Ctx, defaults planner.Weights) (planner.Weights, error) {
	w := defaults
	params := []struct {
		name string
		dst  *float64
	}{
		{"flightWeight", &w.Flight},
		{"coldWeight", &w.Cold},
		{"destinationWeight", &w.Destination},
		{"snowWeight", &w.Snow},
		{"beforeSevereWeight", &w.BeforeSevere},
	}

	for _, p := range params {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return w, fmt.Errorf("invalid %s: %q is not a number", p.name, raw)
		}
		*p.dst = v
	}

	if err := w.Validate(); err != nil {
		return w, err
	}
	return w, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
