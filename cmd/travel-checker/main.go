package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/travel-checker/internal/api/http"
	"github.com/i474232898/travel-checker/internal/app"
	"github.com/i474232898/travel-checker/internal/config"
	"github.com/i474232898/travel-checker/internal/planner"
	"github.com/i474232898/travel-checker/internal/scheduler"
	"github.com/i474232898/travel-checker/internal/store"
)

func main() {
	// Load configuration (.env included).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	plan, err := app.NewPlanner(cfg)
	if err != nil {
		log.Fatalf("failed to wire planner: %v", err)
	}

	runs, closeRuns, err := openRunStore(cfg)
	if err != nil {
		log.Fatalf("failed to open run store: %v", err)
	}
	defer closeRuns()

	// Scheduler that periodically evaluates the window and records the run.
	sched := scheduler.New(plan, runs, scheduler.Options{
		Interval:       cfg.FetchInterval,
		Timeout:        cfg.RequestTimeout,
		AlertThreshold: cfg.AlertThreshold,
		Weights:        cfg.Weights,
	})
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration. The write timeout must outlive one computation.
	fiberApp := fiber.New(fiber.Config{
		AppName:               "travel-checker",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.RequestTimeout + 10*time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	fiberApp.Use(logger.New())
	fiberApp.Use(recover.New())

	// Basic health endpoint
	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "travel-checker",
			"route":   plan.Route(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(fiberApp, httpapi.API{
		Planner: plan,
		Runs:    runs,
		Weights: cfg.Weights,
		Timeout: cfg.RequestTimeout,
	})

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := fiberApp.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

// openRunStore returns the configured run history and a function releasing it.
func openRunStore(cfg *config.AppConfig) (planner.RunStore, func(), error) {
	if cfg.StoreDriver == "sqlite" {
		s, err := store.NewSQLiteStore(cfg.StorePath, cfg.StoreMaxHistory, cfg.StoreMaxAge)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("INFO: run history stored in %s", cfg.StorePath)
		return s, func() {
			if err := s.Close(); err != nil {
				log.Printf("error closing run store: %v", err)
			}
		}, nil
	}
	return store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge), func() {}, nil
}
