package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rowanherne/morrow/internal/api"
	"github.com/rowanherne/morrow/internal/config"
	"github.com/rowanherne/morrow/internal/db"
	"github.com/rowanherne/morrow/internal/logger"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg := config.Load(*configFile)
	log := logger.Init(cfg.Log)

	location := mustLoadLocation(log, cfg.TZ)
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}

	handler := api.NewHandler(database, []byte(cfg.Auth.SecretKey), location, log)

	app := fiber.New(fiber.Config{
		AppName:               "Morrow",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	}()

	log.Info("morrow listening", "addr", cfg.Addr(), "db", cfg.DBPath, "tz", location.String())
	if err := app.Listen(cfg.Addr()); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func mustLoadLocation(log *slog.Logger, name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Warn("invalid TZ, falling back to UTC", "tz", name)
		return time.UTC
	}
	return location
}
