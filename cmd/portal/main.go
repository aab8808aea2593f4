package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appattendance "github.com/queenify/attendance-portal/internal/application/attendance"
	"github.com/queenify/attendance-portal/internal/application/session"
	infraattendance "github.com/queenify/attendance-portal/internal/infrastructure/attendance"
	infraidentity "github.com/queenify/attendance-portal/internal/infrastructure/identity"
	"github.com/queenify/attendance-portal/internal/infrastructure/report"
	"github.com/queenify/attendance-portal/internal/infrastructure/sessionstore"
	httpRouter "github.com/queenify/attendance-portal/internal/interfaces/http"
	"github.com/queenify/attendance-portal/pkg/config"
	"github.com/queenify/attendance-portal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting portal")

	store, err := sessionstore.Open(cfg.Session.StorePath, cfg.Session.Secret)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Session.StorePath).Msg("open session store")
	}
	defer store.Close()

	identityClient := infraidentity.NewClient(cfg.Identity.BaseURL, cfg.Identity.Timeout)
	attendanceClient := infraattendance.NewClient(cfg.Attendance.BaseURL, cfg.Attendance.Timeout)

	sessions := session.NewManager(identityClient, store, log)

	// Restore must complete before any gate decision is final, so it runs
	// before the server starts listening.
	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 5*time.Second)
	sessions.Restore(restoreCtx)
	cancelRestore()

	attendanceUC := appattendance.NewUseCase(
		attendanceClient, identityClient, sessions,
		report.NewMarotoGenerator(), log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:   sessions,
		Attendance: attendanceUC,
		Log:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("portal stopped")
}
