package rest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	logger *slog.Logger
	app    *fiber.App
}

// NewServer wires the match API. The token endpoint is only mounted when issueTokens
// is set, for local development without an identity provider.
func NewServer(logger *slog.Logger, matches matchUseCase, features featureCatalog, auth authService, issueTokens bool) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "matchsync",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           30 * time.Second,
		ErrorHandler:          errorHandler(logger),
	})

	app.Use(recover.New())

	app.Get("/ping", NewPingHandler().Ping)
	app.Get("/features", NewFeatureHandler(features).List)

	if issueTokens {
		app.Post("/tokens", NewTokenHandler(auth).Issue)
	}

	handler := NewMatchHandler(logger, matches)

	group := app.Group("/matches", Authenticate(auth))
	group.Post("/", handler.CreateOrJoin)
	group.Get("/:id", handler.FetchState)
	group.Post("/:id/moves", handler.SubmitMove)
	group.Post("/:id/resources/:kind", handler.ConsumeResource)
	group.Post("/:id/reward", handler.AwardOnce)

	return &Server{
		logger: logger.With("component", "rest"),
		app:    app,
	}
}

func (that *Server) Start(port string) error {
	if err := that.app.Listen(":" + port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
