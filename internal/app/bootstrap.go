package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"talenthub/internal/config"
	"talenthub/internal/delivery/http/handler"
	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/delivery/http/routes"
	ucauth "talenthub/internal/usecase/auth"
	"talenthub/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c := NewContainer(cfg, logger)

	go c.Hub.Run()

	// The initial catalog fetch runs in the background; readiness flips
	// once it resolves or fails.
	go c.Store.Load(context.Background())

	authSvc := ucauth.NewService(c.Users, c.JWT, c.Sessions, cfg.JWT.RefreshExpiresIn)

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	registerGlobalMiddleware(f, c.Logger)

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.Store),
		handler.NewJobsHandler(c.Store),
		handler.NewApplicationsHandler(c.Store, c.Users),
		handler.NewAccessHandler(c.Store, c.Users),
		handler.NewAuthHandler(authSvc),
		handler.NewProfileHandler(c.Store),
		ws.NewHandler(c.Hub, c.Logger),
		middleware.NewAuthMiddleware(c.JWT),
	)
	registry.Register(f)

	app := &App{Fiber: f, Container: c}
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware().Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
