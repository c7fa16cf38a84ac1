package server

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"dodo-storefront-demo/internal/handler"
	"dodo-storefront-demo/internal/service"
	"dodo-storefront-demo/internal/webhook"
)

type Server struct {
	echo              *echo.Echo
	storefrontHandler *handler.StorefrontHandler
	userHandler       *handler.UserHandler
	webhookHandler    *handler.WebhookHandler
}

func NewServer(
	storefrontService service.StorefrontService,
	verifier webhook.Verifier,
	dispatcher *webhook.Dispatcher,
	logger zerolog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = handler.NewRenderer()

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Err(v.Error).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:              e,
		storefrontHandler: handler.NewStorefrontHandler(storefrontService),
		userHandler:       handler.NewUserHandler(storefrontService),
		webhookHandler:    handler.NewWebhookHandler(verifier, dispatcher, logger),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/", s.storefrontHandler.Home)
	s.echo.GET("/checkout/:productID", s.storefrontHandler.Checkout)
	s.echo.GET("/success", s.storefrontHandler.Success)

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.GET("/user/:email", s.userHandler.GetUserAccess)
	api.GET("/user/:email/access", s.userHandler.GetUserAccess)

	api.POST("/webhook", s.webhookHandler.Handle)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
