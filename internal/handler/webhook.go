package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"dodo-storefront-demo/internal/webhook"
)

type WebhookHandler struct {
	verifier   webhook.Verifier
	dispatcher *webhook.Dispatcher
	logger     zerolog.Logger
}

func NewWebhookHandler(verifier webhook.Verifier, dispatcher *webhook.Dispatcher, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifier:   verifier,
		dispatcher: dispatcher,
		logger:     logger.With().Str("component", "webhook_handler").Logger(),
	}
}

// Handle verifies the delivery signature against the raw body before any
// parsing, then hands the payload to the dispatcher.
func (h *WebhookHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	if err := h.verifier.Verify(body, c.Request().Header); err != nil {
		h.logger.Warn().Err(err).Msg("webhook signature verification failed")
		return c.NoContent(http.StatusUnauthorized)
	}

	if err := h.dispatcher.Dispatch(ctx, body); err != nil {
		return fmt.Errorf("handle webhook: %w", err)
	}

	return c.NoContent(http.StatusOK)
}
