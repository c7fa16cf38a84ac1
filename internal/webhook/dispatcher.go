// Package webhook turns verified Dodo Payments deliveries into entitlement
// store mutations. No retry or ordering logic lives here; redelivery is the
// provider's job.
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"dodo-storefront-demo/internal/model"
	"dodo-storefront-demo/internal/store"
)

// Dispatcher maps event kinds to store mutators. Unknown kinds and events
// without a customer email are logged and acknowledged, never errors.
type Dispatcher struct {
	entitlements store.EntitlementStore
	logger       zerolog.Logger
}

func NewDispatcher(entitlements store.EntitlementStore, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		entitlements: entitlements,
		logger:       logger.With().Str("component", "webhook").Logger(),
	}
}

// Dispatch decodes an already-verified payload and applies it.
func (d *Dispatcher) Dispatch(ctx context.Context, body []byte) error {
	var event model.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode webhook payload: %w", err)
	}

	switch event.Type {
	case model.EventPaymentSucceeded:
		return d.handlePaymentSucceeded(ctx, &event)
	case model.EventSubscriptionActive:
		return d.handleSubscriptionActive(ctx, &event)
	case model.EventSubscriptionRenewed:
		return d.handleSubscriptionRenewed(ctx, &event)
	case model.EventSubscriptionCancelled:
		return d.handleSubscriptionCancelled(ctx, &event)
	case model.EventSubscriptionFailed:
		return d.handleSubscriptionFailed(ctx, &event)
	default:
		d.logger.Debug().Str("type", event.Type).Msg("unhandled webhook event")
		return nil
	}
}

func (d *Dispatcher) handlePaymentSucceeded(ctx context.Context, event *model.WebhookEvent) error {
	payload, err := event.Payment()
	if err != nil {
		return fmt.Errorf("decode payment payload: %w", err)
	}

	email := payload.Customer.Email
	if email == "" {
		d.logger.Warn().Str("payment_id", payload.PaymentID).Msg("payment event without customer email, dropped")
		return nil
	}

	d.logger.Info().
		Str("payment_id", payload.PaymentID).
		Str("product_id", payload.ProductID).
		Str("email", email).
		Int64("amount", payload.TotalAmount).
		Msg("payment succeeded, granting product access")

	return d.entitlements.RecordPurchase(ctx, &model.PurchaseRecord{
		Email:       email,
		PaymentID:   payload.PaymentID,
		ProductID:   payload.ProductID,
		PurchasedAt: time.Now(),
		Amount:      payload.TotalAmount,
		Currency:    payload.Currency,
	})
}

func (d *Dispatcher) handleSubscriptionActive(ctx context.Context, event *model.WebhookEvent) error {
	payload, err := event.Subscription()
	if err != nil {
		return fmt.Errorf("decode subscription payload: %w", err)
	}

	email := payload.Customer.Email
	if email == "" {
		d.logger.Warn().Str("subscription_id", payload.SubscriptionID).Msg("subscription event without customer email, dropped")
		return nil
	}

	d.logger.Info().
		Str("subscription_id", payload.SubscriptionID).
		Str("product_id", payload.ProductID).
		Str("email", email).
		Msg("subscription activated")

	return d.entitlements.ActivateSubscription(ctx, &model.SubscriptionRecord{
		Email:           email,
		SubscriptionID:  payload.SubscriptionID,
		ProductID:       payload.ProductID,
		Status:          model.SubscriptionActive,
		NextBillingDate: payload.NextBillingDate,
		ActivatedAt:     time.Now(),
		RecurringAmount: payload.RecurringPreTaxAmount,
	})
}

func (d *Dispatcher) handleSubscriptionRenewed(ctx context.Context, event *model.WebhookEvent) error {
	payload, err := event.Subscription()
	if err != nil {
		return fmt.Errorf("decode subscription payload: %w", err)
	}

	email := payload.Customer.Email
	if email == "" {
		d.logger.Warn().Str("subscription_id", payload.SubscriptionID).Msg("subscription event without customer email, dropped")
		return nil
	}

	d.logger.Info().
		Str("subscription_id", payload.SubscriptionID).
		Str("email", email).
		Time("next_billing_date", payload.NextBillingDate).
		Msg("subscription renewed")

	return d.entitlements.RenewSubscription(ctx, email, payload.NextBillingDate)
}

func (d *Dispatcher) handleSubscriptionCancelled(ctx context.Context, event *model.WebhookEvent) error {
	payload, err := event.Subscription()
	if err != nil {
		return fmt.Errorf("decode subscription payload: %w", err)
	}

	email := payload.Customer.Email
	if email == "" {
		d.logger.Warn().Str("subscription_id", payload.SubscriptionID).Msg("subscription event without customer email, dropped")
		return nil
	}

	d.logger.Info().
		Str("subscription_id", payload.SubscriptionID).
		Str("email", email).
		Msg("subscription cancelled")

	return d.entitlements.MarkSubscriptionCancelled(ctx, email)
}

func (d *Dispatcher) handleSubscriptionFailed(ctx context.Context, event *model.WebhookEvent) error {
	payload, err := event.Subscription()
	if err != nil {
		return fmt.Errorf("decode subscription payload: %w", err)
	}

	email := payload.Customer.Email
	if email == "" {
		d.logger.Warn().Str("subscription_id", payload.SubscriptionID).Msg("subscription event without customer email, dropped")
		return nil
	}

	d.logger.Warn().
		Str("subscription_id", payload.SubscriptionID).
		Str("email", email).
		Str("reason", payload.FailureReason).
		Msg("subscription failed")

	return d.entitlements.MarkSubscriptionFailed(ctx, email, payload.FailureReason)
}
