package service

import (
	"context"

	"github.com/rs/zerolog"

	"dodo-storefront-demo/internal/checkout"
	"dodo-storefront-demo/internal/client"
	"dodo-storefront-demo/internal/config"
	"dodo-storefront-demo/internal/model"
	"dodo-storefront-demo/internal/store"
)

// SuccessDetails is what the post-checkout landing page shows. Generic is
// the fallback branch: the provider lookup failed or nothing was asked for,
// so the page shows a "being processed" message instead of specifics.
type SuccessDetails struct {
	CustomerEmail string
	ProductID     string
	Subscription  bool
	Generic       bool
}

type StorefrontService interface {
	GetEntitlement(ctx context.Context, email string) (*model.EntitlementView, error)
	CheckoutURL(productID, email string) (string, error)
	DefaultProductID() string
	SuccessDetails(ctx context.Context, paymentID, subscriptionID string) *SuccessDetails
}

type storefrontServiceImpl struct {
	dodoClient   client.DodoClient
	entitlements store.EntitlementStore
	dodoCfg      *config.Dodo
	logger       zerolog.Logger
}

func NewStorefrontService(
	dodoClient client.DodoClient,
	entitlements store.EntitlementStore,
	dodoCfg *config.Dodo,
	logger zerolog.Logger,
) StorefrontService {
	return &storefrontServiceImpl{
		dodoClient:   dodoClient,
		entitlements: entitlements,
		dodoCfg:      dodoCfg,
		logger:       logger.With().Str("component", "storefront").Logger(),
	}
}

func (s *storefrontServiceImpl) GetEntitlement(ctx context.Context, email string) (*model.EntitlementView, error) {
	return s.entitlements.GetEntitlement(ctx, email)
}

func (s *storefrontServiceImpl) CheckoutURL(productID, email string) (string, error) {
	return checkout.BuildURL(productID, email, s.dodoCfg.Environment, s.dodoCfg.ReturnURL)
}

func (s *storefrontServiceImpl) DefaultProductID() string {
	return s.dodoCfg.DefaultProductID
}

// SuccessDetails looks the payment or subscription up for display only.
// The Dodo client carries a timeout, and any failure degrades to the
// generic details; access itself is granted by the webhook, never here.
func (s *storefrontServiceImpl) SuccessDetails(ctx context.Context, paymentID, subscriptionID string) *SuccessDetails {
	switch {
	case subscriptionID != "":
		sub, err := s.dodoClient.GetSubscription(ctx, subscriptionID)
		if err != nil {
			s.logger.Warn().Err(err).Str("subscription_id", subscriptionID).Msg("success page lookup failed")
			return &SuccessDetails{Generic: true}
		}
		return &SuccessDetails{
			CustomerEmail: sub.Customer.Email,
			ProductID:     sub.ProductID,
			Subscription:  true,
		}

	case paymentID != "":
		payment, err := s.dodoClient.GetPayment(ctx, paymentID)
		if err != nil {
			s.logger.Warn().Err(err).Str("payment_id", paymentID).Msg("success page lookup failed")
			return &SuccessDetails{Generic: true}
		}
		details := &SuccessDetails{CustomerEmail: payment.Customer.Email}
		if len(payment.ProductCart) > 0 {
			details.ProductID = payment.ProductCart[0].ProductID
		}
		return details

	default:
		return &SuccessDetails{Generic: true}
	}
}
