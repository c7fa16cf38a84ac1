package model

import (
	"encoding/json"
	"time"
)

// Event kinds delivered by Dodo Payments that we act on. Anything else is
// logged and acknowledged.
const (
	EventPaymentSucceeded      = "payment.succeeded"
	EventSubscriptionActive    = "subscription.active"
	EventSubscriptionRenewed   = "subscription.renewed"
	EventSubscriptionCancelled = "subscription.cancelled"
	EventSubscriptionFailed    = "subscription.failed"
)

// WebhookEvent is the verified webhook envelope. Data stays raw until the
// dispatcher knows the kind, then decodes into the matching payload type.
type WebhookEvent struct {
	BusinessID string          `json:"business_id"`
	Type       string          `json:"type"`
	Timestamp  time.Time       `json:"timestamp"`
	Data       json.RawMessage `json:"data"`
}

type WebhookCustomer struct {
	CustomerID string `json:"customer_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
}

// PaymentPayload carries the fields of a payment.succeeded event we consume.
type PaymentPayload struct {
	PaymentID   string          `json:"payment_id"`
	ProductID   string          `json:"product_id"`
	Customer    WebhookCustomer `json:"customer"`
	TotalAmount int64           `json:"total_amount"`
	Currency    string          `json:"currency"`
}

// SubscriptionPayload carries the fields shared by the subscription.* events.
type SubscriptionPayload struct {
	SubscriptionID        string          `json:"subscription_id"`
	ProductID             string          `json:"product_id"`
	Customer              WebhookCustomer `json:"customer"`
	NextBillingDate       time.Time       `json:"next_billing_date"`
	RecurringPreTaxAmount int64           `json:"recurring_pre_tax_amount"`
	FailureReason         string          `json:"failure_reason"`
}

func (e *WebhookEvent) Payment() (*PaymentPayload, error) {
	var payload PaymentPayload
	if err := json.Unmarshal(e.Data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (e *WebhookEvent) Subscription() (*SubscriptionPayload, error) {
	var payload SubscriptionPayload
	if err := json.Unmarshal(e.Data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
