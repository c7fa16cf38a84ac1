package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dodo-storefront-demo/internal/config"
)

const (
	liveAPIBaseURL = "https://live.dodopayments.com"
	testAPIBaseURL = "https://test.dodopayments.com"
)

// DodoClient is the slice of the Dodo Payments API we use: read-only
// lookups to enrich the post-checkout success page. Webhooks, not these
// lookups, are what grant access.
type DodoClient interface {
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*Subscription, error)
}

type Customer struct {
	CustomerID string `json:"customer_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
}

type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

type Payment struct {
	PaymentID   string     `json:"payment_id"`
	Status      string     `json:"status"`
	TotalAmount int64      `json:"total_amount"`
	Currency    string     `json:"currency"`
	Customer    Customer   `json:"customer"`
	ProductCart []CartItem `json:"product_cart"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Subscription struct {
	SubscriptionID        string    `json:"subscription_id"`
	Status                string    `json:"status"`
	ProductID             string    `json:"product_id"`
	Customer              Customer  `json:"customer"`
	NextBillingDate       time.Time `json:"next_billing_date"`
	RecurringPreTaxAmount int64     `json:"recurring_pre_tax_amount"`
}

type dodoClientImpl struct {
	httpClient *http.Client
	baseAPIURL string
	apiKey     string
}

func NewDodoClient(dodoCfg *config.Dodo) DodoClient {
	baseURL := testAPIBaseURL
	if dodoCfg.Environment == config.LiveMode {
		baseURL = liveAPIBaseURL
	}

	return &dodoClientImpl{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseAPIURL: baseURL,
		apiKey:     dodoCfg.APIKey,
	}
}

func (c *dodoClientImpl) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	var payment Payment
	if err := c.getJSON(ctx, "/payments/"+paymentID, &payment); err != nil {
		return nil, fmt.Errorf("dodo api get payment: %w", err)
	}
	return &payment, nil
}

func (c *dodoClientImpl) GetSubscription(ctx context.Context, subscriptionID string) (*Subscription, error) {
	var sub Subscription
	if err := c.getJSON(ctx, "/subscriptions/"+subscriptionID, &sub); err != nil {
		return nil, fmt.Errorf("dodo api get subscription: %w", err)
	}
	return &sub, nil
}

func (c *dodoClientImpl) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseAPIURL+path, nil)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
