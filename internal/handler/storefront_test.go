package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dodo-storefront-demo/internal/client"
	"dodo-storefront-demo/internal/config"
	"dodo-storefront-demo/internal/model"
	"dodo-storefront-demo/internal/service"
	"dodo-storefront-demo/internal/store"
)

type stubDodoClient struct {
	payment *client.Payment
	sub     *client.Subscription
	err     error
}

func (s *stubDodoClient) GetPayment(ctx context.Context, paymentID string) (*client.Payment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.payment, nil
}

func (s *stubDodoClient) GetSubscription(ctx context.Context, subscriptionID string) (*client.Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sub, nil
}

func testDodoConfig() *config.Dodo {
	return &config.Dodo{
		Environment:      config.TestMode,
		ReturnURL:        "https://example.com/success",
		DefaultProductID: "pdt_default",
	}
}

func newStorefrontTest(t *testing.T, dodo client.DodoClient, entitlements store.EntitlementStore) (*echo.Echo, *StorefrontHandler) {
	t.Helper()

	e := echo.New()
	e.Renderer = NewRenderer()

	svc := service.NewStorefrontService(dodo, entitlements, testDodoConfig(), zerolog.Nop())
	return e, NewStorefrontHandler(svc)
}

func TestHomeAsksForEmail(t *testing.T) {
	e, h := newStorefrontTest(t, &stubDodoClient{}, store.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Home(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Check Your Access")
}

func TestHomeOffersCheckoutWithoutAccess(t *testing.T) {
	e, h := newStorefrontTest(t, &stubDodoClient{}, store.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/?email=a%40x.com", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Home(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Buy Product Now")
	assert.Contains(t, body, "/checkout/pdt_default")
}

func TestHomeListsEntitlements(t *testing.T) {
	ctx := context.Background()
	entitlements := store.NewMemory()
	require.NoError(t, entitlements.RecordPurchase(ctx, &model.PurchaseRecord{
		Email:       "a@x.com",
		PaymentID:   "pay_1",
		ProductID:   "prod_1",
		PurchasedAt: time.Now(),
		Amount:      1000,
		Currency:    "USD",
	}))
	require.NoError(t, entitlements.ActivateSubscription(ctx, &model.SubscriptionRecord{
		Email:           "a@x.com",
		SubscriptionID:  "sub_1",
		ProductID:       "prod_sub",
		Status:          model.SubscriptionActive,
		NextBillingDate: time.Now().AddDate(0, 1, 0),
		ActivatedAt:     time.Now(),
	}))

	e, h := newStorefrontTest(t, &stubDodoClient{}, entitlements)

	req := httptest.NewRequest(http.MethodGet, "/?email=a%40x.com", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Home(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Active Subscription")
	assert.Contains(t, body, "prod_sub")
	assert.Contains(t, body, "One-Time Purchase")
	assert.Contains(t, body, "prod_1")
}

func TestHomeHidesInactiveSubscriptionCard(t *testing.T) {
	ctx := context.Background()
	entitlements := store.NewMemory()
	require.NoError(t, entitlements.ActivateSubscription(ctx, &model.SubscriptionRecord{
		Email:          "a@x.com",
		SubscriptionID: "sub_1",
		ProductID:      "prod_sub",
		Status:         model.SubscriptionActive,
	}))
	require.NoError(t, entitlements.MarkSubscriptionCancelled(ctx, "a@x.com"))
	require.NoError(t, entitlements.RecordPurchase(ctx, &model.PurchaseRecord{
		Email:     "a@x.com",
		PaymentID: "pay_1",
		ProductID: "prod_1",
	}))

	e, h := newStorefrontTest(t, &stubDodoClient{}, entitlements)

	req := httptest.NewRequest(http.MethodGet, "/?email=a%40x.com", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Home(e.NewContext(req, rec)))

	body := rec.Body.String()
	assert.NotContains(t, body, "Active Subscription")
	assert.Contains(t, body, "One-Time Purchase")
}

func TestCheckoutRedirects(t *testing.T) {
	e, h := newStorefrontTest(t, &stubDodoClient{}, store.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/checkout/pdt_1?email=a%40x.com", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/checkout/:productID")
	c.SetParamNames("productID")
	c.SetParamValues("pdt_1")

	require.NoError(t, h.Checkout(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	location := rec.Header().Get(echo.HeaderLocation)
	assert.Contains(t, location, "https://test.checkout.dodopayments.com/buy/pdt_1")
	assert.Contains(t, location, "quantity=1")
	assert.Contains(t, location, "email=a%40x.com")
}

func TestSuccessRejectsFailedStatus(t *testing.T) {
	e, h := newStorefrontTest(t, &stubDodoClient{}, store.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/success?status=failed&payment_id=pay_1&email=a%40x.com", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Success(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Payment Not Successful")
	assert.Contains(t, body, "failed")
}

func TestSuccessRejectsMissingStatus(t *testing.T) {
	e, h := newStorefrontTest(t, &stubDodoClient{}, store.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/success", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Success(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown")
}

func TestSuccessDegradesWhenLookupFails(t *testing.T) {
	e, h := newStorefrontTest(t, &stubDodoClient{err: errors.New("connection refused")}, store.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/success?status=succeeded&payment_id=pay_1&email=a%40x.com", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Success(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "being processed")
	assert.Contains(t, body, "a@x.com")
}

func TestSuccessShowsSubscriptionDetails(t *testing.T) {
	stub := &stubDodoClient{
		sub: &client.Subscription{
			SubscriptionID: "sub_1",
			Status:         "active",
			ProductID:      "prod_sub",
			Customer:       client.Customer{Email: "a@x.com"},
		},
	}
	e, h := newStorefrontTest(t, stub, store.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/success?status=active&subscription_id=sub_1", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Success(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "prod_sub")
	assert.Contains(t, body, "now active")
	assert.Contains(t, body, "a@x.com")
}

func TestSuccessShowsPaymentDetails(t *testing.T) {
	stub := &stubDodoClient{
		payment: &client.Payment{
			PaymentID:   "pay_1",
			Status:      "succeeded",
			Customer:    client.Customer{Email: "a@x.com"},
			ProductCart: []client.CartItem{{ProductID: "prod_1", Quantity: 1}},
		},
	}
	e, h := newStorefrontTest(t, stub, store.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/success?status=succeeded&payment_id=pay_1", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Success(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "prod_1")
	assert.Contains(t, body, "was successful")
}
