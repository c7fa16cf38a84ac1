package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dodo-storefront-demo/internal/model"
	"dodo-storefront-demo/internal/service"
	"dodo-storefront-demo/internal/store"
)

func userAccessRequest(t *testing.T, entitlements store.EntitlementStore, email string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	svc := service.NewStorefrontService(&stubDodoClient{}, entitlements, testDodoConfig(), zerolog.Nop())
	h := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/user/"+email+"/access", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/user/:email/access")
	c.SetParamNames("email")
	c.SetParamValues(email)

	require.NoError(t, h.GetUserAccess(c))
	return rec
}

func TestGetUserAccessUnknownEmail(t *testing.T) {
	rec := userAccessRequest(t, store.NewMemory(), "nobody%40x.com")

	assert.Equal(t, http.StatusOK, rec.Code)

	var view model.EntitlementView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))

	assert.Equal(t, "nobody@x.com", view.Email)
	assert.False(t, view.HasActiveAccess)
	assert.Empty(t, view.AccessType)
	assert.Nil(t, view.Subscription)
	assert.Empty(t, view.Products)
}

func TestGetUserAccessWithEntitlements(t *testing.T) {
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
		Email:          "a@x.com",
		SubscriptionID: "sub_1",
		ProductID:      "prod_sub",
		Status:         model.SubscriptionActive,
	}))

	rec := userAccessRequest(t, entitlements, "a@x.com")

	assert.Equal(t, http.StatusOK, rec.Code)

	var view model.EntitlementView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))

	assert.True(t, view.HasActiveAccess)
	assert.ElementsMatch(t, []string{model.AccessTypeSubscription, model.AccessTypeProduct}, view.AccessType)
	require.NotNil(t, view.Subscription)
	assert.Equal(t, "sub_1", view.Subscription.SubscriptionID)
	require.Len(t, view.Products, 1)
	assert.Equal(t, "pay_1", view.Products[0].PaymentID)
}
