package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"dodo-storefront-demo/internal/model"
	"dodo-storefront-demo/internal/service"
)

type StorefrontHandler struct {
	storefrontService service.StorefrontService
}

func NewStorefrontHandler(storefrontService service.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{
		storefrontService: storefrontService,
	}
}

type homeBuyPage struct {
	Email        string
	CheckoutPath string
}

type homeAccessPage struct {
	Email        string
	Subscription *model.SubscriptionRecord
	Products     []model.PurchaseRecord
}

// Home asks for an email, then either lists what that email owns or offers
// the default product for sale.
func (h *StorefrontHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()

	email := c.QueryParam("email")
	if email == "" {
		return c.Render(http.StatusOK, "home_form", nil)
	}

	view, err := h.storefrontService.GetEntitlement(ctx, email)
	if err != nil {
		return err
	}

	if !view.HasActiveAccess {
		return c.Render(http.StatusOK, "home_buy", &homeBuyPage{
			Email:        email,
			CheckoutPath: "/checkout/" + url.PathEscape(h.storefrontService.DefaultProductID()) + "?email=" + url.QueryEscape(email),
		})
	}

	page := &homeAccessPage{
		Email:    email,
		Products: view.Products,
	}
	// the subscription card only shows while the subscription is active
	if view.Subscription != nil && view.Subscription.Status == model.SubscriptionActive {
		page.Subscription = view.Subscription
	}

	return c.Render(http.StatusOK, "home_access", page)
}

// Checkout redirects to the provider's hosted checkout page. The product ID
// is not validated here; a bad one is the checkout page's problem.
func (h *StorefrontHandler) Checkout(c echo.Context) error {
	productID := c.Param("productID")
	email := c.QueryParam("email")

	checkoutURL, err := h.storefrontService.CheckoutURL(productID, email)
	if err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, checkoutURL)
}

type successPage struct {
	Email        string
	ProductID    string
	Subscription bool
	Generic      bool
}

type failurePage struct {
	Status string
}

// Success is the post-checkout landing page. Anything other than a
// succeeded/active status renders the failure page; otherwise we try a
// provider lookup for display and fall back to a generic message.
func (h *StorefrontHandler) Success(c echo.Context) error {
	ctx := c.Request().Context()

	status := c.QueryParam("status")
	if status != "succeeded" && status != "active" {
		if status == "" {
			status = "unknown"
		}
		return c.Render(http.StatusBadRequest, "failure", &failurePage{Status: status})
	}

	details := h.storefrontService.SuccessDetails(ctx, c.QueryParam("payment_id"), c.QueryParam("subscription_id"))

	email := details.CustomerEmail
	if email == "" {
		email = c.QueryParam("email")
	}
	if email == "" {
		email = "your email"
	}

	return c.Render(http.StatusOK, "success", &successPage{
		Email:        email,
		ProductID:    details.ProductID,
		Subscription: details.Subscription,
		Generic:      details.Generic || details.ProductID == "",
	})
}
