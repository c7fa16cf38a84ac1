// Package checkout builds hosted checkout URLs. No network calls happen
// here; the provider's checkout page does the actual payment work.
package checkout

import (
	"fmt"
	"net/url"

	"dodo-storefront-demo/internal/config"
)

const (
	liveCheckoutBaseURL = "https://checkout.dodopayments.com/buy"
	testCheckoutBaseURL = "https://test.checkout.dodopayments.com/buy"
)

// BuildURL composes the hosted checkout URL for a product. The email, when
// present, rides along twice: as a checkout parameter to prefill the payment
// form, and appended to the return URL so it survives the round trip back
// to our success page. Every interpolated value is URL-encoded.
func BuildURL(productID, email, environment, returnURL string) (string, error) {
	base := testCheckoutBaseURL
	if environment == config.LiveMode {
		base = liveCheckoutBaseURL
	}

	redirect, err := url.Parse(returnURL)
	if err != nil {
		return "", fmt.Errorf("parse return url: %w", err)
	}
	if email != "" {
		q := redirect.Query()
		q.Set("email", email)
		redirect.RawQuery = q.Encode()
	}

	query := url.Values{}
	query.Set("quantity", "1")
	query.Set("redirect_url", redirect.String())
	if email != "" {
		query.Set("email", email)
	}

	return base + "/" + url.PathEscape(productID) + "?" + query.Encode(), nil
}
