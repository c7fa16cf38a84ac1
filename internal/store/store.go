package store

import (
	"context"
	"time"

	"dodo-storefront-demo/internal/model"
)

// EntitlementStore maps customer emails to purchase and subscription
// records. Writers are webhook events only; delivery is at-least-once and
// unordered, and the store does not compensate for that: purchases append
// without a uniqueness check on payment_id, and a new activation overwrites
// whatever subscription record is there.
//
// Emails are used as raw keys. No case or whitespace normalization is
// applied, so two spellings of one address are two customers.
type EntitlementStore interface {
	// RecordPurchase appends a purchase for purchase.Email.
	RecordPurchase(ctx context.Context, purchase *model.PurchaseRecord) error

	// ActivateSubscription replaces any subscription record for sub.Email.
	ActivateSubscription(ctx context.Context, sub *model.SubscriptionRecord) error

	// RenewSubscription refreshes the billing date and forces the status
	// back to active. Unknown emails are silently dropped.
	RenewSubscription(ctx context.Context, email string, nextBillingDate time.Time) error

	// MarkSubscriptionCancelled and MarkSubscriptionFailed mutate the
	// status in place; both are no-ops for unknown emails.
	MarkSubscriptionCancelled(ctx context.Context, email string) error
	MarkSubscriptionFailed(ctx context.Context, email, reason string) error

	// GetEntitlement returns the derived access view. Unknown emails get
	// an empty view, not an error.
	GetEntitlement(ctx context.Context, email string) (*model.EntitlementView, error)
}
