package model

import "time"

// Subscription statuses tracked by the entitlement store.
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionFailed    = "failed"
)

// Access types reported in EntitlementView.
const (
	AccessTypeSubscription = "subscription"
	AccessTypeProduct      = "product"
)

// SubscriptionRecord is the single subscription tracked per customer email.
// A new activation replaces the previous record for that email outright;
// webhook delivery is at-least-once and unordered, so the last event to
// arrive wins.
type SubscriptionRecord struct {
	Email           string     `gorm:"primaryKey;size:255;not null" json:"-"`
	SubscriptionID  string     `gorm:"size:64;index;not null" json:"subscription_id"`
	ProductID       string     `gorm:"size:64;not null" json:"product_id"`
	Status          string     `gorm:"size:32;index;not null" json:"status"`
	NextBillingDate time.Time  `json:"next_billing_date"`
	ActivatedAt     time.Time  `json:"activated_at"`
	LastRenewed     *time.Time `json:"last_renewed,omitempty"`
	RecurringAmount int64      `json:"recurring_amount"`
	FailureReason   string     `gorm:"size:255" json:"failure_reason,omitempty"`
}

// PurchaseRecord is one completed one-time payment. Records are append-only:
// a payment_id delivered twice shows up twice.
type PurchaseRecord struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Email       string    `gorm:"size:255;index;not null" json:"-"`
	PaymentID   string    `gorm:"size:64;index;not null" json:"payment_id"`
	ProductID   string    `gorm:"size:64;not null" json:"product_id"`
	PurchasedAt time.Time `json:"purchased_at"`
	Amount      int64     `json:"amount"`
	Currency    string    `gorm:"size:8" json:"currency"`
}

// EntitlementView is the derived, read-only answer to "what does this
// email have access to".
type EntitlementView struct {
	Email           string              `json:"email"`
	Subscription    *SubscriptionRecord `json:"subscription"`
	Products        []PurchaseRecord    `json:"products"`
	HasActiveAccess bool                `json:"has_active_access"`
	AccessType      []string            `json:"access_type"`
}

// BuildEntitlementView derives the access flags from the raw records so
// both store implementations compute them the same way.
func BuildEntitlementView(email string, sub *SubscriptionRecord, purchases []PurchaseRecord) *EntitlementView {
	view := &EntitlementView{
		Email:        email,
		Subscription: sub,
		Products:     purchases,
		AccessType:   []string{},
	}
	if view.Products == nil {
		view.Products = []PurchaseRecord{}
	}

	if sub != nil && sub.Status == SubscriptionActive {
		view.HasActiveAccess = true
		view.AccessType = append(view.AccessType, AccessTypeSubscription)
	}
	if len(view.Products) > 0 {
		view.HasActiveAccess = true
		view.AccessType = append(view.AccessType, AccessTypeProduct)
	}

	return view
}
