package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dodo-storefront-demo/internal/model"
)

// gormStore keeps the same semantics as the in-memory store on a sqlite
// file: one subscription row per email upserted in place, purchase rows
// append-only.
type gormStore struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) EntitlementStore {
	return &gormStore{db: db}
}

func (s *gormStore) RecordPurchase(ctx context.Context, purchase *model.PurchaseRecord) error {
	return s.db.WithContext(ctx).Create(purchase).Error
}

func (s *gormStore) ActivateSubscription(ctx context.Context, sub *model.SubscriptionRecord) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		UpdateAll: true,
	}).Create(sub).Error
}

func (s *gormStore) RenewSubscription(ctx context.Context, email string, nextBillingDate time.Time) error {
	now := time.Now()
	return s.db.WithContext(ctx).
		Model(&model.SubscriptionRecord{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"status":            model.SubscriptionActive,
			"next_billing_date": nextBillingDate,
			"last_renewed":      &now,
		}).Error
}

func (s *gormStore) MarkSubscriptionCancelled(ctx context.Context, email string) error {
	return s.db.WithContext(ctx).
		Model(&model.SubscriptionRecord{}).
		Where("email = ?", email).
		Update("status", model.SubscriptionCancelled).
		Error
}

func (s *gormStore) MarkSubscriptionFailed(ctx context.Context, email, reason string) error {
	return s.db.WithContext(ctx).
		Model(&model.SubscriptionRecord{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"status":         model.SubscriptionFailed,
			"failure_reason": reason,
		}).Error
}

func (s *gormStore) GetEntitlement(ctx context.Context, email string) (*model.EntitlementView, error) {
	var sub *model.SubscriptionRecord

	var record model.SubscriptionRecord
	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(&record).
		Error
	switch {
	case err == nil:
		sub = &record
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no subscription for this email
	default:
		return nil, err
	}

	var purchases []model.PurchaseRecord
	err = s.db.WithContext(ctx).
		Where("email = ?", email).
		Order("id").
		Find(&purchases).
		Error
	if err != nil {
		return nil, err
	}

	return model.BuildEntitlementView(email, sub, purchases), nil
}
