package store

import (
	"context"
	"sync"
	"time"

	"dodo-storefront-demo/internal/model"
)

// memoryStore is the demo default: entitlements live in process memory and
// are gone on restart. Handlers run concurrently, so access goes through a
// single lock.
type memoryStore struct {
	mu            sync.RWMutex
	subscriptions map[string]*model.SubscriptionRecord
	purchases     map[string][]model.PurchaseRecord
}

func NewMemory() EntitlementStore {
	return &memoryStore{
		subscriptions: make(map[string]*model.SubscriptionRecord),
		purchases:     make(map[string][]model.PurchaseRecord),
	}
}

func (s *memoryStore) RecordPurchase(ctx context.Context, purchase *model.PurchaseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purchases[purchase.Email] = append(s.purchases[purchase.Email], *purchase)
	return nil
}

func (s *memoryStore) ActivateSubscription(ctx context.Context, sub *model.SubscriptionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := *sub
	s.subscriptions[sub.Email] = &record
	return nil
}

func (s *memoryStore) RenewSubscription(ctx context.Context, email string, nextBillingDate time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.subscriptions[email]
	if !ok {
		return nil
	}

	now := time.Now()
	record.Status = model.SubscriptionActive
	record.NextBillingDate = nextBillingDate
	record.LastRenewed = &now
	return nil
}

func (s *memoryStore) MarkSubscriptionCancelled(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record, ok := s.subscriptions[email]; ok {
		record.Status = model.SubscriptionCancelled
	}
	return nil
}

func (s *memoryStore) MarkSubscriptionFailed(ctx context.Context, email, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record, ok := s.subscriptions[email]; ok {
		record.Status = model.SubscriptionFailed
		record.FailureReason = reason
	}
	return nil
}

func (s *memoryStore) GetEntitlement(ctx context.Context, email string) (*model.EntitlementView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sub *model.SubscriptionRecord
	if record, ok := s.subscriptions[email]; ok {
		copied := *record
		sub = &copied
	}

	purchases := make([]model.PurchaseRecord, len(s.purchases[email]))
	copy(purchases, s.purchases[email])

	return model.BuildEntitlementView(email, sub, purchases), nil
}
