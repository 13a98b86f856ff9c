package stripewebhooks

import (
	"testing"
	"time"

	"studyhub-app/config"
	"studyhub-app/internal/domain/billing"
	"studyhub-app/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// fakeStore is an in-memory SubscriptionStore for dispatch tests.
type fakeStore struct {
	users     map[uint]*users.User
	processed map[string]bool
	applies   int
}

func newFakeStore(us ...*users.User) *fakeStore {
	s := &fakeStore{
		users:     map[uint]*users.User{},
		processed: map[string]bool{},
	}
	for _, u := range us {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeStore) UserByID(id uint) (*users.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *fakeStore) UserBySubscriptionID(subID string) (*users.User, error) {
	for _, u := range s.users {
		if u.StripeSubscriptionID != nil && *u.StripeSubscriptionID == subID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) ApplySubscriptionState(userID uint, updates map[string]interface{}) error {
	u, ok := s.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.applies++
	for k, v := range updates {
		switch k {
		case "subscription_status":
			u.SubscriptionStatus = v.(string)
		case "tier":
			u.Tier = v.(string)
		case "stripe_subscription_id":
			val := v.(string)
			u.StripeSubscriptionID = &val
		case "stripe_customer_id":
			val := v.(string)
			u.StripeCustomerID = &val
		case "current_period_start":
			t := v.(time.Time)
			u.CurrentPeriodStart = &t
		case "current_period_end":
			t := v.(time.Time)
			u.CurrentPeriodEnd = &t
		case "cancel_at_period_end":
			u.CancelAtPeriodEnd = v.(bool)
		case "cancelled_at":
			if v == nil {
				u.CancelledAt = nil
			} else {
				t := v.(time.Time)
				u.CancelledAt = &t
			}
		case "unmanaged_override":
			u.UnmanagedOverride = v.(bool)
		}
	}
	return nil
}

func (s *fakeStore) MarkEventProcessed(eventID, eventType string) (bool, error) {
	if s.processed[eventID] {
		return false, nil
	}
	s.processed[eventID] = true
	return true, nil
}

func testHandler(store SubscriptionStore) *Handler {
	cfg := config.BillingConfig{
		WebhookSecret:          "whsec_test",
		PricePremiumMonthly:    "price_premium_m",
		PriceEnterpriseMonthly: "price_enterprise_m",
	}
	return NewHandler(store, billing.NewCatalog(cfg), cfg)
}

func freeUser(id uint) *users.User {
	return &users.User{
		ID:                 id,
		Email:              "u@example.com",
		SubscriptionStatus: users.StatusInactive,
		Tier:               "free",
	}
}

var (
	periodA = time.Unix(1700000000, 0)
	periodB = time.Unix(1702592000, 0)
)

func createdEvent(eventID string) VerifiedEvent {
	return VerifiedEvent{
		ID:   eventID,
		Type: eventSubscriptionCreated,
		Subscription: &stripe.Subscription{
			ID:                 "sub_1",
			Status:             stripe.SubscriptionStatusActive,
			CurrentPeriodStart: periodA.Unix(),
			CurrentPeriodEnd:   periodB.Unix(),
			Customer:           &stripe.Customer{ID: "cus_1"},
			Metadata:           map[string]string{"user_id": "1", "tier": "enterprise"},
		},
	}
}

func TestCreatedActivatesSubscription(t *testing.T) {
	user := freeUser(1)
	store := newFakeStore(user)
	h := testHandler(store)

	h.Dispatch(createdEvent("evt_1"))

	assert.Equal(t, users.StatusActive, user.SubscriptionStatus)
	assert.Equal(t, "enterprise", user.Tier)
	require.NotNil(t, user.StripeSubscriptionID)
	assert.Equal(t, "sub_1", *user.StripeSubscriptionID)
	require.NotNil(t, user.StripeCustomerID)
	assert.Equal(t, "cus_1", *user.StripeCustomerID)
	require.NotNil(t, user.CurrentPeriodEnd)
	assert.True(t, user.CurrentPeriodEnd.Equal(periodB))
	assert.False(t, user.UnmanagedOverride)

	// a paid tier always carries its processor subscription id
	assert.NotEqual(t, "free", user.Tier)
	assert.NotNil(t, user.StripeSubscriptionID)
}

func TestDuplicateDeliveryIsIdempotent(t *testing.T) {
	user := freeUser(1)
	store := newFakeStore(user)
	h := testHandler(store)

	h.Dispatch(createdEvent("evt_1"))
	first := *user
	h.Dispatch(createdEvent("evt_1"))

	assert.Equal(t, 1, store.applies)
	assert.Equal(t, first.SubscriptionStatus, user.SubscriptionStatus)
	assert.Equal(t, first.Tier, user.Tier)
}

func TestStaleUpdateDiscarded(t *testing.T) {
	user := freeUser(1)
	store := newFakeStore(user)
	h := testHandler(store)

	h.Dispatch(createdEvent("evt_1"))

	newer := periodB.Add(30 * 24 * time.Hour)
	h.Dispatch(VerifiedEvent{
		ID:   "evt_2",
		Type: eventSubscriptionUpdated,
		Subscription: &stripe.Subscription{
			ID:                 "sub_1",
			Status:             stripe.SubscriptionStatusActive,
			CurrentPeriodStart: periodB.Unix(),
			CurrentPeriodEnd:   newer.Unix(),
		},
	})
	require.NotNil(t, user.CurrentPeriodEnd)
	assert.True(t, user.CurrentPeriodEnd.Equal(newer))

	// an older update delivered late must not walk period_end backwards
	h.Dispatch(VerifiedEvent{
		ID:   "evt_3",
		Type: eventSubscriptionUpdated,
		Subscription: &stripe.Subscription{
			ID:                 "sub_1",
			Status:             stripe.SubscriptionStatusActive,
			CurrentPeriodStart: periodA.Unix(),
			CurrentPeriodEnd:   periodB.Unix(),
		},
	})

	assert.True(t, user.CurrentPeriodEnd.Equal(newer))
}

func TestLateCreatedDoesNotRegressPeriod(t *testing.T) {
	user := freeUser(1)
	store := newFakeStore(user)
	h := testHandler(store)

	// the update outruns the created delivery, correlating through
	// metadata because no subscription id is stored yet
	later := periodB.Add(30 * 24 * time.Hour)
	h.Dispatch(VerifiedEvent{
		ID:   "evt_1",
		Type: eventSubscriptionUpdated,
		Subscription: &stripe.Subscription{
			ID:                 "sub_1",
			Status:             stripe.SubscriptionStatusActive,
			CurrentPeriodStart: periodB.Unix(),
			CurrentPeriodEnd:   later.Unix(),
			Metadata:           map[string]string{"user_id": "1"},
		},
	})
	require.NotNil(t, user.CurrentPeriodEnd)
	require.True(t, user.CurrentPeriodEnd.Equal(later))

	// the created event carries the original, older period
	h.Dispatch(createdEvent("evt_2"))

	assert.Equal(t, 1, store.applies)
	assert.True(t, user.CurrentPeriodEnd.Equal(later))
	require.NotNil(t, user.StripeSubscriptionID)
	assert.Equal(t, "sub_1", *user.StripeSubscriptionID)
}

func TestUpdateResolvesBySubscriptionID(t *testing.T) {
	user := freeUser(1)
	store := newFakeStore(user)
	h := testHandler(store)

	h.Dispatch(createdEvent("evt_1"))

	later := periodB.Add(24 * time.Hour)
	// no user_id in metadata: correlation must fall back to the stored
	// subscription id
	h.Dispatch(VerifiedEvent{
		ID:   "evt_2",
		Type: eventSubscriptionUpdated,
		Subscription: &stripe.Subscription{
			ID:                 "sub_1",
			Status:             stripe.SubscriptionStatusPastDue,
			CurrentPeriodStart: periodB.Unix(),
			CurrentPeriodEnd:   later.Unix(),
		},
	})

	assert.Equal(t, users.StatusPastDue, user.SubscriptionStatus)
	assert.True(t, user.CurrentPeriodEnd.Equal(later))
}

func TestDeletedKeepsHistoricalReference(t *testing.T) {
	user := freeUser(1)
	store := newFakeStore(user)
	h := testHandler(store)

	h.Dispatch(createdEvent("evt_1"))

	h.Dispatch(VerifiedEvent{
		ID:   "evt_2",
		Type: eventSubscriptionDeleted,
		Subscription: &stripe.Subscription{
			ID:               "sub_1",
			Status:           stripe.SubscriptionStatusCanceled,
			CurrentPeriodEnd: periodB.Unix(),
			CanceledAt:       periodB.Unix(),
		},
	})

	assert.Equal(t, users.StatusCancelled, user.SubscriptionStatus)
	assert.Equal(t, "enterprise", user.Tier, "tier is history, not erased")
	require.NotNil(t, user.StripeSubscriptionID)
	assert.Equal(t, "sub_1", *user.StripeSubscriptionID)
	require.NotNil(t, user.CancelledAt)
}

func TestUnknownEventTypeIgnored(t *testing.T) {
	user := freeUser(1)
	store := newFakeStore(user)
	h := testHandler(store)

	h.Dispatch(VerifiedEvent{ID: "evt_1", Type: "invoice.payment_succeeded"})

	assert.Equal(t, 0, store.applies)
	assert.Equal(t, "free", user.Tier)
}

func TestCreatedWithoutSubscriptionIDRejected(t *testing.T) {
	user := freeUser(1)
	store := newFakeStore(user)
	h := testHandler(store)

	h.Dispatch(VerifiedEvent{
		ID:   "evt_1",
		Type: eventSubscriptionCreated,
		Subscription: &stripe.Subscription{
			Metadata: map[string]string{"user_id": "1", "tier": "premium"},
		},
	})

	// activating without a processor subscription id would break the
	// tier/subscription pairing
	assert.Equal(t, 0, store.applies)
	assert.Equal(t, "free", user.Tier)
}

func TestCreatedTierFallsBackToCatalog(t *testing.T) {
	user := freeUser(1)
	store := newFakeStore(user)
	h := testHandler(store)

	h.Dispatch(VerifiedEvent{
		ID:   "evt_1",
		Type: eventSubscriptionCreated,
		Subscription: &stripe.Subscription{
			ID:                 "sub_1",
			Status:             stripe.SubscriptionStatusActive,
			CurrentPeriodStart: periodA.Unix(),
			CurrentPeriodEnd:   periodB.Unix(),
			Metadata:           map[string]string{"user_id": "1"},
			Items: &stripe.SubscriptionItemList{
				Data: []*stripe.SubscriptionItem{
					{Price: &stripe.Price{ID: "price_premium_m"}},
				},
			},
		},
	})

	assert.Equal(t, "premium", user.Tier)
}

func TestUnresolvableEventsAreSkippedNotFatal(t *testing.T) {
	store := newFakeStore() // nobody home
	h := testHandler(store)

	h.Dispatch(createdEvent("evt_1"))
	h.Dispatch(VerifiedEvent{
		ID:   "evt_2",
		Type: eventSubscriptionUpdated,
		Subscription: &stripe.Subscription{
			ID:               "sub_ghost",
			Status:           stripe.SubscriptionStatusActive,
			CurrentPeriodEnd: periodB.Unix(),
		},
	})
	h.Dispatch(VerifiedEvent{
		ID:   "evt_3",
		Type: eventSubscriptionDeleted,
		Subscription: &stripe.Subscription{
			ID:     "sub_ghost",
			Status: stripe.SubscriptionStatusCanceled,
		},
	})

	assert.Equal(t, 0, store.applies)
}
