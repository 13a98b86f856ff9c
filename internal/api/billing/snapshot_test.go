package billing

import (
	"testing"
	"time"

	"studyhub-app/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v75"
)

func TestBuildSnapshot(t *testing.T) {
	h := NewHandler(nil, testConfig())

	sub := &stripe.Subscription{
		ID:                 "sub_9",
		Status:             stripe.SubscriptionStatusTrialing,
		CurrentPeriodStart: 1700000000,
		CurrentPeriodEnd:   1702592000,
		CancelAtPeriodEnd:  true,
		Customer: &stripe.Customer{
			ID:    "cus_9",
			Email: "student@example.com",
		},
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{
				{
					Price: &stripe.Price{
						ID:         "price_premium_m",
						Currency:   stripe.CurrencyEUR,
						UnitAmount: 999,
						Recurring:  &stripe.PriceRecurring{Interval: stripe.PriceRecurringIntervalMonth},
						Product:    &stripe.Product{Name: "StudyHub Premium"},
					},
				},
			},
		},
	}

	snap := h.buildSnapshot(sub)

	assert.Equal(t, "sub_9", snap.SubscriptionID)
	assert.Equal(t, "trialing", snap.ProcessorStatus)
	assert.Equal(t, users.StatusActive, snap.Status)
	assert.Equal(t, time.Unix(1700000000, 0), snap.CurrentPeriodStart)
	assert.Equal(t, time.Unix(1702592000, 0), snap.CurrentPeriodEnd)
	assert.True(t, snap.CancelAtPeriodEnd)

	assert.Equal(t, "price_premium_m", snap.PriceID)
	assert.Equal(t, "premium", snap.Tier)
	assert.Equal(t, "eur", snap.Currency)
	assert.InDelta(t, 9.99, snap.UnitAmount, 0.001)
	assert.Equal(t, "month", snap.Interval)
	assert.Equal(t, "StudyHub Premium", snap.ProductName)

	assert.Equal(t, "cus_9", snap.CustomerID)
	assert.Equal(t, "student@example.com", snap.CustomerEmail)
}

func TestBuildSnapshotUnknownPrice(t *testing.T) {
	h := NewHandler(nil, testConfig())

	sub := &stripe.Subscription{
		ID:     "sub_10",
		Status: stripe.SubscriptionStatusCanceled,
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{
				{Price: &stripe.Price{ID: "price_retired"}},
			},
		},
	}

	snap := h.buildSnapshot(sub)

	assert.Equal(t, users.StatusCancelled, snap.Status)
	assert.Equal(t, "price_retired", snap.PriceID)
	// price not in the catalog: tier is simply left empty
	assert.Empty(t, snap.Tier)
}
