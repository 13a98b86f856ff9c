package billing

import (
	"context"
	"net/http"
	"time"

	"studyhub-app/internal/domain/users"
	stripeinfra "studyhub-app/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/subscription"
)

// GetRemoteSnapshot is the pull path: fetch the processor's current
// subscription, price, product and customer objects and return them
// denormalized. Read-only — repairing the local record is the caller's
// decision, which keeps this path from racing concurrently arriving
// webhooks.
func (h *Handler) GetRemoteSnapshot(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	var user users.User
	if err := h.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.StripeSubscriptionID == nil || *user.StripeSubscriptionID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No subscription on record"})
		return
	}

	if h.Cfg.StripeSecretKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}
	stripe.Key = h.Cfg.StripeSecretKey

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	params := &stripe.SubscriptionParams{}
	params.Context = ctx
	params.AddExpand("customer")
	params.AddExpand("items.data.price.product")

	sub, err := subscription.Get(*user.StripeSubscriptionID, params)
	if err != nil {
		respondUpstreamError(c, "Failed to fetch subscription from Stripe", err)
		return
	}

	c.JSON(http.StatusOK, h.buildSnapshot(sub))
}

func (h *Handler) buildSnapshot(sub *stripe.Subscription) SubscriptionSnapshot {
	snap := SubscriptionSnapshot{
		SubscriptionID:     sub.ID,
		ProcessorStatus:    string(sub.Status),
		Status:             stripeinfra.NormalizeStatus(string(sub.Status)),
		CurrentPeriodStart: time.Unix(sub.CurrentPeriodStart, 0),
		CurrentPeriodEnd:   time.Unix(sub.CurrentPeriodEnd, 0),
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
	}

	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		p := sub.Items.Data[0].Price
		snap.PriceID = p.ID
		snap.Currency = string(p.Currency)
		snap.UnitAmount = float64(p.UnitAmount) / 100.0
		if p.Recurring != nil {
			snap.Interval = string(p.Recurring.Interval)
		}
		if p.Product != nil {
			snap.ProductName = p.Product.Name
		}
		if tier, err := h.Catalog.TierForPrice(p.ID); err == nil {
			snap.Tier = tier
		}
	}

	if sub.Customer != nil {
		snap.CustomerID = sub.Customer.ID
		snap.CustomerEmail = sub.Customer.Email
	}

	return snap
}
