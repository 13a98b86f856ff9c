package stripewebhooks

import (
	"fmt"
	"time"

	"studyhub-app/internal/domain/billing"
	"studyhub-app/internal/domain/plans"
	"studyhub-app/internal/domain/users"
	stripeinfra "studyhub-app/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
)

// handleSubscriptionCreated activates the subscription record. This is the
// only event guaranteed to carry the originating user_id in metadata, pushed
// there through the checkout session's SubscriptionData.
func (h *Handler) handleSubscriptionCreated(sub *stripe.Subscription) error {
	if sub.ID == "" {
		// a paid tier must never exist without a backing subscription id
		return billing.ErrNoSubscription
	}

	userID := userIDFromMetadata(sub.Metadata)
	if userID == 0 {
		return fmt.Errorf("subscription %s: missing metadata.user_id", sub.ID)
	}

	user, err := h.Store.UserByID(userID)
	if err != nil {
		if IsNotFound(err) {
			// user deleted between checkout and delivery: ack, don't retry
			fmt.Printf("⚠️  subscription %s: user %d not found, skipping\n", sub.ID, userID)
			return nil
		}
		return fmt.Errorf("user lookup failed: %w", err)
	}

	// a created subscription is paid by definition, so metadata claiming
	// "free" is as useless as no metadata at all
	tier := plans.ParseTier(sub.Metadata["tier"])
	if !plans.IsPaid(tier) {
		tier, err = h.tierFromItems(sub)
		if err != nil {
			return fmt.Errorf("subscription %s: cannot resolve tier: %w", sub.ID, err)
		}
	}

	status := stripeinfra.NormalizeStatus(string(sub.Status))
	periodStart := time.Unix(sub.CurrentPeriodStart, 0)
	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)

	// An update can land first and record a newer period for this same
	// subscription, so a late created delivery must respect the same
	// monotonic period rule as updates.
	if user.CurrentPeriodEnd != nil && periodEnd.Before(*user.CurrentPeriodEnd) && status != users.StatusCancelled {
		fmt.Printf("⚠️  subscription %s: %v (%s < %s), discarding create\n",
			sub.ID, billing.ErrStalePeriod,
			periodEnd.Format(time.RFC3339), user.CurrentPeriodEnd.Format(time.RFC3339))
		return nil
	}

	updates := map[string]interface{}{
		"subscription_status":    status,
		"tier":                   tier,
		"stripe_subscription_id": sub.ID,
		"current_period_start":   periodStart,
		"current_period_end":     periodEnd,
		"cancel_at_period_end":   sub.CancelAtPeriodEnd,
		"cancelled_at":           nil,
		"unmanaged_override":     false,
	}

	if sub.Customer != nil && sub.Customer.ID != "" {
		updates["stripe_customer_id"] = sub.Customer.ID
	}

	if err := h.Store.ApplySubscriptionState(user.ID, updates); err != nil {
		return fmt.Errorf("failed to activate subscription for user %d: %w", user.ID, err)
	}
	return nil
}

// tierFromItems falls back to the price catalog when metadata carries no
// usable tier.
func (h *Handler) tierFromItems(sub *stripe.Subscription) (string, error) {
	if sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return "", billing.ErrUnknownPrice
	}
	return h.Catalog.TierForPrice(sub.Items.Data[0].Price.ID)
}
