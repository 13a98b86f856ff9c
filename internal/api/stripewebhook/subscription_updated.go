package stripewebhooks

import (
	"fmt"
	"time"

	"studyhub-app/internal/domain/billing"
	"studyhub-app/internal/domain/users"
	stripeinfra "studyhub-app/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
)

// handleSubscriptionUpdated refreshes status, period and tier. Updates
// resolve the user by subscription id; metadata user_id is only a fallback
// because Stripe does not echo it on every event type.
func (h *Handler) handleSubscriptionUpdated(sub *stripe.Subscription) error {
	if sub.ID == "" {
		return fmt.Errorf("subscription update missing id")
	}

	user := h.resolveUser(sub)
	if user == nil {
		// unknown subscription: ack so one unresolvable event does not
		// block the rest of the delivery queue
		fmt.Printf("⚠️  subscription %s: no matching user, skipping update\n", sub.ID)
		return nil
	}

	status := stripeinfra.NormalizeStatus(string(sub.Status))
	periodStart := time.Unix(sub.CurrentPeriodStart, 0)
	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)

	// Out-of-order delivery: a strictly older update must not walk
	// current_period_end backwards. Only a cancellation may.
	if user.CurrentPeriodEnd != nil && periodEnd.Before(*user.CurrentPeriodEnd) && status != users.StatusCancelled {
		fmt.Printf("⚠️  subscription %s: %v (%s < %s), discarding\n",
			sub.ID, billing.ErrStalePeriod,
			periodEnd.Format(time.RFC3339), user.CurrentPeriodEnd.Format(time.RFC3339))
		return nil
	}

	updates := map[string]interface{}{
		"subscription_status":    status,
		"stripe_subscription_id": sub.ID,
		"current_period_start":   periodStart,
		"current_period_end":     periodEnd,
		"cancel_at_period_end":   sub.CancelAtPeriodEnd,
		"unmanaged_override":     false,
	}

	// plan changed through the portal
	if tier, err := h.tierFromItems(sub); err == nil && tier != user.Tier {
		updates["tier"] = tier
	}

	if status == users.StatusCancelled {
		cancelledAt := time.Now()
		if sub.CanceledAt > 0 {
			cancelledAt = time.Unix(sub.CanceledAt, 0)
		}
		updates["cancelled_at"] = cancelledAt
	}

	if err := h.Store.ApplySubscriptionState(user.ID, updates); err != nil {
		return fmt.Errorf("failed to update subscription for user %d: %w", user.ID, err)
	}
	return nil
}

func (h *Handler) resolveUser(sub *stripe.Subscription) *users.User {
	if user, err := h.Store.UserBySubscriptionID(sub.ID); err == nil {
		return user
	}
	if userID := userIDFromMetadata(sub.Metadata); userID != 0 {
		if user, err := h.Store.UserByID(userID); err == nil {
			return user
		}
	}
	return nil
}
