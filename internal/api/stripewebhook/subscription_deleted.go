package stripewebhooks

import (
	"fmt"
	"time"

	"studyhub-app/internal/domain/users"

	"github.com/stripe/stripe-go/v75"
)

// handleSubscriptionDeleted marks the record cancelled. Tier and processor
// ids are kept: the record is history, not something to erase, and the
// paid-through window may still be running.
func (h *Handler) handleSubscriptionDeleted(sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	user := h.resolveUser(sub)
	if user == nil {
		fmt.Printf("⚠️  subscription %s: no matching user, skipping delete\n", sub.ID)
		return nil
	}

	cancelledAt := time.Now()
	if sub.CanceledAt > 0 {
		cancelledAt = time.Unix(sub.CanceledAt, 0)
	}

	updates := map[string]interface{}{
		"subscription_status":  users.StatusCancelled,
		"cancelled_at":         cancelledAt,
		"cancel_at_period_end": false,
		"unmanaged_override":   false,
	}

	// period end may move backwards here: the cancelled transition is the
	// one exception to monotonicity
	if sub.CurrentPeriodEnd > 0 {
		updates["current_period_end"] = time.Unix(sub.CurrentPeriodEnd, 0)
	}

	if err := h.Store.ApplySubscriptionState(user.ID, updates); err != nil {
		return fmt.Errorf("failed to cancel subscription for user %d: %w", user.ID, err)
	}
	return nil
}
