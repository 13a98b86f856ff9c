package stripe

import "strings"

// NormalizeStatus folds Stripe's subscription statuses into the four local
// ones: inactive | active | past_due | cancelled.
func NormalizeStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "active", "trialing":
		return "active"
	case "past_due", "unpaid":
		return "past_due"
	case "canceled", "incomplete_expired":
		return "cancelled"
	default:
		// "incomplete" and anything Stripe adds later
		return "inactive"
	}
}
