package billing

import (
	"time"

	"studyhub-app/internal/domain/plans"
	"studyhub-app/internal/domain/users"
)

type SubscriptionDTO struct {
	Status               string     `json:"status"`
	Tier                 string     `json:"tier"`
	PlanLabel            string     `json:"plan_label"`
	StripeCustomerID     *string    `json:"stripe_customer_id"`
	StripeSubscriptionID *string    `json:"stripe_subscription_id"`
	CurrentPeriodStart   *time.Time `json:"current_period_start"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end"`
	CancelAtPeriodEnd    bool       `json:"cancel_at_period_end"`
	CancelledAt          *time.Time `json:"cancelled_at,omitempty"`
	UnmanagedOverride    bool       `json:"unmanaged_override"`
}

func BuildSubscriptionDTO(u users.User) SubscriptionDTO {
	return SubscriptionDTO{
		Status:               u.SubscriptionStatus,
		Tier:                 u.Tier,
		PlanLabel:            plans.PlanLabel(u.Tier),
		StripeCustomerID:     u.StripeCustomerID,
		StripeSubscriptionID: u.StripeSubscriptionID,
		CurrentPeriodStart:   u.CurrentPeriodStart,
		CurrentPeriodEnd:     u.CurrentPeriodEnd,
		CancelAtPeriodEnd:    u.CancelAtPeriodEnd,
		CancelledAt:          u.CancelledAt,
		UnmanagedOverride:    u.UnmanagedOverride,
	}
}

// SubscriptionSnapshot is the pull reconciler's denormalized view of the
// processor's objects. It is returned to the caller as-is and never written
// back to the local record implicitly.
type SubscriptionSnapshot struct {
	SubscriptionID     string    `json:"subscription_id"`
	Status             string    `json:"status"`
	ProcessorStatus    string    `json:"processor_status"`
	Tier               string    `json:"tier,omitempty"`
	PriceID            string    `json:"price_id,omitempty"`
	ProductName        string    `json:"product_name,omitempty"`
	Currency           string    `json:"currency,omitempty"`
	UnitAmount         float64   `json:"unit_amount,omitempty"`
	Interval           string    `json:"interval,omitempty"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
	CancelAtPeriodEnd  bool      `json:"cancel_at_period_end"`
	CustomerID         string    `json:"customer_id,omitempty"`
	CustomerEmail      string    `json:"customer_email,omitempty"`
}
