package users

import (
	"time"

	"studyhub-app/internal/domain/plans"
)

// Subscription status values mirrored from the processor.
const (
	StatusInactive  = "inactive"
	StatusActive    = "active"
	StatusPastDue   = "past_due"
	StatusCancelled = "cancelled"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Lastname     string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string
	IsVerified   bool

	// Subscription record: the local cache of the processor's state.
	// Starts as {inactive, free}; mutated by the webhook dispatcher and,
	// with UnmanagedOverride set, by admin overrides. Never deleted —
	// cancellation is a status, not a record removal.
	SubscriptionStatus string `gorm:"column:subscription_status;type:varchar(20);not null;default:'inactive'"`
	Tier               string `gorm:"column:tier;type:varchar(20);not null;default:'free'"`

	StripeCustomerID     *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`
	StripeSubscriptionID *string `gorm:"column:stripe_subscription_id;uniqueIndex:idx_users_stripe_subscription_id"`

	CurrentPeriodStart *time.Time `gorm:"column:current_period_start"`
	CurrentPeriodEnd   *time.Time `gorm:"column:current_period_end"`
	CancelAtPeriodEnd  bool       `gorm:"column:cancel_at_period_end;not null;default:false"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`

	// True when the record was last written by an admin override instead of
	// the webhook path, so reconciliation can detect hand-made drift.
	UnmanagedOverride bool `gorm:"column:unmanaged_override;not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveTier is what entitlement checks should read: a paid tier whose
// paid-through date has lapsed falls back to free limits.
func (u User) EffectiveTier(now time.Time) string {
	if !plans.IsPaid(u.Tier) {
		return plans.TierFree
	}
	switch u.SubscriptionStatus {
	case StatusActive, StatusPastDue:
		return u.Tier
	case StatusCancelled:
		// paid through the end of the current period
		if u.CurrentPeriodEnd != nil && now.Before(*u.CurrentPeriodEnd) {
			return u.Tier
		}
	}
	return plans.TierFree
}
