package billing

import "errors"

var (
	// ErrInvalidTier covers an unknown tier, an unknown billing cycle, or a
	// (tier, cycle) pair with no configured processor price. Operational
	// misconfiguration, always a 4xx.
	ErrInvalidTier = errors.New("tier/cycle has no configured price")

	// ErrUnknownPrice means a processor price id could not be mapped back
	// to a local tier.
	ErrUnknownPrice = errors.New("price id not in catalog")

	// ErrStalePeriod marks an update whose current_period_end would move
	// backwards. The event is correctly understood, just stale: it is
	// logged and acknowledged, never retried.
	ErrStalePeriod = errors.New("stale update: current_period_end would regress")

	// ErrNoSubscription marks an activation event that carries no
	// processor subscription id. Applying it would leave a paid tier
	// without a backing subscription.
	ErrNoSubscription = errors.New("event missing processor subscription id")
)
