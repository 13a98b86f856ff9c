package plans

// Resources gated by tier.
const (
	ResourceStudyPlans     = "study_plans"
	ResourceFlashcardDecks = "flashcard_decks"
)

// Limit is a tier-derived cap on a resource. Unlimited is a real sentinel,
// not a large Max: callers must branch on it before comparing counts.
type Limit struct {
	Max       int  `json:"max"`
	Unlimited bool `json:"unlimited"`
}

// Allows reports whether one more item fits under the limit given the
// current count.
func (l Limit) Allows(current int64) bool {
	if l.Unlimited {
		return true
	}
	return current < int64(l.Max)
}

// LimitFor returns the entitlement limit for a tier/resource pair.
// Unknown tiers get the free limits, unknown resources are unlimited
// (a resource nobody thought to cap should not lock users out).
func LimitFor(tier string, resource string) Limit {
	switch resource {
	case ResourceStudyPlans:
		switch tier {
		case TierPremium, TierEnterprise:
			return Limit{Unlimited: true}
		default:
			return Limit{Max: 3}
		}
	case ResourceFlashcardDecks:
		switch tier {
		case TierEnterprise:
			return Limit{Unlimited: true}
		case TierPremium:
			return Limit{Max: 50}
		default:
			return Limit{Max: 5}
		}
	default:
		return Limit{Unlimited: true}
	}
}
