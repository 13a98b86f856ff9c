package plans

import "strings"

// Tier constants (single source of truth)
const (
	TierFree       = "free"
	TierPremium    = "premium"
	TierEnterprise = "enterprise"
)

// ParseTier normalizes and validates a tier coming from client input or
// webhook metadata. Returns "" for anything outside the known set.
func ParseTier(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case TierFree:
		return TierFree
	case TierPremium:
		return TierPremium
	case TierEnterprise:
		return TierEnterprise
	}
	return ""
}

// IsPaid reports whether a tier is processor-backed.
func IsPaid(tier string) bool {
	return tier == TierPremium || tier == TierEnterprise
}

// PlanLabel is the display string for a tier. Derived, never stored.
func PlanLabel(tier string) string {
	switch tier {
	case TierPremium:
		return "Premium"
	case TierEnterprise:
		return "Enterprise"
	default:
		return "Free"
	}
}
