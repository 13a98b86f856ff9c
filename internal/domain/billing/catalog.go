package billing

import (
	"strings"

	"studyhub-app/config"
	"studyhub-app/internal/domain/plans"
)

// Billing cycle constants.
const (
	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
)

// ParseCycle normalizes a billing cycle from client input. Returns "" for
// anything outside the known set.
func ParseCycle(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case CycleMonthly:
		return CycleMonthly
	case CycleYearly:
		return CycleYearly
	}
	return ""
}

type catalogKey struct {
	tier  string
	cycle string
}

// Catalog is the fixed (tier, cycle) → processor price id table. Built once
// at startup from config and immutable afterwards; an empty price id in the
// environment simply leaves the pair unmapped.
type Catalog struct {
	prices map[catalogKey]string
	tiers  map[string]string // price id -> tier
}

func NewCatalog(cfg config.BillingConfig) Catalog {
	c := Catalog{
		prices: map[catalogKey]string{},
		tiers:  map[string]string{},
	}
	c.add(plans.TierPremium, CycleMonthly, cfg.PricePremiumMonthly)
	c.add(plans.TierPremium, CycleYearly, cfg.PricePremiumYearly)
	c.add(plans.TierEnterprise, CycleMonthly, cfg.PriceEnterpriseMonthly)
	c.add(plans.TierEnterprise, CycleYearly, cfg.PriceEnterpriseYearly)
	return c
}

func (c Catalog) add(tier, cycle, priceID string) {
	if priceID == "" {
		return
	}
	c.prices[catalogKey{tier, cycle}] = priceID
	c.tiers[priceID] = tier
}

// PriceFor resolves a (tier, cycle) pair to a processor price id. The free
// tier never resolves — there is nothing to check out.
func (c Catalog) PriceFor(tier, cycle string) (string, error) {
	if !plans.IsPaid(tier) || ParseCycle(cycle) == "" {
		return "", ErrInvalidTier
	}
	priceID, ok := c.prices[catalogKey{tier, cycle}]
	if !ok {
		return "", ErrInvalidTier
	}
	return priceID, nil
}

// TierForPrice maps a processor price id back to a local tier. Used by the
// webhook path when a subscription changes plan through the portal.
func (c Catalog) TierForPrice(priceID string) (string, error) {
	tier, ok := c.tiers[priceID]
	if !ok {
		return "", ErrUnknownPrice
	}
	return tier, nil
}
