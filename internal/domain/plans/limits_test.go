package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitForStudyPlans(t *testing.T) {
	free := LimitFor(TierFree, ResourceStudyPlans)
	assert.False(t, free.Unlimited)
	assert.Equal(t, 3, free.Max)

	premium := LimitFor(TierPremium, ResourceStudyPlans)
	assert.True(t, premium.Unlimited)

	enterprise := LimitFor(TierEnterprise, ResourceStudyPlans)
	assert.True(t, enterprise.Unlimited)
}

func TestLimitForFlashcardDecks(t *testing.T) {
	assert.Equal(t, Limit{Max: 5}, LimitFor(TierFree, ResourceFlashcardDecks))
	assert.Equal(t, Limit{Max: 50}, LimitFor(TierPremium, ResourceFlashcardDecks))
	assert.True(t, LimitFor(TierEnterprise, ResourceFlashcardDecks).Unlimited)
}

func TestUnlimitedIsASentinel(t *testing.T) {
	// unlimited must allow any count regardless of Max
	l := Limit{Unlimited: true}
	assert.True(t, l.Allows(0))
	assert.True(t, l.Allows(1<<40))

	capped := Limit{Max: 3}
	assert.True(t, capped.Allows(2))
	assert.False(t, capped.Allows(3))
	assert.False(t, capped.Allows(4))
}

func TestUnknownTierGetsFreeLimits(t *testing.T) {
	assert.Equal(t, LimitFor(TierFree, ResourceStudyPlans), LimitFor("platinum", ResourceStudyPlans))
}

func TestParseTier(t *testing.T) {
	assert.Equal(t, TierPremium, ParseTier(" Premium "))
	assert.Equal(t, TierEnterprise, ParseTier("enterprise"))
	assert.Equal(t, TierFree, ParseTier("free"))
	assert.Equal(t, "", ParseTier("gold"))
}

func TestPlanLabel(t *testing.T) {
	assert.Equal(t, "Premium", PlanLabel(TierPremium))
	assert.Equal(t, "Enterprise", PlanLabel(TierEnterprise))
	assert.Equal(t, "Free", PlanLabel(TierFree))
	assert.Equal(t, "Free", PlanLabel(""))
}
