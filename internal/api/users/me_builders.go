package users

import (
	"time"

	"studyhub-app/internal/domain/plans"
	"studyhub-app/internal/domain/users"
)

func BuildBillingDTO(u users.User) BillingDTO {
	return BillingDTO{
		Status:               u.SubscriptionStatus,
		Tier:                 u.Tier,
		PlanLabel:            plans.PlanLabel(u.Tier),
		CurrentPeriodStart:   u.CurrentPeriodStart,
		CurrentPeriodEnd:     u.CurrentPeriodEnd,
		CancelAtPeriodEnd:    u.CancelAtPeriodEnd,
		StripeSubscriptionID: u.StripeSubscriptionID,
	}
}

func BuildLimitsDTO(now time.Time, u users.User) LimitsDTO {
	tier := u.EffectiveTier(now)
	return LimitsDTO{
		StudyPlans:     plans.LimitFor(tier, plans.ResourceStudyPlans),
		FlashcardDecks: plans.LimitFor(tier, plans.ResourceFlashcardDecks),
	}
}
