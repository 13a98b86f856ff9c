package users

import (
	"time"

	"studyhub-app/internal/domain/plans"
)

type MeResponse struct {
	User    UserDTO    `json:"user"`
	Billing BillingDTO `json:"billing"`
	Limits  LimitsDTO  `json:"limits"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Lastname   string `json:"lastname"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

/* ---------- BILLING ---------- */

type BillingDTO struct {
	Status               string     `json:"status"`
	Tier                 string     `json:"tier"`
	PlanLabel            string     `json:"plan_label"`
	CurrentPeriodStart   *time.Time `json:"current_period_start"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end"`
	CancelAtPeriodEnd    bool       `json:"cancel_at_period_end"`
	StripeSubscriptionID *string    `json:"stripe_subscription_id"`
}

/* ---------- LIMITS ---------- */

type LimitsDTO struct {
	StudyPlans     plans.Limit `json:"study_plans"`
	FlashcardDecks plans.Limit `json:"flashcard_decks"`
}
