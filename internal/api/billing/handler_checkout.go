package billing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"studyhub-app/config"
	"studyhub-app/internal/domain/billing"
	"studyhub-app/internal/domain/plans"
	"studyhub-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

// CreateCheckoutSession mints a hosted checkout session for a (tier, cycle)
// pair. It never touches the subscription record: activation only happens
// when the subscription.created webhook confirms payment.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	var body struct {
		Tier         string `json:"tier"`
		BillingCycle string `json:"billing_cycle"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid body"})
		return
	}

	tier := plans.ParseTier(body.Tier)
	cycle := billing.ParseCycle(body.BillingCycle)
	priceID, err := h.Catalog.PriceFor(tier, cycle)
	if err != nil {
		// catalog miss: recoverable 4xx, and no processor call was made
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown tier/billing cycle"})
		return
	}

	var user users.User
	if err := h.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if !user.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{"error": "Please verify your email first"})
		return
	}

	if h.Cfg.StripeSecretKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}
	stripe.Key = h.Cfg.StripeSecretKey

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	params := buildCheckoutParams(user, priceID, tier, cycle, h.Cfg)
	params.Context = ctx

	s, err := checkoutsession.New(params)
	if err != nil {
		respondUpstreamError(c, "Failed to create checkout session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": s.ID, "redirect_url": s.URL})
}

// buildCheckoutParams assembles the session request. metadata carries the
// only correlation channel back to the local user: subscription.created is
// the one event guaranteed to echo it.
func buildCheckoutParams(user users.User, priceID, tier, cycle string, cfg config.BillingConfig) *stripe.CheckoutSessionParams {
	metadata := map[string]string{
		"user_id":       fmt.Sprint(user.ID),
		"tier":          tier,
		"billing_cycle": cycle,
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(cfg.AppURL + "/account?checkout=success"),
		CancelURL:  stripe.String(cfg.AppURL + "/account?checkout=cancelled"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},

		ClientReferenceID: stripe.String(fmt.Sprint(user.ID)),

		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
		Metadata: metadata,
	}

	// reuse the processor customer once a previous cycle created one
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		params.Customer = stripe.String(*user.StripeCustomerID)
	} else {
		params.CustomerEmail = stripe.String(user.Email)
	}

	return params
}

// respondUpstreamError surfaces a processor failure with its diagnostic code
// attached for operators, without leaking the raw message to end users.
func respondUpstreamError(c *gin.Context, msg string, err error) {
	fmt.Printf("❌ Stripe error: %v\n", err)

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": msg, "code": string(stripeErr.Code)})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": msg})
}
