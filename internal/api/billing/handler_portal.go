package billing

import (
	"context"
	"net/http"
	"time"

	"studyhub-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	portalSession "github.com/stripe/stripe-go/v75/billingportal/session"
)

// CreatePortalSession returns a self-service management URL. Requires a
// processor customer, which only exists after a first successful checkout.
func (h *Handler) CreatePortalSession(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	var body struct {
		CustomerID string `json:"customer_id"`
	}
	// body is optional; ignore bind errors on an empty payload
	_ = c.ShouldBindJSON(&body)

	var user users.User
	if err := h.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	customerID := body.CustomerID
	if customerID == "" && user.StripeCustomerID != nil {
		customerID = *user.StripeCustomerID
	}
	if customerID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No Stripe customer yet (subscribe first)"})
		return
	}

	if h.Cfg.StripeSecretKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}
	stripe.Key = h.Cfg.StripeSecretKey

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(h.Cfg.AppURL + "/account"),
	}
	params.Context = ctx

	portal, err := portalSession.New(params)
	if err != nil {
		respondUpstreamError(c, "Could not create billing portal session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"redirect_url": portal.URL})
}
