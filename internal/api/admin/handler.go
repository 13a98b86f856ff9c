package admin

import (
	"net/http"
	"time"

	"studyhub-app/database"
	"studyhub-app/internal/domain/plans"
	"studyhub-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID                   uint       `json:"id"`
	Name                 string     `json:"name"`
	Lastname             string     `json:"lastname"`
	Email                string     `json:"email"`
	Role                 string     `json:"role"`
	IsVerified           bool       `json:"is_verified"`
	SubscriptionStatus   string     `json:"subscription_status"`
	Tier                 string     `json:"tier"`
	StripeCustomerID     *string    `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID *string    `json:"stripe_subscription_id,omitempty"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end,omitempty"`
	UnmanagedOverride    bool       `json:"unmanaged_override"`
}

func ListAllUsers(c *gin.Context) {
	var all []users.User
	err := database.DB.Find(&all).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var adminUsers []AdminUser
	for _, u := range all {
		adminUsers = append(adminUsers, AdminUser{
			ID:                   u.ID,
			Name:                 u.Name,
			Lastname:             u.Lastname,
			Email:                u.Email,
			Role:                 u.Role,
			IsVerified:           u.IsVerified,
			SubscriptionStatus:   u.SubscriptionStatus,
			Tier:                 u.Tier,
			StripeCustomerID:     u.StripeCustomerID,
			StripeSubscriptionID: u.StripeSubscriptionID,
			CurrentPeriodEnd:     u.CurrentPeriodEnd,
			UnmanagedOverride:    u.UnmanagedOverride,
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}

func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// OverrideSubscription writes the subscription record directly, bypassing
// the webhook path. Always stamps unmanaged_override so reconciliation can
// tell hand-made state from processor-backed state; the next webhook for
// this user clears the flag.
func OverrideSubscription(c *gin.Context) {
	userID := c.Param("id")

	var body struct {
		Status             string     `json:"status"`
		Tier               string     `json:"tier"`
		SubscriptionID     *string    `json:"subscription_id"`
		CurrentPeriodStart *time.Time `json:"current_period_start"`
		CurrentPeriodEnd   *time.Time `json:"current_period_end"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{
		"unmanaged_override": true,
	}

	if body.Status != "" {
		switch body.Status {
		case users.StatusInactive, users.StatusActive, users.StatusPastDue, users.StatusCancelled:
			updates["subscription_status"] = body.Status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
			return
		}
	}
	if body.Tier != "" {
		tier := plans.ParseTier(body.Tier)
		if tier == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown tier"})
			return
		}
		updates["tier"] = tier
	}
	if body.SubscriptionID != nil {
		updates["stripe_subscription_id"] = *body.SubscriptionID
	}
	if body.CurrentPeriodStart != nil {
		updates["current_period_start"] = *body.CurrentPeriodStart
	}
	if body.CurrentPeriodEnd != nil {
		updates["current_period_end"] = *body.CurrentPeriodEnd
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", user.ID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to override subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription overridden", "unmanaged_override": true})
}
