package middleware

import (
	"net/http"
	"time"

	"studyhub-app/database"
	"studyhub-app/internal/domain/plans"
	"studyhub-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// RequireTier gates a route on the caller's effective tier. It reads the
// locally cached subscription record, the same store the webhook dispatcher
// writes.
func RequireTier(minTier string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user users.User
		if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		if !tierAtLeast(user.EffectiveTier(time.Now()), minTier) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "Your plan does not include this feature",
			})
			return
		}

		c.Next()
	}
}

func tierAtLeast(tier, min string) bool {
	rank := map[string]int{
		plans.TierFree:       0,
		plans.TierPremium:    1,
		plans.TierEnterprise: 2,
	}
	return rank[tier] >= rank[min]
}
