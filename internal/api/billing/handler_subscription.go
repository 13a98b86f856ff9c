package billing

import (
	"net/http"

	"studyhub-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GetSubscription returns the locally cached subscription record. Fast path
// for UI gating; callers that suspect drift use the remote snapshot instead.
func (h *Handler) GetSubscription(c *gin.Context) {
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	var user users.User
	if err := h.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, BuildSubscriptionDTO(user))
}
