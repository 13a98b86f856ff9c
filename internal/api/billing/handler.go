package billing

import (
	"net/http"
	"strconv"

	"studyhub-app/config"
	"studyhub-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB      *gorm.DB
	Cfg     config.BillingConfig
	Catalog billing.Catalog
}

func NewHandler(db *gorm.DB, cfg config.BillingConfig) *Handler {
	return &Handler{
		DB:      db,
		Cfg:     cfg,
		Catalog: billing.NewCatalog(cfg),
	}
}

// pathUserID parses :userId and checks the caller is that user or an admin.
func pathUserID(c *gin.Context) (uint, bool) {
	raw := c.Param("userId")
	id64, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id64 == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	userID := uint(id64)

	if c.GetUint("user_id") != userID && c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return 0, false
	}
	return userID, true
}
