package studyplans

import (
	"net/http"
	"time"

	"studyhub-app/database"
	"studyhub-app/internal/domain/plans"
	"studyhub-app/internal/domain/studyplans"
	"studyhub-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func ListStudyPlans(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var items []studyplans.StudyPlan
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load study plans"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// CreateStudyPlan is a consumer of the entitlement gate: the free tier tops
// out at a handful of plans, paid tiers are unlimited.
func CreateStudyPlan(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var body struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		Subject     string     `json:"subject"`
		TargetDate  *time.Time `json:"target_date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid body"})
		return
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	limit := plans.LimitFor(user.EffectiveTier(time.Now()), plans.ResourceStudyPlans)
	if !limit.Unlimited {
		var count int64
		database.DB.Model(&studyplans.StudyPlan{}).
			Where("user_id = ? AND archived = false", userID).
			Count(&count)
		if !limit.Allows(count) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Study plan limit reached for your plan",
				"max":   limit.Max,
			})
			return
		}
	}

	plan := studyplans.StudyPlan{
		UserID:      userID,
		Title:       body.Title,
		Description: body.Description,
		Subject:     body.Subject,
		TargetDate:  body.TargetDate,
	}
	if err := database.DB.Create(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create study plan"})
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func GetStudyPlan(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var plan studyplans.StudyPlan
	if err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&plan).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Study plan not found"})
		return
	}

	c.JSON(http.StatusOK, plan)
}

func UpdateStudyPlan(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var plan studyplans.StudyPlan
	if err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&plan).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Study plan not found"})
		return
	}

	var body struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Subject     *string    `json:"subject"`
		TargetDate  *time.Time `json:"target_date"`
		Archived    *bool      `json:"archived"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}

	updates := map[string]interface{}{}
	if body.Title != nil {
		updates["title"] = *body.Title
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}
	if body.Subject != nil {
		updates["subject"] = *body.Subject
	}
	if body.TargetDate != nil {
		updates["target_date"] = *body.TargetDate
	}
	if body.Archived != nil {
		updates["archived"] = *body.Archived
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&plan).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update study plan"})
			return
		}
	}

	c.JSON(http.StatusOK, plan)
}

func DeleteStudyPlan(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	res := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Delete(&studyplans.StudyPlan{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete study plan"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Study plan not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Study plan deleted"})
}
