package flashcards

import (
	"net/http"
	"time"

	"studyhub-app/database"
	"studyhub-app/internal/domain/flashcards"
	"studyhub-app/internal/domain/plans"
	"studyhub-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func userDeck(c *gin.Context, userID uint) (*flashcards.Deck, bool) {
	var deck flashcards.Deck
	if err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&deck).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
		return nil, false
	}
	return &deck, true
}

func ListDecks(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var decks []flashcards.Deck
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&decks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load decks"})
		return
	}

	c.JSON(http.StatusOK, decks)
}

func CreateDeck(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var body struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
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

	limit := plans.LimitFor(user.EffectiveTier(time.Now()), plans.ResourceFlashcardDecks)
	if !limit.Unlimited {
		var count int64
		database.DB.Model(&flashcards.Deck{}).
			Where("user_id = ?", userID).
			Count(&count)
		if !limit.Allows(count) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Flashcard deck limit reached for your plan",
				"max":   limit.Max,
			})
			return
		}
	}

	deck := flashcards.Deck{
		UserID:      userID,
		Title:       body.Title,
		Description: body.Description,
	}
	if err := database.DB.Create(&deck).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create deck"})
		return
	}

	c.JSON(http.StatusCreated, deck)
}

func GetDeck(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var deck flashcards.Deck
	if err := database.DB.
		Preload("Cards", func(db *gorm.DB) *gorm.DB { return db.Order("sort_index ASC") }).
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&deck).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
		return
	}

	c.JSON(http.StatusOK, deck)
}

func UpdateDeck(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	deck, ok := userDeck(c, userID)
	if !ok {
		return
	}

	var body struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
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

	if len(updates) > 0 {
		if err := database.DB.Model(deck).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update deck"})
			return
		}
	}

	c.JSON(http.StatusOK, deck)
}

func DeleteDeck(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	deck, ok := userDeck(c, userID)
	if !ok {
		return
	}

	database.DB.Where("deck_id = ?", deck.ID).Delete(&flashcards.Card{})
	if err := database.DB.Delete(deck).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete deck"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deck deleted"})
}

func AddCard(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	deck, ok := userDeck(c, userID)
	if !ok {
		return
	}

	var body struct {
		Front     string `json:"front" binding:"required"`
		Back      string `json:"back" binding:"required"`
		SortIndex int    `json:"sort_index"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid body"})
		return
	}

	card := flashcards.Card{
		DeckID:    deck.ID,
		Front:     body.Front,
		Back:      body.Back,
		SortIndex: body.SortIndex,
	}
	if err := database.DB.Create(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	c.JSON(http.StatusCreated, card)
}

func DeleteCard(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	deck, ok := userDeck(c, userID)
	if !ok {
		return
	}

	res := database.DB.
		Where("id = ? AND deck_id = ?", c.Param("cardId"), deck.ID).
		Delete(&flashcards.Card{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Card deleted"})
}

// PublishDeck makes a deck publicly shareable. Route is gated to paid tiers
// via middleware.RequireTier.
func PublishDeck(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	deck, ok := userDeck(c, userID)
	if !ok {
		return
	}

	if err := database.DB.Model(deck).Update("published", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish deck"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deck published"})
}

func UnpublishDeck(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	deck, ok := userDeck(c, userID)
	if !ok {
		return
	}

	if err := database.DB.Model(deck).Update("published", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unpublish deck"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deck unpublished"})
}
