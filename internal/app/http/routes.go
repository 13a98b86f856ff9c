package routes

import (
	"studyhub-app/config"
	"studyhub-app/database"
	adminapi "studyhub-app/internal/api/admin"
	authapi "studyhub-app/internal/api/auth"
	billingapi "studyhub-app/internal/api/billing"
	flashcardsapi "studyhub-app/internal/api/flashcards"
	stripewebhooks "studyhub-app/internal/api/stripewebhook"
	studyplansapi "studyhub-app/internal/api/studyplans"
	"studyhub-app/internal/api/users"
	"studyhub-app/internal/app/http/middleware"
	"studyhub-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, billingCfg config.BillingConfig) {
	billingHandler := billingapi.NewHandler(database.DB, billingCfg)
	webhookHandler := stripewebhooks.NewHandler(
		stripewebhooks.NewStore(database.DB),
		billingHandler.Catalog,
		billingCfg,
	)

	// Webhook stays outside every middleware group: verification needs the
	// raw body untouched.
	r.POST("/billing/webhook", webhookHandler.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/verify", users.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.POST("/billing/:userId/checkout", billingHandler.CreateCheckoutSession)
	auth.POST("/billing/:userId/portal", billingHandler.CreatePortalSession)
	auth.GET("/billing/:userId/subscription", billingHandler.GetSubscription)
	auth.GET("/billing/:userId/remote-snapshot", billingHandler.GetRemoteSnapshot)

	auth.GET("/study-plans", studyplansapi.ListStudyPlans)
	auth.POST("/study-plans", studyplansapi.CreateStudyPlan)
	auth.GET("/study-plans/:id", studyplansapi.GetStudyPlan)
	auth.PUT("/study-plans/:id", studyplansapi.UpdateStudyPlan)
	auth.DELETE("/study-plans/:id", studyplansapi.DeleteStudyPlan)

	auth.GET("/flashcards", flashcardsapi.ListDecks)
	auth.POST("/flashcards", flashcardsapi.CreateDeck)
	auth.GET("/flashcards/:id", flashcardsapi.GetDeck)
	auth.PUT("/flashcards/:id", flashcardsapi.UpdateDeck)
	auth.DELETE("/flashcards/:id", flashcardsapi.DeleteDeck)
	auth.POST("/flashcards/:id/cards", flashcardsapi.AddCard)
	auth.DELETE("/flashcards/:id/cards/:cardId", flashcardsapi.DeleteCard)

	// Paid users
	premium := auth.Group("/")
	premium.Use(middleware.RequireTier(plans.TierPremium))
	premium.POST("/flashcards/:id/publish", flashcardsapi.PublishDeck)
	premium.POST("/flashcards/:id/unpublish", flashcardsapi.UnpublishDeck)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.POST("/users/:id/subscription", adminapi.OverrideSubscription)
}
