package stripewebhooks

import (
	"fmt"
	"io"
	"net/http"

	"studyhub-app/config"
	"studyhub-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75/webhook"
)

type Handler struct {
	Store   SubscriptionStore
	Catalog billing.Catalog
	Secret  string

	locks *subscriptionLocks
}

func NewHandler(store SubscriptionStore, catalog billing.Catalog, cfg config.BillingConfig) *Handler {
	return &Handler{
		Store:   store,
		Catalog: catalog,
		Secret:  cfg.WebhookSecret,
		locks:   newSubscriptionLocks(),
	}
}

// StripeWebhook is the single ingress for processor notifications. The raw
// body must reach signature verification byte-for-byte; nothing may decode
// or re-serialize it before webhook.ConstructEventWithOptions runs.
func (h *Handler) StripeWebhook(c *gin.Context) {
	if h.Secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.Secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		fmt.Println("❌ Stripe signature verification failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	verified, err := parseEvent(event)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse event payload"})
		return
	}

	// Verified and decoded: from here on the delivery is always
	// acknowledged. Handler failures are this service's problem, a retry
	// from the processor would only re-deliver the same payload.
	h.Dispatch(verified)

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// Dispatch routes a verified event to its handler. Errors are logged per
// handler and never propagate to the delivery response.
func (h *Handler) Dispatch(event VerifiedEvent) {
	unlock := h.locks.lock(h.lockKey(event))
	defer unlock()

	firstTime, err := h.Store.MarkEventProcessed(event.ID, event.Type)
	if err != nil {
		fmt.Printf("❌ Webhook %s (%s): failed to record event id: %v\n", event.ID, event.Type, err)
		return
	}
	if !firstTime {
		fmt.Printf("↩️  Webhook %s (%s): duplicate delivery, skipping\n", event.ID, event.Type)
		return
	}

	switch event.Type {
	case eventSubscriptionCreated:
		err = h.handleSubscriptionCreated(event.Subscription)
	case eventSubscriptionUpdated:
		err = h.handleSubscriptionUpdated(event.Subscription)
	case eventSubscriptionDeleted:
		err = h.handleSubscriptionDeleted(event.Subscription)
	case eventSubscriptionTrialWillEnd:
		// reserved for notifications, no state to mutate
		fmt.Printf("ℹ️  Webhook %s: trial ending for subscription %s\n", event.ID, event.Subscription.ID)
	default:
		fmt.Printf("ℹ️  Webhook %s: ignoring event type %s\n", event.ID, event.Type)
	}

	if err != nil {
		fmt.Printf("❌ Webhook %s (%s): %v\n", event.ID, event.Type, err)
	}
}

func (h *Handler) lockKey(event VerifiedEvent) string {
	if event.Subscription != nil && event.Subscription.ID != "" {
		return event.Subscription.ID
	}
	return "event:" + event.ID
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
