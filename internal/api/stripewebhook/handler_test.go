package stripewebhooks

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"studyhub-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func webhookRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/billing/webhook", h.StripeWebhook)
	return r
}

const createdPayload = `{
  "id": "evt_http_1",
  "object": "event",
  "type": "customer.subscription.created",
  "data": {
    "object": {
      "id": "sub_1",
      "object": "subscription",
      "status": "active",
      "customer": "cus_1",
      "current_period_start": 1700000000,
      "current_period_end": 1702592000,
      "cancel_at_period_end": false,
      "metadata": {"user_id": "1", "tier": "premium", "billing_cycle": "monthly"}
    }
  }
}`

func TestWebhookValidSignature(t *testing.T) {
	user := freeUser(1)
	store := newFakeStore(user)
	h := testHandler(store)
	r := webhookRouter(h)

	payload := []byte(createdPayload)
	req := httptest.NewRequest(http.MethodPost, "/billing/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signPayload(payload, h.Secret, time.Now()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received": true}`, w.Body.String())

	assert.Equal(t, users.StatusActive, user.SubscriptionStatus)
	assert.Equal(t, "premium", user.Tier)
	require.NotNil(t, user.StripeSubscriptionID)
	assert.Equal(t, "sub_1", *user.StripeSubscriptionID)
}

func TestWebhookTamperedBodyRejected(t *testing.T) {
	user := freeUser(1)
	store := newFakeStore(user)
	h := testHandler(store)
	r := webhookRouter(h)

	payload := []byte(createdPayload)
	header := signPayload(payload, h.Secret, time.Now())

	// flip the payload after signing
	tampered := bytes.Replace(payload, []byte(`"tier": "premium"`), []byte(`"tier": "enterprise"`), 1)
	req := httptest.NewRequest(http.MethodPost, "/billing/webhook", bytes.NewReader(tampered))
	req.Header.Set("Stripe-Signature", header)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// zero side effects on the subscription record
	assert.Equal(t, 0, store.applies)
	assert.Empty(t, store.processed)
	assert.Equal(t, users.StatusInactive, user.SubscriptionStatus)
	assert.Equal(t, "free", user.Tier)
	assert.Nil(t, user.StripeSubscriptionID)
}

func TestWebhookWrongSecretRejected(t *testing.T) {
	store := newFakeStore(freeUser(1))
	h := testHandler(store)
	r := webhookRouter(h)

	payload := []byte(createdPayload)
	req := httptest.NewRequest(http.MethodPost, "/billing/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signPayload(payload, "whsec_other", time.Now()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, store.applies)
}

func TestWebhookMissingSignatureRejected(t *testing.T) {
	store := newFakeStore(freeUser(1))
	h := testHandler(store)
	r := webhookRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/billing/webhook", bytes.NewReader([]byte(createdPayload)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, store.applies)
}

func TestWebhookUnknownTypeAcknowledged(t *testing.T) {
	store := newFakeStore(freeUser(1))
	h := testHandler(store)
	r := webhookRouter(h)

	payload := []byte(`{"id": "evt_x", "object": "event", "type": "invoice.finalized", "data": {"object": {}}}`)
	req := httptest.NewRequest(http.MethodPost, "/billing/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signPayload(payload, h.Secret, time.Now()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// unknown types are acknowledged so the processor stops retrying
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, store.applies)
}
