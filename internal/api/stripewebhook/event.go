package stripewebhooks

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v75"
)

// The closed set of event types this service acts on. Everything else is
// acknowledged and ignored.
const (
	eventSubscriptionCreated      = "customer.subscription.created"
	eventSubscriptionUpdated      = "customer.subscription.updated"
	eventSubscriptionDeleted      = "customer.subscription.deleted"
	eventSubscriptionTrialWillEnd = "customer.subscription.trial_will_end"
)

// VerifiedEvent is a signature-checked event decoded once at the ingress
// boundary. Subscription is populated for the known types above and nil for
// unknown ones, which keeps the raw-blob handling out of the handlers.
type VerifiedEvent struct {
	ID           string
	Type         string
	Subscription *stripe.Subscription
	Raw          json.RawMessage
}

func parseEvent(event stripe.Event) (VerifiedEvent, error) {
	out := VerifiedEvent{
		ID:   event.ID,
		Type: string(event.Type),
		Raw:  event.Data.Raw,
	}

	switch out.Type {
	case eventSubscriptionCreated,
		eventSubscriptionUpdated,
		eventSubscriptionDeleted,
		eventSubscriptionTrialWillEnd:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return out, fmt.Errorf("failed to parse subscription payload: %w", err)
		}
		out.Subscription = &sub
	}

	return out, nil
}

func userIDFromMetadata(md map[string]string) uint {
	if md == nil {
		return 0
	}
	s := md["user_id"]
	if s == "" {
		return 0
	}
	uid, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(uid)
}
