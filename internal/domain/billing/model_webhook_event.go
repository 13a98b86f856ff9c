package billing

import "time"

// ProcessedWebhookEvent records a processor event id that has already been
// applied. Delivery is at-least-once; the primary key makes reprocessing a
// duplicate delivery a no-op.
type ProcessedWebhookEvent struct {
	EventID     string `gorm:"primaryKey;column:event_id"`
	Type        string `gorm:"column:type;index"`
	ProcessedAt time.Time
}

func (ProcessedWebhookEvent) TableName() string {
	return "processed_webhook_events"
}
