package stripewebhooks

import (
	"errors"
	"time"

	"studyhub-app/internal/domain/billing"
	"studyhub-app/internal/domain/users"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionStore is the slice of persistence the event handlers need.
// Narrow on purpose: dispatch tests run against an in-memory fake.
type SubscriptionStore interface {
	UserByID(id uint) (*users.User, error)
	UserBySubscriptionID(subID string) (*users.User, error)

	// ApplySubscriptionState overwrites subscription fields on the user row.
	// Every handler writes absolute values; there are no increments.
	ApplySubscriptionState(userID uint, updates map[string]interface{}) error

	// MarkEventProcessed records the event id. Returns false when the id was
	// already recorded, i.e. this delivery is a duplicate.
	MarkEventProcessed(eventID, eventType string) (bool, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) SubscriptionStore {
	return &gormStore{db: db}
}

func (s *gormStore) UserByID(id uint) (*users.User, error) {
	var user users.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) UserBySubscriptionID(subID string) (*users.User, error) {
	var user users.User
	if err := s.db.Where("stripe_subscription_id = ?", subID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) ApplySubscriptionState(userID uint, updates map[string]interface{}) error {
	return s.db.Model(&users.User{}).
		Where("id = ?", userID).
		Updates(updates).Error
}

func (s *gormStore) MarkEventProcessed(eventID, eventType string) (bool, error) {
	res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&billing.ProcessedWebhookEvent{
		EventID:     eventID,
		Type:        eventType,
		ProcessedAt: time.Now(),
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IsNotFound hides the gorm sentinel from the handlers.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
