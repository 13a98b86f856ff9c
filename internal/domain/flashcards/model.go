package flashcards

import "time"

type Deck struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	Description string
	Published   bool `gorm:"not null;default:false"`
	Cards       []Card
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Card struct {
	ID        uint `gorm:"primaryKey"`
	DeckID    uint `gorm:"index;not null"`
	Front     string
	Back      string
	SortIndex int `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
