package studyplans

import "time"

type StudyPlan struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	Description string
	Subject     string
	TargetDate  *time.Time
	Archived    bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
