package models

import "gorm.io/gorm"

// Conversation pins the role/language settings a chat was started with.
// FromLang/ToLang store the raw widget values, sentinels included, so the
// client can restore its selectors exactly; UpdatedAt is bumped on every
// saved exchange and drives sidebar ordering.
type Conversation struct {
	gorm.Model
	UserID   uint      `gorm:"not null;index"`
	FromRole string    `gorm:"size:40;not null"`
	ToRole   string    `gorm:"size:40;not null"`
	FromLang string    `gorm:"size:16"`
	ToLang   string    `gorm:"size:16"`
	Messages []Message `gorm:"constraint:OnDelete:CASCADE"`
}
