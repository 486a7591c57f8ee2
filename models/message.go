package models

import "gorm.io/gorm"

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Message rows are append-only; an exchange writes two of them (the
// original and the rewrite), ordered by CreatedAt.
type Message struct {
	gorm.Model
	ConversationID uint   `gorm:"index;not null"`
	Role           string `gorm:"size:20;not null"` // "user" or "assistant"
	Content        string `gorm:"type:text;not null"`
}
