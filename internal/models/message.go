package models

import "gorm.io/gorm"

// Message is a persisted chat message between two accounts.
// The embedded gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt;
// CreatedAt is the ordering key for conversation history.
//
// Content and FileName are mutually exclusive: a text message carries
// Content, a file transfer carries the generated FileName under which the
// payload was stored.
type Message struct {
	gorm.Model

	SenderID   string `gorm:"type:text;not null;index:idx_conversation" json:"senderId"`
	ReceiverID string `gorm:"type:text;not null;index:idx_conversation" json:"receiverId"`
	Content    string `gorm:"type:text" json:"message,omitempty"`
	FileName   string `gorm:"type:text" json:"fileName,omitempty"`
}
