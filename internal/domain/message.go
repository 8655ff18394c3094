package domain

import (
	"time"
)

// Message kinds.
const (
	MessageKindText  = "text"
	MessageKindImage = "image"
	MessageKindAudio = "audio"
	MessageKindFile  = "file"
)

// Reaction is one user's emoji reaction on a message.
type Reaction struct {
	UserID uint   `json:"userId"`
	Emoji  string `json:"emoji"`
}

// Message is the durable chat message. Reactions, ReadBy and DeliveredTo are
// stored as JSON columns; they are small per-message sets, not separate
// tables.
type Message struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ChatID      uint       `gorm:"index;not null" json:"chatId"`
	SenderID    uint       `gorm:"index;not null" json:"senderId"`
	Kind        string     `gorm:"size:16;default:text" json:"kind"`
	Content     string     `gorm:"type:text" json:"content"`
	Reactions   []Reaction `gorm:"serializer:json" json:"reactions,omitempty"`
	ReadBy      []uint     `gorm:"serializer:json" json:"readBy,omitempty"`
	DeliveredTo []uint     `gorm:"serializer:json" json:"deliveredTo,omitempty"`
	Edited      bool       `gorm:"default:false" json:"edited"`
	Deleted     bool       `gorm:"default:false" json:"deleted"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// HasReadBy reports whether userID already appears in the read set.
func (m *Message) HasReadBy(userID uint) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}

// HasDeliveredTo reports whether userID already appears in the delivery set.
func (m *Message) HasDeliveredTo(userID uint) bool {
	for _, id := range m.DeliveredTo {
		if id == userID {
			return true
		}
	}
	return false
}
