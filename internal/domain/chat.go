package domain

import (
	"strconv"
	"time"
)

// Chat is one conversation, direct or group. Participants is the durable
// membership list used for authorization; it is deliberately independent of
// the realtime room subscription (a participant who never opened the chat is
// not subscribed to its room).
type Chat struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:128" json:"name,omitempty"`
	IsGroup      bool      `gorm:"default:false" json:"isGroup"`
	CreatorID    uint      `gorm:"index" json:"creatorId"`
	Participants []User    `gorm:"many2many:chat_participants" json:"participants,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RoomID is the chat's identity in the realtime layer.
func (c *Chat) RoomID() string {
	return strconv.FormatUint(uint64(c.ID), 10)
}
