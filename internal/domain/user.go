package domain

import (
	"strconv"
	"time"
)

// User is the durable account record. IsOnline and LastSeen are a
// best-effort presence snapshot written by the background presence worker;
// the in-memory registry is authoritative while the process is up.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:128" json:"email,omitempty"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	AvatarURL string    `gorm:"size:255" json:"avatarUrl,omitempty"`
	IsOnline  bool      `gorm:"default:false" json:"isOnline"`
	LastSeen  time.Time `json:"lastSeen"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PresenceKey is the user's identity in the realtime layer.
func (u *User) PresenceKey() string {
	return strconv.FormatUint(uint64(u.ID), 10)
}
