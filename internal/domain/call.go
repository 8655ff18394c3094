package domain

import (
	"time"
)

// Call statuses.
const (
	CallStatusRinging  = "ringing"
	CallStatusAccepted = "accepted"
	CallStatusDeclined = "declined"
	CallStatusEnded    = "ended"
	CallStatusMissed   = "missed"
)

// Call kinds.
const (
	CallKindAudio = "audio"
	CallKindVideo = "video"
)

// Call is the durable record of one call attempt. Signaling itself travels
// over the realtime layer (call:incoming to the callee's devices, call:status
// to the chat room); this row is the log behind the call history screen.
type Call struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ChatID    uint       `gorm:"index;not null" json:"chatId"`
	CallerID  uint       `gorm:"index;not null" json:"callerId"`
	Kind      string     `gorm:"size:16;default:audio" json:"kind"`
	Status    string     `gorm:"size:16;default:ringing" json:"status"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
