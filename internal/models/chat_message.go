package models

import "time"

// ChatMessage is one immutable entry in a room's append-only history.
// CreatedAt with the ID tiebreak defines the room's message ordering.
type ChatMessage struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// RoomID is the owning ChatRoom.
	RoomID uint `gorm:"not null;index:idx_room_msg" json:"room_id"`
	// SenderID is echoed from the inbound event for audit.
	SenderID string `gorm:"type:text;not null" json:"sender_id"`
	// Message is the text payload; a missing payload is substituted with
	// the platform package's sentinel before it ever reaches storage.
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"index:idx_room_msg" json:"created_at"`
}
