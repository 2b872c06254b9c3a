package models

import "time"

// Platform identifies the messaging provider a webhook event came from.
type Platform string

const (
	PlatformFacebook Platform = "facebook"
	PlatformLine     Platform = "line"
	PlatformWhatsApp Platform = "whatsapp"
)

// Valid reports whether p is one of the supported platforms.
func (p Platform) Valid() bool {
	switch p {
	case PlatformFacebook, PlatformLine, PlatformWhatsApp:
		return true
	}
	return false
}

// ChatRoom represents one conversation with an external contact.
// Exactly one room exists per (platform, sender_id) pair; the composite
// unique index backs the conditional-insert in storage.ResolveRoom.
type ChatRoom struct {
	// ID is the surrogate primary key, assigned on first creation.
	ID uint `gorm:"primaryKey" json:"id"`
	// Name is the human-readable label, "<platform> - <senderID>".
	Name string `gorm:"type:text;not null" json:"name"`
	// Platform is the messaging provider the contact belongs to.
	Platform Platform `gorm:"type:text;not null;uniqueIndex:ux_room_identity" json:"platform"`
	// SenderID is the provider-scoped external identity of the contact.
	SenderID string `gorm:"type:text;not null;uniqueIndex:ux_room_identity" json:"sender_id"`
	// CreatedAt is set once when the room is first created.
	CreatedAt time.Time `json:"created_at"`
}

// RoomName derives the room label used as the human-facing natural key.
func RoomName(p Platform, senderID string) string {
	return string(p) + " - " + senderID
}
