package models

// InboundMessage is the canonical form of a platform webhook event after
// normalization. All downstream components consume this shape only.
type InboundMessage struct {
	Platform Platform `json:"platform"`
	SenderID string   `json:"sender_id"`
	Text     string   `json:"text"`
}

// RoomEvent is the serialized event pushed to every live subscriber after
// a message has been durably stored.
type RoomEvent struct {
	RoomID   uint   `json:"room_id"`
	SenderID string `json:"sender_id"`
	Message  string `json:"message"`
}
