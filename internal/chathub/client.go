package chathub

import "omnichat/backend/internal/models"

// Client is the interface for any type of live subscriber (e.g. WebSocket
// viewer, Telegram monitor). It abstracts the underlying connection so the
// hub can manage different client types uniformly.
type Client interface {
	// GetViewerID returns the unique identifier for this subscriber.
	GetViewerID() string

	// GetSendChannel returns the channel to which the ManagerService (hub)
	// delivers room events intended for this client. It is send-only.
	GetSendChannel() chan<- models.RoomEvent

	// Run starts the client's pumps, which push outgoing events to the
	// underlying connection and watch it for disconnects.
	Run()
	// Close shuts down the client's send channel and stops its write pump.
	Close()
}
