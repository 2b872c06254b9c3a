package chathub_test

import (
	"omnichat/backend/internal/models"
)

type MockClient struct {
	viewerID    string
	closed      bool
	RecvChannel chan models.RoomEvent
}

func newMockClient(viewerID string) *MockClient {
	return &MockClient{
		viewerID:    viewerID,
		RecvChannel: make(chan models.RoomEvent, 10),
	}
}

// newSlowMockClient has no receive buffer, so any broadcast to it would block.
func newSlowMockClient(viewerID string) *MockClient {
	return &MockClient{
		viewerID:    viewerID,
		RecvChannel: make(chan models.RoomEvent),
	}
}

func (c *MockClient) GetViewerID() string {
	return c.viewerID
}

func (c *MockClient) GetSendChannel() chan<- models.RoomEvent {
	return c.RecvChannel
}

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	c.closed = true
}
