package ingest_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"omnichat/backend/internal/ingest"
	"omnichat/backend/internal/models"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ResolveRoom(p models.Platform, senderID string) (*models.ChatRoom, error) {
	args := m.Called(p, senderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRoom), args.Error(1)
}

func (m *MockStore) AppendMessage(roomID uint, senderID, text string) (*models.ChatMessage, error) {
	args := m.Called(roomID, senderID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatMessage), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEvent(event models.RoomEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

type MockReplier struct {
	Fired chan models.InboundMessage
}

func newMockReplier() *MockReplier {
	return &MockReplier{Fired: make(chan models.InboundMessage, 1)}
}

func (m *MockReplier) OnInbound(msg models.InboundMessage) {
	m.Fired <- msg
}

func TestHandle_StoresThenPublishes(t *testing.T) {
	store := new(MockStore)
	publisher := new(MockPublisher)
	svc := ingest.NewService(store, publisher, nil)

	room := &models.ChatRoom{ID: 7, Platform: models.PlatformLine, SenderID: "U1"}
	stored := &models.ChatMessage{ID: 11, RoomID: 7, SenderID: "U1", Message: "hi"}

	store.On("ResolveRoom", models.PlatformLine, "U1").Return(room, nil)
	store.On("AppendMessage", uint(7), "U1", "hi").Return(stored, nil)
	publisher.On("PublishEvent", models.RoomEvent{RoomID: 7, SenderID: "U1", Message: "hi"}).Return(nil)

	err := svc.Handle(models.InboundMessage{Platform: models.PlatformLine, SenderID: "U1", Text: "hi"})

	assert.NoError(t, err)
	store.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestHandle_RoomFailureAbortsBeforeAppend(t *testing.T) {
	store := new(MockStore)
	publisher := new(MockPublisher)
	svc := ingest.NewService(store, publisher, nil)

	store.On("ResolveRoom", models.PlatformLine, "U1").Return(nil, errors.New("db down"))

	err := svc.Handle(models.InboundMessage{Platform: models.PlatformLine, SenderID: "U1", Text: "hi"})

	assert.Error(t, err)
	store.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishEvent", mock.Anything)
}

func TestHandle_AppendFailureAbortsBeforePublish(t *testing.T) {
	store := new(MockStore)
	publisher := new(MockPublisher)
	svc := ingest.NewService(store, publisher, nil)

	room := &models.ChatRoom{ID: 7, Platform: models.PlatformWhatsApp, SenderID: "+66111"}
	store.On("ResolveRoom", models.PlatformWhatsApp, "+66111").Return(room, nil)
	store.On("AppendMessage", uint(7), "+66111", "hi").Return(nil, errors.New("insert failed"))

	err := svc.Handle(models.InboundMessage{Platform: models.PlatformWhatsApp, SenderID: "+66111", Text: "hi"})

	assert.Error(t, err)
	// A message must never be broadcast without being stored first.
	publisher.AssertNotCalled(t, "PublishEvent", mock.Anything)
}

func TestHandle_PublishFailureStillSucceeds(t *testing.T) {
	store := new(MockStore)
	publisher := new(MockPublisher)
	svc := ingest.NewService(store, publisher, nil)

	room := &models.ChatRoom{ID: 7, Platform: models.PlatformLine, SenderID: "U1"}
	stored := &models.ChatMessage{ID: 11, RoomID: 7, SenderID: "U1", Message: "hi"}
	store.On("ResolveRoom", models.PlatformLine, "U1").Return(room, nil)
	store.On("AppendMessage", uint(7), "U1", "hi").Return(stored, nil)
	publisher.On("PublishEvent", mock.Anything).Return(errors.New("redis down"))

	err := svc.Handle(models.InboundMessage{Platform: models.PlatformLine, SenderID: "U1", Text: "hi"})

	assert.NoError(t, err, "live delivery is best-effort once the message is durable")
}

func TestHandle_FiresReplierForFacebookOnly(t *testing.T) {
	store := new(MockStore)
	publisher := new(MockPublisher)
	replier := newMockReplier()
	svc := ingest.NewService(store, publisher, replier)

	fbRoom := &models.ChatRoom{ID: 1, Platform: models.PlatformFacebook, SenderID: "fb-1"}
	lineRoom := &models.ChatRoom{ID: 2, Platform: models.PlatformLine, SenderID: "U1"}
	store.On("ResolveRoom", models.PlatformFacebook, "fb-1").Return(fbRoom, nil)
	store.On("ResolveRoom", models.PlatformLine, "U1").Return(lineRoom, nil)
	store.On("AppendMessage", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.ChatMessage{RoomID: 1}, nil)
	publisher.On("PublishEvent", mock.Anything).Return(nil)

	fbMsg := models.InboundMessage{Platform: models.PlatformFacebook, SenderID: "fb-1", Text: "hello"}
	assert.NoError(t, svc.Handle(fbMsg))

	select {
	case fired := <-replier.Fired:
		assert.Equal(t, fbMsg, fired)
	case <-time.After(time.Second):
		t.Fatal("replier was not fired for a Facebook message")
	}

	assert.NoError(t, svc.Handle(models.InboundMessage{Platform: models.PlatformLine, SenderID: "U1", Text: "hello"}))
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, replier.Fired, "replier must not fire for non-Facebook platforms")
}
