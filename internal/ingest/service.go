// Package ingest runs the pipeline for one normalized inbound event:
// resolve the room, append the message, publish the live event, and on the
// Facebook path hand the message to the reply trigger. Each step only runs
// if the previous one succeeded; a storage failure aborts before anything
// is broadcast.
package ingest

import (
	"fmt"
	"log"

	"omnichat/backend/internal/models"
)

// Store is the slice of the storage contract the pipeline needs.
type Store interface {
	ResolveRoom(p models.Platform, senderID string) (*models.ChatRoom, error)
	AppendMessage(roomID uint, senderID, text string) (*models.ChatMessage, error)
}

// EventPublisher delivers a stored-message event to the live broadcaster.
type EventPublisher interface {
	PublishEvent(event models.RoomEvent) error
}

// Replier consumes a stored inbound message and produces an automated reply.
// It must be fully isolated from the pipeline's outcome.
type Replier interface {
	OnInbound(msg models.InboundMessage)
}

type Service struct {
	Storage Store
	Events  EventPublisher
	Replier Replier
}

// NewService wires the pipeline. Replier may be nil when no automated reply
// collaborator is configured.
func NewService(s Store, events EventPublisher, replier Replier) *Service {
	return &Service{
		Storage: s,
		Events:  events,
		Replier: replier,
	}
}

// Handle processes one inbound message. The returned error is for logging
// only: the webhook handler acknowledges the provider regardless.
func (s *Service) Handle(msg models.InboundMessage) error {
	room, err := s.Storage.ResolveRoom(msg.Platform, msg.SenderID)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	stored, err := s.Storage.AppendMessage(room.ID, msg.SenderID, msg.Text)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	event := models.RoomEvent{
		RoomID:   stored.RoomID,
		SenderID: stored.SenderID,
		Message:  stored.Message,
	}
	if err := s.Events.PublishEvent(event); err != nil {
		// The message is durable; only live delivery was lost.
		log.Printf("ERROR: Failed to publish event for room %d: %v", stored.RoomID, err)
	}

	if msg.Platform == models.PlatformFacebook && s.Replier != nil {
		// Fire-and-forget: reply failures never reach the webhook response.
		go s.Replier.OnInbound(msg)
	}

	return nil
}
