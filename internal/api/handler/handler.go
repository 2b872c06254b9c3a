package handler

import (
	"omnichat/backend/internal/chathub"
	"omnichat/backend/internal/models"
)

// Ingestor runs the store-then-broadcast pipeline for one inbound message.
type Ingestor interface {
	Handle(msg models.InboundMessage) error
}

// RoomReader serves the query endpoints.
type RoomReader interface {
	ListRooms() ([]models.ChatRoom, error)
	ListRoomMessages(roomID uint) ([]models.ChatMessage, error)
}

// Handler holds the hub and the pipeline/query collaborators.
type Handler struct {
	Hub    *chathub.ManagerService
	Ingest Ingestor
	Rooms  RoomReader

	// VerifyToken is the shared secret for the Facebook GET handshake.
	VerifyToken string
	// JWTSecret signs viewer identity tokens for the live interface.
	JWTSecret []byte
}

func NewHandler(hub *chathub.ManagerService, ingest Ingestor, rooms RoomReader, verifyToken, jwtSecret string) *Handler {
	return &Handler{
		Hub:         hub,
		Ingest:      ingest,
		Rooms:       rooms,
		VerifyToken: verifyToken,
		JWTSecret:   []byte(jwtSecret),
	}
}
