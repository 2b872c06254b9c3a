package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"omnichat/backend/internal/models"
)

// EventsChannel is the Redis pub/sub channel carrying stored-message events
// from the ingestion pipeline to every hub instance.
const EventsChannel = "chat:events"

// Storage is the persistence contract used by the ingestion pipeline and the
// query handlers.
type Storage interface {
	ResolveRoom(p models.Platform, senderID string) (*models.ChatRoom, error)
	AppendMessage(roomID uint, senderID, text string) (*models.ChatMessage, error)

	ListRooms() ([]models.ChatRoom, error)
	ListRoomMessages(roomID uint) ([]models.ChatMessage, error)

	PublishEvent(event models.RoomEvent) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// ResolveRoom returns the single room for (platform, senderID), creating it
// on first contact. The insert runs with ON CONFLICT DO NOTHING against the
// (platform, sender_id) unique index, so concurrent first-contact events race
// safely: the loser's insert is a no-op and it re-reads the winner's row.
func (s *Service) ResolveRoom(p models.Platform, senderID string) (*models.ChatRoom, error) {
	room := models.ChatRoom{
		Name:     models.RoomName(p, senderID),
		Platform: p,
		SenderID: senderID,
	}

	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "platform"}, {Name: "sender_id"}},
		DoNothing: true,
	}).Create(&room).Error
	if err != nil {
		log.Printf("ERROR: Failed to upsert room for %s/%s: %v", p, senderID, err)
		return nil, fmt.Errorf("resolve room: %w", err)
	}

	if room.ID == 0 {
		// Conflict path: the room already existed, fetch its id.
		if err := s.DB.Where("platform = ? AND sender_id = ?", p, senderID).
			First(&room).Error; err != nil {
			log.Printf("ERROR: Failed to load existing room for %s/%s: %v", p, senderID, err)
			return nil, fmt.Errorf("resolve room: %w", err)
		}
	}

	return &room, nil
}

// AppendMessage writes one immutable message row for the given room.
func (s *Service) AppendMessage(roomID uint, senderID, text string) (*models.ChatMessage, error) {
	msg := models.ChatMessage{
		RoomID:   roomID,
		SenderID: senderID,
		Message:  text,
	}

	if err := s.DB.Create(&msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for room %d: %v", roomID, err)
		return nil, fmt.Errorf("append message: %w", err)
	}

	return &msg, nil
}

// ListRooms returns every room, most recently created first.
func (s *Service) ListRooms() ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	if err := s.DB.Order("created_at desc").Find(&rooms).Error; err != nil {
		log.Printf("ERROR: Failed to list rooms: %v", err)
		return nil, err
	}
	return rooms, nil
}

// ListRoomMessages returns a room's history, oldest first. Ties on created_at
// break on insertion order via the id.
func (s *Service) ListRoomMessages(roomID uint) ([]models.ChatMessage, error) {
	var history []models.ChatMessage
	if err := s.DB.Where("room_id = ?", roomID).
		Order("created_at asc").
		Order("id asc").
		Find(&history).Error; err != nil {
		log.Printf("ERROR: Failed to get chat history for room %d: %v", roomID, err)
		return nil, err
	}
	return history, nil
}

// PublishEvent publishes a stored-message event to Redis Pub/Sub. The hub's
// listener on EventsChannel fans it out to the local subscriber set.
func (s *Service) PublishEvent(event models.RoomEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := s.Redis.Publish(s.Ctx, EventsChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	return nil
}

// SubscribeEvents subscribes to the broadcast channel.
func (s *Service) SubscribeEvents() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, EventsChannel)
}
