package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"omnichat/backend/internal/models"
)

type roomResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Platform  string `json:"platform"`
	SenderID  string `json:"sender_id"`
	CreatedAt string `json:"created_at"`
}

type messageResponse struct {
	ID        uint   `json:"id"`
	RoomID    uint   `json:"room_id"`
	SenderID  string `json:"sender_id"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// GetChatRooms returns every room, most recently created first.
func (h *Handler) GetChatRooms(c *gin.Context) {
	rooms, err := h.Rooms.ListRooms()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching chat rooms"})
		return
	}

	c.JSON(http.StatusOK, lo.Map(rooms, func(r models.ChatRoom, _ int) roomResponse {
		return roomResponse{
			ID:        r.ID,
			Name:      r.Name,
			Platform:  string(r.Platform),
			SenderID:  r.SenderID,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		}
	}))
}

// GetRoomMessages returns a room's history, oldest first.
func (h *Handler) GetRoomMessages(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Param("roomId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	history, err := h.Rooms.ListRoomMessages(uint(roomID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching chat messages"})
		return
	}

	c.JSON(http.StatusOK, lo.Map(history, func(m models.ChatMessage, _ int) messageResponse {
		return messageResponse{
			ID:        m.ID,
			RoomID:    m.RoomID,
			SenderID:  m.SenderID,
			Message:   m.Message,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		}
	}))
}

// GetHealth is the liveness probe.
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
