package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"omnichat/backend/internal/chathub"
	"omnichat/backend/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and registers the viewer with the
// hub. A token from /anonid is optional; viewers without one get a fresh
// anonymous id. There is no replay: history comes from the query endpoints.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	viewerID := ""
	if tokenString := c.Query("token"); tokenString != "" {
		id, err := h.validateViewerToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}
		viewerID = id
	}
	if viewerID == "" {
		viewerID = uuid.New().String()
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &chathub.WebSocketClient{
		Hub:      h.Hub,
		ViewerID: viewerID,
		Conn:     conn,
		Send:     make(chan models.RoomEvent, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
