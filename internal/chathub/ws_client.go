package chathub

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"omnichat/backend/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WebSocketClient implements the Client interface for browser viewers.
// Viewers are receive-only: the read pump exists to keep the connection
// alive and to detect disconnects.
type WebSocketClient struct {
	ViewerID string
	Conn     *websocket.Conn
	Hub      *ManagerService
	Send     chan models.RoomEvent
}

func (c *WebSocketClient) GetViewerID() string                     { return c.ViewerID }
func (c *WebSocketClient) GetSendChannel() chan<- models.RoomEvent { return c.Send }

// Run starts the pumps for this connection.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the Send channel, which stops writePump.
// readPump stops on its own once the connection is closed.
func (c *WebSocketClient) Close() {
	close(c.Send)
}

// readPump drains the connection until it errors, then unregisters.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Viewers do not send application messages; anything read is
		// discarded. An error means the connection is gone.
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading from viewer %s: %v", c.ViewerID, err)
			}
			break
		}
	}
}

// writePump reads events from the Send channel and writes them to the socket.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed by the hub, close the WS connection.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("Error encoding event for viewer %s: %v", c.ViewerID, err)
				continue
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			// Ping to keep the connection alive.
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
