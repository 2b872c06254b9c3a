package telegram

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"omnichat/backend/internal/models"
)

// monitorViewerID keys the monitor in the hub's subscriber set. One monitor
// per process; a re-registration replaces the previous one.
const monitorViewerID = "telegram-monitor"

// MonitorClient implements chathub.Client on top of the Telegram Bot API.
type MonitorClient struct {
	BotAPI      *tgbotapi.BotAPI
	AdminChatID int64
	Send        chan models.RoomEvent
}

func (c *MonitorClient) GetViewerID() string                     { return monitorViewerID }
func (c *MonitorClient) GetSendChannel() chan<- models.RoomEvent { return c.Send }

// Run starts the write pump. There is no read pump: the monitor only
// receives fan-out.
func (c *MonitorClient) Run() {
	go c.writePump()
}

// Close closes the Send channel, which stops the write pump.
func (c *MonitorClient) Close() {
	close(c.Send)
}

// writePump forwards each room event to the admin chat. Delivery failures
// are logged and skipped like any other subscriber send failure.
func (c *MonitorClient) writePump() {
	defer log.Printf("INFO: Telegram monitor write pump stopped")

	for event := range c.Send {
		text := fmt.Sprintf("room %d | %s: %s", event.RoomID, event.SenderID, event.Message)
		msg := tgbotapi.NewMessage(c.AdminChatID, text)
		if _, err := c.BotAPI.Send(msg); err != nil {
			log.Printf("ERROR: Failed to forward event to admin chat: %v", err)
		}
	}
}
