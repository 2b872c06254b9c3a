// Package telegram runs an optional ops monitor: a bot that joins the hub as
// a regular subscriber and forwards every stored message to an admin chat.
package telegram

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"omnichat/backend/internal/chathub"
	"omnichat/backend/internal/models"
)

// BotService owns the bot connection and the monitor subscriber.
type BotService struct {
	BotAPI      *tgbotapi.BotAPI
	Hub         *chathub.ManagerService
	AdminChatID int64
}

// NewBotService authorizes the bot.
func NewBotService(token string, adminChatID int64, hub *chathub.ManagerService) (*BotService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("INFO: Telegram monitor authorized on account %s", bot.Self.UserName)

	return &BotService{
		BotAPI:      bot,
		Hub:         hub,
		AdminChatID: adminChatID,
	}, nil
}

// Run registers the monitor client with the hub. From then on it receives
// the same fan-out as any WebSocket viewer.
func (s *BotService) Run() {
	client := &MonitorClient{
		BotAPI:      s.BotAPI,
		AdminChatID: s.AdminChatID,
		Send:        make(chan models.RoomEvent, 64),
	}

	s.Hub.RegisterCh <- client
	client.Run()
}
