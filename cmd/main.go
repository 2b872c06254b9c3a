package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"omnichat/backend/internal/api/handler"
	"omnichat/backend/internal/chathub"
	"omnichat/backend/internal/config"
	"omnichat/backend/internal/ingest"
	"omnichat/backend/internal/models"
	"omnichat/backend/internal/reply"
	"omnichat/backend/internal/storage"
	"omnichat/backend/internal/telegram"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	if err := db.AutoMigrate(&models.ChatRoom{}, &models.ChatMessage{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting OmniChat Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	hub := chathub.NewManagerService()
	go hub.Run()
	go hub.ListenEvents(s.SubscribeEvents())

	var replier ingest.Replier
	if cfg.GenAPIKey != "" && cfg.FacebookPageToken != "" {
		generator := reply.NewChatCompletionClient(cfg.GenBaseURL, cfg.GenAPIKey, cfg.GenModel)
		sender := reply.NewFacebookSender(cfg.FacebookAPIBaseURL, cfg.FacebookPageToken)
		replier = reply.NewService(generator, sender)
	} else {
		log.Println("Warning: Automated Facebook replies disabled (GEN_API_KEY or FB_PAGE_TOKEN not set)")
	}

	pipeline := ingest.NewService(s, s, replier)

	if cfg.TelegramBotToken != "" && cfg.TelegramAdminChatID != 0 {
		botService, err := telegram.NewBotService(cfg.TelegramBotToken, cfg.TelegramAdminChatID, hub)
		if err != nil {
			log.Fatalf("Failed to start Telegram monitor: %v", err)
		}
		go botService.Run()
	}

	r := gin.Default()
	h := handler.NewHandler(hub, pipeline, s, cfg.FacebookVerifyToken, cfg.JWTSecret)

	r.GET("/webhook/facebook", h.VerifyFacebookWebhook)
	r.POST("/webhook/:platform", h.ReceiveWebhook)
	r.GET("/api/chat-rooms", h.GetChatRooms)
	r.GET("/api/chat-rooms/:roomId/messages", h.GetRoomMessages)
	r.GET("/api/health", h.GetHealth)
	r.GET("/anonid", h.GetAnonID)
	r.GET("/ws", h.ServeWebSocket)

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        cors.Default().Handler(r),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("Backend server is running on %s", cfg.HTTPAddr)
	log.Fatal(server.ListenAndServe())
}
