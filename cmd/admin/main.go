package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"omnichat/backend/internal/config"
	"omnichat/backend/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: rooms, messages <room_id>")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "rooms":
		rooms, err := storageSvc.ListRooms()
		if err != nil {
			log.Fatalf("Error listing rooms: %v", err)
		}
		for _, room := range rooms {
			fmt.Printf("%d\t%s\t%s\t%s\n", room.ID, room.Name, room.Platform,
				room.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	case "messages":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin messages <room_id>")
			os.Exit(1)
		}
		roomID, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			fmt.Println("Invalid room id. Please provide an integer.")
			os.Exit(1)
		}
		history, err := storageSvc.ListRoomMessages(uint(roomID))
		if err != nil {
			log.Fatalf("Error listing messages: %v", err)
		}
		for _, msg := range history {
			fmt.Printf("%s\t%s\t%s\n", msg.CreatedAt.Format("2006-01-02 15:04:05"),
				msg.SenderID, msg.Message)
		}
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}
