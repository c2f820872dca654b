package main

import (
	"log"
	"os"

	"reelstgram-backend/internal/analytics"
	"reelstgram-backend/internal/channels"
	"reelstgram-backend/internal/controllers"
	"reelstgram-backend/internal/feed"
	"reelstgram-backend/internal/repository"
	"reelstgram-backend/internal/routes"
	"reelstgram-backend/internal/storage"
	"reelstgram-backend/internal/store"
	"reelstgram-backend/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	repository.Connect()
	storage.Init()

	st := store.NewDefault()
	service := channels.NewService(st)
	if err := service.Migrate(); err != nil {
		log.Fatalf("storage migration failed: %v", err)
	}

	events := analytics.NewLogger(st)
	feeds := feed.NewManager()
	controllers.Setup(service, events, feeds)

	utils.StartStatisticsTask(service, events)
	utils.StartSessionSweeper(feeds)

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowCredentials: true,
	}))

	if os.Getenv("STORAGE_DRIVER") != "minio" {
		uploadsDir := os.Getenv("UPLOADS_DIR")
		if uploadsDir == "" {
			uploadsDir = "uploads"
		}
		app.Get("/uploads/*", static.New(uploadsDir))
	}

	routes.Setup(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	app.Listen(":" + port)
}
