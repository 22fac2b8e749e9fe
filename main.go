package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"coursetracker/config"
	assignmentController "coursetracker/controllers/assignment"
	courseController "coursetracker/controllers/course"
	userController "coursetracker/controllers/user"
	"coursetracker/database"
	"coursetracker/routers/assignmentRoutes"
	"coursetracker/routers/courseRoutes"
	"coursetracker/routers/userRoutes"
	"coursetracker/services"
	"coursetracker/storage"
	"coursetracker/utils"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	blobs, err := storage.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to blob store: %v", err)
	}

	creds := services.NewCredentials(cfg.JWTKey, cfg.BcryptCost)
	tracker := services.NewTracker(db)
	attachments := services.NewAttachments(db, blobs)

	sweeper := utils.NewOrphanSweeper(db, blobs)
	sweeper.Start()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"info": "Course tracker API"})
	})

	userRoutes.SetupUserRoutes(app, userController.New(db, creds, tracker), creds)
	courseRoutes.SetupCourseRoutes(app, courseController.New(db))
	assignmentRoutes.SetupAssignmentRoutes(app, assignmentController.New(db, attachments))

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
