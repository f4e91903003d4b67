package main

import (
	"log"

	"lms/config"
	courseControllers "lms/controllers/course"
	enrollmentControllers "lms/controllers/enrollment"
	"lms/database"
	courseRoutes "lms/routers/courseRoutes"
	userRoutes "lms/routers/userRoutes"
	"lms/utils"
	"lms/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// The notification hub is built once here and handed to everything that
	// publishes through it.
	hub := ws.NewHub()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	courseService := courseControllers.Service{Hub: hub}
	enrollmentService := enrollmentControllers.Service{Hub: hub}

	courseRoutes.SetupCourseRoutes(app, &courseService, &enrollmentService)
	userRoutes.SetupUserRoutes(app, &enrollmentService)

	// Real-time notification channel
	app.Use("/ws", ws.UpgradeRequired)
	app.Get("/ws", ws.Serve(hub))

	// Hourly retry path for best-effort rating aggregation
	ratingCron := utils.InitializeRatingScheduler()
	defer ratingCron.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
