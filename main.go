package main

import (
	"lms/config"
	purchaseControllers "lms/controllers/purchase"
	"lms/database"
	"lms/payment"
	courseRoutes "lms/routers/courseRoutes"
	mediaRoutes "lms/routers/mediaRoutes"
	purchaseRoutes "lms/routers/purchaseRoutes"
	userRoutes "lms/routers/userRoutes"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.ClientURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// The gateway adapter is built once here and handed to the purchase
	// controller; nothing else holds gateway credentials.
	gateway := payment.NewGateway(config.AppConfig.StripeSecretKey, config.AppConfig.WebhookSecret)
	purchaseController := purchaseControllers.New(gateway, config.AppConfig.ClientURL)

	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	purchaseRoutes.SetupPurchaseRoutes(app, purchaseController)
	mediaRoutes.SetupMediaRoutes(app)

	utils.InitializePurchaseSweeper()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
