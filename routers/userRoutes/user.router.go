package userRoutes

import (
	controllers "lms/controllers/user"
	"lms/middleware"
	validators "lms/validators/user"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up registration, login and profile routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Post("/signup", validators.Signup(), controllers.Signup)
	userGroup.Post("/login", validators.Login(), controllers.Login)
	userGroup.Post("/logout", controllers.Logout)

	userGroup.Get("/profile", middleware.JWTMiddleware, controllers.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, controllers.UpdateProfile)
}
