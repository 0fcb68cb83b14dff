package purchaseRoutes

import (
	controllers "lms/controllers/purchase"
	"lms/middleware"
	validators "lms/validators/purchase"

	"github.com/gofiber/fiber/v2"
)

// SetupPurchaseRoutes sets up the purchase lifecycle routes. The webhook is
// the only unauthenticated one; it is protected by signature verification.
func SetupPurchaseRoutes(app *fiber.App, ctl *controllers.Controller) {
	purchaseGroup := app.Group("/purchase")

	purchaseGroup.Post("/checkout/create-checkout-session", middleware.JWTMiddleware, validators.CheckoutSession(), ctl.CreateCheckoutSession)
	purchaseGroup.Post("/webhook", ctl.Webhook)
	purchaseGroup.Get("/course/:courseId/detail-with-status", middleware.JWTMiddleware, validators.CourseIDParam(), ctl.GetCourseDetailWithStatus)
	purchaseGroup.Get("/", middleware.JWTMiddleware, ctl.GetAllPurchasedCourses)
	purchaseGroup.Post("/payment/:courseId", middleware.JWTMiddleware, validators.CourseIDParam(), ctl.CreateCoursePurchase)
}
