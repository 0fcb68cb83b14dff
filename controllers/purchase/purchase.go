package controllers

import (
	"fmt"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/payment"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gateway is the slice of the payment adapter the purchase flow needs.
type Gateway interface {
	CreateCheckoutSession(req payment.SessionRequest) (*payment.CheckoutSession, error)
	VerifyWebhook(payload []byte, sigHeader string) (*payment.Event, error)
}

// Controller handles the purchase lifecycle: checkout initiation, webhook
// reconciliation and the direct (out-of-band) purchase path.
type Controller struct {
	gateway   Gateway
	clientURL string
}

func New(gateway Gateway, clientURL string) *Controller {
	return &Controller{gateway: gateway, clientURL: clientURL}
}

// CreateCheckoutSession creates a pending purchase and a hosted checkout
// session, and returns the redirect URL. The session is created before the
// purchase row is persisted, so a gateway failure leaves no purchase behind
// and no row ever exists without a payment id.
func (ctl *Controller) CreateCheckoutSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	session, err := ctl.gateway.CreateCheckoutSession(payment.SessionRequest{
		Amount:     int64(course.Price) * 100, // minor currency units
		Currency:   "inr",
		Name:       course.Title,
		ImageURL:   course.ThumbnailURL,
		SuccessURL: fmt.Sprintf("%s/course-progress/%d", ctl.clientURL, course.ID),
		CancelURL:  fmt.Sprintf("%s/course-detail/%d", ctl.clientURL, course.ID),
		Metadata: map[string]string{
			"courseId": fmt.Sprint(course.ID),
			"userId":   fmt.Sprint(userID),
		},
	})
	if err != nil {
		log.Printf("Checkout session creation failed for course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Payment gateway unavailable!", nil)
	}

	purchase := models.CoursePurchase{
		UserID:    userID,
		CourseID:  course.ID,
		Amount:    float64(course.Price),
		PaymentID: session.ID,
		Status:    models.PurchaseStatusPending,
	}
	if err := db.Create(&purchase).Error; err != nil {
		log.Printf("Failed to persist pending purchase for session %s: %v", session.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create purchase!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
		"url": session.URL,
	})
}

// Webhook reconciles an asynchronous gateway notification with the local
// purchase record. Gateways redeliver events, so every path here must be safe
// to repeat: unknown events are acknowledged, already-completed purchases are
// a no-op, and the pending-to-completed transition is a conditional update
// inside a single transaction so only one delivery ever applies it.
func (ctl *Controller) Webhook(c *fiber.Ctx) error {
	event, err := ctl.gateway.VerifyWebhook(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		log.Printf("Webhook verification failed: %v", err)
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if event.Type != payment.EventCheckoutCompleted {
		return c.SendStatus(fiber.StatusOK)
	}

	db := database.Database.Db

	var purchase models.CoursePurchase
	if err := db.Where("payment_id = ?", event.SessionID).First(&purchase).Error; err != nil {
		log.Printf("Webhook for unknown session %s", event.SessionID)
		return c.SendStatus(fiber.StatusNotFound)
	}

	if purchase.Status == models.PurchaseStatusCompleted {
		// Redelivered event, already applied.
		return c.SendStatus(fiber.StatusOK)
	}

	amount := purchase.Amount
	if event.AmountTotal > 0 {
		amount = float64(event.AmountTotal) / 100 // gateway reports minor units
	}

	completed := false
	err = db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.CoursePurchase{}).
			Where("id = ? AND status = ?", purchase.ID, models.PurchaseStatusPending).
			Updates(map[string]interface{}{
				"status": models.PurchaseStatusCompleted,
				"amount": amount,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// A concurrent delivery won the transition.
			return nil
		}
		completed = true

		if err := tx.Model(&models.Lecture{}).
			Where("course_id = ?", purchase.CourseID).
			Update("is_preview_free", true).Error; err != nil {
			return err
		}

		enrollment := models.Enrollment{UserID: purchase.UserID, CourseID: purchase.CourseID}
		return tx.Where(models.Enrollment{UserID: purchase.UserID, CourseID: purchase.CourseID}).
			FirstOrCreate(&enrollment).Error
	})
	if err != nil {
		log.Printf("Webhook completion failed for session %s: %v", event.SessionID, err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	if completed {
		go notifyEnrollment(purchase.UserID, purchase.CourseID)
	}

	return c.SendStatus(fiber.StatusOK)
}

// CreateCoursePurchase records a purchase confirmed out-of-band, bypassing
// the gateway callback. Repeated calls for the same user and course reuse the
// existing purchase and return the same payment id.
func (ctl *Controller) CreateCoursePurchase(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Reuse an existing purchase for this pair; only create when missing so
	// a repeated call returns the same payment id.
	var purchase models.CoursePurchase
	newPurchase := false
	if err := db.Where("user_id = ? AND course_id = ?", userID, course.ID).First(&purchase).Error; err != nil {
		newPurchase = true
		purchase = models.CoursePurchase{
			UserID:    userID,
			CourseID:  course.ID,
			PaymentID: uuid.NewString(),
			Amount:    float64(course.Price),
			Status:    models.PurchaseStatusCompleted,
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if newPurchase {
			if err := tx.Create(&purchase).Error; err != nil {
				return err
			}
		}

		enrollment := models.Enrollment{UserID: userID, CourseID: course.ID}
		if err := tx.Where(models.Enrollment{UserID: userID, CourseID: course.ID}).
			FirstOrCreate(&enrollment).Error; err != nil {
			return err
		}

		return tx.Model(&models.Lecture{}).
			Where("course_id = ?", course.ID).
			Update("is_preview_free", true).Error
	})
	if err != nil {
		log.Printf("Direct purchase failed for user %d course %d: %v", userID, course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete course purchase!", nil)
	}

	go notifyEnrollment(userID, course.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course purchased successfully!", fiber.Map{
		"paymentId": purchase.PaymentID,
		"courseId":  course.ID,
	})
}

// GetCourseDetailWithStatus returns the course with creator and lectures
// expanded, plus whether any purchase row exists for the caller. Note this
// checks existence, not completion, so a pending purchase reads as purchased.
func (ctl *Controller) GetCourseDetailWithStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Preload("Creator").Preload("Lectures", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position asc")
	}).Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var count int64
	db.Model(&models.CoursePurchase{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course detail fetched!", fiber.Map{
		"course":    course,
		"purchased": count > 0,
	})
}

// GetAllPurchasedCourses lists every completed purchase system-wide.
func (ctl *Controller) GetAllPurchasedCourses(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var purchases []models.CoursePurchase
	if err := database.Database.Db.Preload("Course").
		Where("status = ?", models.PurchaseStatusCompleted).
		Find(&purchases).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch purchases!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchased courses fetched!", fiber.Map{
		"purchasedCourse": purchases,
	})
}

// notifyEnrollment sends the enrollment confirmation email. Failures are
// logged and never affect the purchase outcome.
func notifyEnrollment(userID, courseID uint) {
	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		log.Printf("Enrollment notification: user %d not found: %v", userID, err)
		return
	}
	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		log.Printf("Enrollment notification: course %d not found: %v", courseID, err)
		return
	}

	if err := utils.SendEnrollmentEmail(user.Email, user.Name, course.Title); err != nil {
		log.Printf("Failed to send enrollment email to %s: %v", user.Email, err)
	}
}
