package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title    string `json:"courseTitle"`
		Category string `json:"category"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Title:     reqData.Title,
		Category:  reqData.Category,
		CreatorID: userID,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Failed to create course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created.", course)
}

func GetCreatorCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []models.Course
	if err := database.Database.Db.
		Where("creator_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetPublishedCourses is the public catalogue, no auth required.
func GetPublishedCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.Preload("Creator").
		Where("is_published = ? AND is_deleted = ?", true, false).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Published courses fetched!", fiber.Map{
		"courses": courses,
	})
}

// SearchCourses filters published courses by a free-text query, optional
// category list and price sort.
func SearchCourses(c *fiber.Ctx) error {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	categories := c.Query("categories")
	sortByPrice := c.Query("sortByPrice")

	db := database.Database.Db.Model(&models.Course{}).
		Where("is_published = ? AND is_deleted = ?", true, false)

	if query != "" {
		like := "%" + query + "%"
		db = db.Where("lower(title) LIKE ? OR lower(sub_title) LIKE ? OR lower(category) LIKE ?", like, like, like)
	}
	if categories != "" {
		db = db.Where("category IN ?", strings.Split(categories, ","))
	}

	switch sortByPrice {
	case "low":
		db = db.Order("price asc")
	case "high":
		db = db.Order("price desc")
	default:
		db = db.Order("created_at desc")
	}

	var courses []models.Course
	if err := db.Preload("Creator").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to search courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched!", fiber.Map{
		"courses": courses,
	})
}

func GetCourseByID(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Preload("Lectures", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position asc")
	}).Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched!", course)
}

// EditCourse updates course fields; only the creator may edit. A thumbnail
// file replaces the current one through the media store.
func EditCourse(c *fiber.Ctx) error {
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
	if course.CreatorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course creator can edit it!", nil)
	}

	if v := c.FormValue("courseTitle"); v != "" {
		course.Title = v
	}
	if v := c.FormValue("subTitle"); v != "" {
		course.SubTitle = v
	}
	if v := c.FormValue("description"); v != "" {
		course.Description = v
	}
	if v := c.FormValue("category"); v != "" {
		course.Category = v
	}
	if v := c.FormValue("courseLevel"); v != "" {
		course.Level = v
	}
	if price, ok := c.Locals("coursePrice").(uint); ok {
		course.Price = price
	}

	if fileHeader, err := c.FormFile("courseThumbnail"); err == nil {
		src, err := fileHeader.Open()
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid file upload!", nil)
		}
		defer src.Close()

		uploaded, err := utils.UploadMedia(src, fileHeader.Filename)
		if err != nil {
			log.Printf("Thumbnail upload failed for course %d: %v", course.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload thumbnail!", nil)
		}
		course.ThumbnailURL = uploaded.SecureURL
	}

	if err := db.Save(&course).Error; err != nil {
		log.Printf("Failed to update course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully.", course)
}

// TogglePublish publishes or unpublishes a course. Publishing requires at
// least one lecture.
func TogglePublish(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	publish := c.Query("publish") == "true"

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.CreatorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course creator can publish it!", nil)
	}

	if publish {
		var lectureCount int64
		db.Model(&models.Lecture{}).Where("course_id = ?", course.ID).Count(&lectureCount)
		if lectureCount == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot publish a course without lectures!", nil)
		}
	}

	course.IsPublished = publish
	if err := db.Save(&course).Error; err != nil {
		log.Printf("Failed to toggle publish for course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	message := "Course unpublished."
	if publish {
		message = "Course published."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, course)
}
