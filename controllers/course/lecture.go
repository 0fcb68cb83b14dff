package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

func CreateLecture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	reqData, ok := c.Locals("validatedLecture").(*struct {
		Title string `json:"lectureTitle"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.CreatorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course creator can add lectures!", nil)
	}

	// Append at the end of the lecture sequence
	var count int64
	db.Model(&models.Lecture{}).Where("course_id = ?", course.ID).Count(&count)

	lecture := models.Lecture{
		CourseID: course.ID,
		Title:    reqData.Title,
		Position: int(count) + 1,
	}

	if err := db.Create(&lecture).Error; err != nil {
		log.Printf("Failed to create lecture for course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lecture created successfully.", lecture)
}

func GetCourseLectures(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
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

	var lectures []models.Lecture
	if err := db.Where("course_id = ?", course.ID).Order("position asc").Find(&lectures).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lectures!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lectures fetched!", fiber.Map{
		"lectures": lectures,
	})
}

// EditLecture updates title, video and free-preview flag of a lecture.
func EditLecture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	lectureID, ok := c.Locals("lectureID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	reqData, ok := c.Locals("validatedLectureEdit").(*struct {
		Title         *string `json:"lectureTitle"`
		VideoURL      *string `json:"videoUrl"`
		PublicID      *string `json:"publicId"`
		IsPreviewFree *bool   `json:"isPreviewFree"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.CreatorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course creator can edit lectures!", nil)
	}

	var lecture models.Lecture
	if err := db.Where("id = ? AND course_id = ?", lectureID, course.ID).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	if reqData.Title != nil {
		lecture.Title = *reqData.Title
	}
	if reqData.VideoURL != nil {
		lecture.VideoURL = *reqData.VideoURL
	}
	if reqData.PublicID != nil {
		lecture.PublicID = *reqData.PublicID
	}
	if reqData.IsPreviewFree != nil {
		lecture.IsPreviewFree = *reqData.IsPreviewFree
	}

	if err := db.Save(&lecture).Error; err != nil {
		log.Printf("Failed to update lecture %d: %v", lecture.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture updated successfully.", lecture)
}

// RemoveLecture deletes a lecture; stored video cleanup is best-effort.
func RemoveLecture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lectureID, ok := c.Locals("lectureID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var lecture models.Lecture
	if err := db.Where("id = ?", lectureID).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	var course models.Course
	if err := db.Where("id = ?", lecture.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.CreatorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course creator can remove lectures!", nil)
	}

	if err := db.Delete(&lecture).Error; err != nil {
		log.Printf("Failed to delete lecture %d: %v", lecture.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove lecture!", nil)
	}

	if lecture.PublicID != "" {
		if err := utils.DeleteVideo(lecture.PublicID); err != nil {
			log.Printf("Failed to delete lecture video %s: %v", lecture.PublicID, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture removed successfully.", nil)
}

func GetLectureByID(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lectureID, ok := c.Locals("lectureID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lecture models.Lecture
	if err := database.Database.Db.Where("id = ?", lectureID).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture fetched!", lecture)
}
