package controllers

import (
	"lms/middleware"
	"lms/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// UploadVideo stores a media file and returns its URL and public id for
// later attachment to a lecture.
func UploadVideo(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid file upload!", nil)
	}
	defer src.Close()

	uploaded, err := utils.UploadMedia(src, fileHeader.Filename)
	if err != nil {
		log.Printf("Media upload failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload media!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Media uploaded successfully.", fiber.Map{
		"url":      uploaded.SecureURL,
		"publicId": uploaded.PublicID,
	})
}
