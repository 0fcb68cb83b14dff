package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up course authoring and catalogue routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Public catalogue
	courseGroup.Get("/published", controllers.GetPublishedCourses)
	courseGroup.Get("/search", controllers.SearchCourses)

	// Authoring
	courseGroup.Post("/", middleware.JWTMiddleware, validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Get("/", middleware.JWTMiddleware, controllers.GetCreatorCourses)
	courseGroup.Get("/:courseId", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.GetCourseByID)
	courseGroup.Put("/:courseId", middleware.JWTMiddleware, validators.CourseIDParam(), validators.EditCourse(), controllers.EditCourse)
	courseGroup.Patch("/:courseId/publish", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.TogglePublish)

	// Lectures
	courseGroup.Post("/:courseId/lecture", middleware.JWTMiddleware, validators.CourseIDParam(), validators.CreateLecture(), controllers.CreateLecture)
	courseGroup.Get("/:courseId/lecture", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.GetCourseLectures)
	courseGroup.Post("/:courseId/lecture/:lectureId", middleware.JWTMiddleware, validators.CourseIDParam(), validators.LectureIDParam(), validators.EditLecture(), controllers.EditLecture)
	courseGroup.Delete("/lecture/:lectureId", middleware.JWTMiddleware, validators.LectureIDParam(), controllers.RemoveLecture)
	courseGroup.Get("/lecture/:lectureId", middleware.JWTMiddleware, validators.LectureIDParam(), controllers.GetLectureByID)
}
