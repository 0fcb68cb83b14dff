package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.Lecture{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseGroup := app.Group("/course")
	courseGroup.Get("/published", GetPublishedCourses)
	courseGroup.Get("/search", SearchCourses)
	courseGroup.Post("/", middleware.JWTMiddleware, validators.CreateCourse(), CreateCourse)
	courseGroup.Get("/", middleware.JWTMiddleware, GetCreatorCourses)
	courseGroup.Get("/:courseId", middleware.JWTMiddleware, validators.CourseIDParam(), GetCourseByID)
	courseGroup.Patch("/:courseId/publish", middleware.JWTMiddleware, validators.CourseIDParam(), TogglePublish)
	courseGroup.Post("/:courseId/lecture", middleware.JWTMiddleware, validators.CourseIDParam(), validators.CreateLecture(), CreateLecture)
	courseGroup.Get("/:courseId/lecture", middleware.JWTMiddleware, validators.CourseIDParam(), GetCourseLectures)

	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: "Instructor", Email: email, Password: "irrelevant", Role: "instructor"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func authRequest(t *testing.T, user models.User, method, target string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})

	return req
}

func TestCreateCourse(t *testing.T) {
	app, db := setupTest(t)
	user := seedUser(t, db, "teacher@example.com")

	resp, err := app.Test(authRequest(t, user, "POST", "/course/", fiber.Map{
		"courseTitle": "Intro to Go",
		"category":    "Programming",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var course models.Course
	require.NoError(t, db.Where("title = ?", "Intro to Go").First(&course).Error)
	assert.Equal(t, user.ID, course.CreatorID)
	assert.False(t, course.IsPublished)
}

func TestCreateCourseValidation(t *testing.T) {
	app, db := setupTest(t)
	user := seedUser(t, db, "teacher@example.com")

	resp, err := app.Test(authRequest(t, user, "POST", "/course/", fiber.Map{
		"courseTitle": "",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestPublishRequiresLecture(t *testing.T) {
	app, db := setupTest(t)
	user := seedUser(t, db, "teacher@example.com")

	course := models.Course{Title: "Empty Course", Category: "Misc", CreatorID: user.ID}
	require.NoError(t, db.Create(&course).Error)

	target := fmt.Sprintf("/course/%d/publish?publish=true", course.ID)
	resp, err := app.Test(authRequest(t, user, "PATCH", target, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	require.NoError(t, db.Create(&models.Lecture{CourseID: course.ID, Title: "First", Position: 1}).Error)

	resp, err = app.Test(authRequest(t, user, "PATCH", target, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.Course
	require.NoError(t, db.First(&updated, course.ID).Error)
	assert.True(t, updated.IsPublished)
}

func TestPublishOnlyByCreator(t *testing.T) {
	app, db := setupTest(t)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	course := models.Course{Title: "Owned", Category: "Misc", CreatorID: owner.ID}
	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Create(&models.Lecture{CourseID: course.ID, Title: "First", Position: 1}).Error)

	target := fmt.Sprintf("/course/%d/publish?publish=true", course.ID)
	resp, err := app.Test(authRequest(t, other, "PATCH", target, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestSearchCoursesOnlyPublished(t *testing.T) {
	app, db := setupTest(t)
	user := seedUser(t, db, "teacher@example.com")

	published := models.Course{Title: "Go Basics", Category: "Programming", CreatorID: user.ID, IsPublished: true, Price: 100}
	draft := models.Course{Title: "Go Drafts", Category: "Programming", CreatorID: user.ID, IsPublished: false}
	require.NoError(t, db.Create(&published).Error)
	require.NoError(t, db.Create(&draft).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/course/search?query=go", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Courses []models.Course `json:"courses"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data.Courses, 1)
	assert.Equal(t, "Go Basics", body.Data.Courses[0].Title)
}

func TestCreateLectureAppendsPosition(t *testing.T) {
	app, db := setupTest(t)
	user := seedUser(t, db, "teacher@example.com")

	course := models.Course{Title: "Sequenced", Category: "Misc", CreatorID: user.ID}
	require.NoError(t, db.Create(&course).Error)

	target := fmt.Sprintf("/course/%d/lecture", course.ID)
	for i, title := range []string{"One", "Two", "Three"} {
		resp, err := app.Test(authRequest(t, user, "POST", target, fiber.Map{"lectureTitle": title}), -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, "lecture %d", i+1)
	}

	var lectures []models.Lecture
	require.NoError(t, db.Where("course_id = ?", course.ID).Order("position asc").Find(&lectures).Error)
	require.Len(t, lectures, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{lectures[0].Position, lectures[1].Position, lectures[2].Position})
	assert.False(t, lectures[0].IsPreviewFree)
}

func TestLectureCreationOnlyByCreator(t *testing.T) {
	app, db := setupTest(t)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	course := models.Course{Title: "Owned", Category: "Misc", CreatorID: owner.ID}
	require.NoError(t, db.Create(&course).Error)

	target := fmt.Sprintf("/course/%d/lecture", course.ID)
	resp, err := app.Test(authRequest(t, other, "POST", target, fiber.Map{"lectureTitle": "Nope"}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
