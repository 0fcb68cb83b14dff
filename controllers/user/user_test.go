package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/user"

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

	require.NoError(t, db.AutoMigrate(&models.User{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	userGroup := app.Group("/user")
	userGroup.Post("/signup", validators.Signup(), Signup)
	userGroup.Post("/login", validators.Login(), Login)
	userGroup.Post("/logout", Logout)
	userGroup.Get("/profile", middleware.JWTMiddleware, GetProfile)

	return app, db
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSignupAndLogin(t *testing.T) {
	app, db := setupTest(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/user/signup", fiber.Map{
		"name":     "Asha",
		"email":    "asha@example.com",
		"password": "secret123",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Password is stored hashed
	var user models.User
	require.NoError(t, db.Where("email = ?", "asha@example.com").First(&user).Error)
	assert.NotEqual(t, "secret123", user.Password)
	assert.Equal(t, "student", user.Role)

	resp, err = app.Test(jsonRequest(t, "POST", "/user/login", fiber.Map{
		"email":    "asha@example.com",
		"password": "secret123",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var tokenCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "token" {
			tokenCookie = cookie
		}
	}
	require.NotNil(t, tokenCookie, "login must set the session cookie")
	assert.NotEmpty(t, tokenCookie.Value)
	assert.True(t, tokenCookie.HttpOnly)

	// The cookie authenticates subsequent requests
	req := httptest.NewRequest("GET", "/user/profile", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: tokenCookie.Value})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSignupDuplicateEmail(t *testing.T) {
	app, _ := setupTest(t)

	body := fiber.Map{"name": "Asha", "email": "asha@example.com", "password": "secret123"}

	resp, err := app.Test(jsonRequest(t, "POST", "/user/signup", body), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/user/signup", body), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestSignupValidation(t *testing.T) {
	app, _ := setupTest(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/user/signup", fiber.Map{
		"name": "", "email": "not-an-email", "password": "123",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := setupTest(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/user/signup", fiber.Map{
		"name": "Asha", "email": "asha@example.com", "password": "secret123",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/user/login", fiber.Map{
		"email": "asha@example.com", "password": "wrong",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProfileRequiresAuth(t *testing.T) {
	app, _ := setupTest(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/user/profile", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
