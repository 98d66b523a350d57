package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"proptrack-backend/internal/middleware"
	"proptrack-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthApp(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	mr := miniredis.RunT(t)
	cfg := middleware.SessionConfig{
		Secret:   "test-secret",
		RedisURL: "redis://" + mr.Addr(),
	}
	sessionHandler, rdb, err := middleware.Session(cfg)
	require.NoError(t, err)

	h := &Handlers{
		DB:         db,
		UserFinder: &GormUserFinder{DB: db},
		Rdb:        rdb,
		Config:     cfg,
	}

	app := fiber.New()
	app.Use(sessionHandler)
	app.Post("/api/v1/auth/register", h.Register)
	app.Post("/api/v1/auth/login", h.Login)
	app.Get("/api/v1/auth/me", h.Me)
	app.Delete("/api/v1/auth/logout", h.Logout)
	app.Get("/api/v1/protected", middleware.RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]string) *http.Response {
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestRegisterLoginMeLogout_FullFlow(t *testing.T) {
	app := setupAuthApp(t)

	// Register
	resp := postJSON(t, app, "/api/v1/auth/register", map[string]string{
		"fullname": "Maria Santos",
		"email":    "maria@example.com",
		"password": "S3cure!pass",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Login sets the session cookie
	resp = postJSON(t, app, "/api/v1/auth/login", map[string]string{
		"email":    "maria@example.com",
		"password": "S3cure!pass",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	// Me returns the session user
	req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.AddCookie(cookie)
	meResp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, meResp.StatusCode)

	raw, _ := io.ReadAll(meResp.Body)
	var envelope struct {
		Data struct {
			User SessionUserShape `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, "maria@example.com", envelope.Data.User.Email)
	assert.Equal(t, "Maria Santos", envelope.Data.User.Fullname)

	// Protected route accepts the session
	req = httptest.NewRequest("GET", "/api/v1/protected", nil)
	req.AddCookie(cookie)
	protResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, protResp.StatusCode)

	// Logout clears the cookie and invalidates the session
	req = httptest.NewRequest("DELETE", "/api/v1/auth/logout", nil)
	req.AddCookie(cookie)
	outResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, outResp.StatusCode)
	cleared := sessionCookie(outResp)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	req = httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.AddCookie(cookie)
	meResp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, meResp.StatusCode)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	app := setupAuthApp(t)

	resp := postJSON(t, app, "/api/v1/auth/register", map[string]string{
		"fullname": "Maria Santos",
		"email":    "maria@example.com",
		"password": "S3cure!pass",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/auth/login", map[string]string{
		"email":    "maria@example.com",
		"password": "wrong-pass1!",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/auth/login", map[string]string{"email": "maria@example.com"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegister_Conflict(t *testing.T) {
	app := setupAuthApp(t)

	body := map[string]string{
		"fullname": "Maria Santos",
		"email":    "maria@example.com",
		"password": "S3cure!pass",
	}
	resp := postJSON(t, app, "/api/v1/auth/register", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/auth/register", body)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestProtectedRoute_RejectsAnonymous(t *testing.T) {
	app := setupAuthApp(t)

	req := httptest.NewRequest("GET", "/api/v1/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
