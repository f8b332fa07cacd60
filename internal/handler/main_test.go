package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Vlad1805/blogmates-backend/internal/config"
	"github.com/Vlad1805/blogmates-backend/internal/database"
	"github.com/Vlad1805/blogmates-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter wires the full route table against a fresh sqlite database.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{
		JWTSecret:             "test-secret",
		ServerAddress:         ":0",
		AccessTokenTTLMinutes: 15,
		RefreshTokenTTLHours:  24,
	}

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	router := gin.New()
	RegisterRoutes(router)
	return router
}

// doRequest performs a JSON request and returns the recorder.
func doRequest(t *testing.T, router *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals the response body into out.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// signup registers a user through the API and returns their record and the
// auth cookies from the response.
func signup(t *testing.T, router *gin.Engine, username string) (models.User, []*http.Cookie) {
	t.Helper()

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username":  username,
		"email":     username + "@example.com",
		"password":  "password123",
		"password2": "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, "signup %s: %s", username, w.Body.String())

	var user models.User
	require.NoError(t, database.DB.Where("username = ?", username).First(&user).Error)

	return user, w.Result().Cookies()
}

// makeFollower records that follower follows owner, bypassing the request
// flow.
func makeFollower(t *testing.T, ownerID, followerID uint) {
	t.Helper()
	require.NoError(t, database.DB.Create(&models.Friendship{UserID: ownerID, FollowerID: followerID}).Error)
}

// createEntry creates a blog entry through the API and returns its ID.
func createEntry(t *testing.T, router *gin.Engine, cookies []*http.Cookie, title string, visibility models.Visibility) uint {
	t.Helper()

	w := doRequest(t, router, http.MethodPost, "/api/v1/blog", gin.H{
		"title":      title,
		"content":    "some content",
		"visibility": visibility,
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code, "create entry %q: %s", title, w.Body.String())

	var entry BlogEntryResponse
	decodeBody(t, w, &entry)
	return entry.ID
}
