package handler

import (
	"net/http"
	"testing"

	"github.com/Vlad1805/blogmates-backend/internal/auth"
	"github.com/Vlad1805/blogmates-backend/internal/database"
	"github.com/Vlad1805/blogmates-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestRegisterSetsTokenCookies(t *testing.T) {
	router := setupRouter(t)

	_, cookies := signup(t, router, "alice")

	access := cookieByName(cookies, auth.AccessTokenCookie)
	require.NotNil(t, access)
	assert.NotEmpty(t, access.Value)
	assert.True(t, access.HttpOnly)

	refresh := cookieByName(cookies, auth.RefreshTokenCookie)
	require.NotNil(t, refresh)
	assert.NotEmpty(t, refresh.Value)

	// A profile record exists from the start.
	var user models.User
	require.NoError(t, database.DB.Where("username = ?", "alice").First(&user).Error)
	var profile models.UserProfile
	require.NoError(t, database.DB.Where("user_id = ?", user.ID).First(&profile).Error)
}

func TestRegisterValidation(t *testing.T) {
	router := setupRouter(t)
	signup(t, router, "alice")

	// Password mismatch.
	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username":  "bob",
		"email":     "bob@example.com",
		"password":  "password123",
		"password2": "different123",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Taken username.
	w = doRequest(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username":  "alice",
		"email":     "other@example.com",
		"password":  "password123",
		"password2": "password123",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	router := setupRouter(t)
	signup(t, router, "alice")

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"login":    "alice",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, cookieByName(w.Result().Cookies(), auth.AccessTokenCookie))

	// Login by email works too.
	w = doRequest(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"login":    "alice@example.com",
		"password": "password123",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"login":    "alice",
		"password": "wrongpassword",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"login":    "nobody",
		"password": "password123",
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthRequired(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/users/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/users/me", nil, []*http.Cookie{
		{Name: auth.AccessTokenCookie, Value: "not-a-token"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshRotatesToken(t *testing.T) {
	router := setupRouter(t)
	_, cookies := signup(t, router, "alice")

	oldRefresh := cookieByName(cookies, auth.RefreshTokenCookie)
	require.NotNil(t, oldRefresh)

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/refresh", nil, []*http.Cookie{oldRefresh})
	require.Equal(t, http.StatusOK, w.Code)

	newRefresh := cookieByName(w.Result().Cookies(), auth.RefreshTokenCookie)
	require.NotNil(t, newRefresh)
	assert.NotEqual(t, oldRefresh.Value, newRefresh.Value)

	// The presented token was single-use.
	w = doRequest(t, router, http.MethodPost, "/api/v1/auth/refresh", nil, []*http.Cookie{oldRefresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The rotated one still works.
	w = doRequest(t, router, http.MethodPost, "/api/v1/auth/refresh", nil, []*http.Cookie{newRefresh})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRefreshWithoutCookie(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/refresh", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/auth/refresh", nil, []*http.Cookie{
		{Name: auth.RefreshTokenCookie, Value: "unknown-token"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	router := setupRouter(t)
	_, cookies := signup(t, router, "alice")

	refresh := cookieByName(cookies, auth.RefreshTokenCookie)
	require.NotNil(t, refresh)

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/logout", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// The revoked token can no longer be exchanged.
	w = doRequest(t, router, http.MethodPost, "/api/v1/auth/refresh", nil, []*http.Cookie{refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
