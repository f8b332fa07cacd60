package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Vlad1805/blogmates-backend/internal/auth"
	"github.com/Vlad1805/blogmates-backend/internal/config"
	"github.com/Vlad1805/blogmates-backend/internal/database"
	"github.com/Vlad1805/blogmates-backend/internal/domain"
	"github.com/Vlad1805/blogmates-backend/internal/models"
	"github.com/Vlad1805/blogmates-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Username  string `json:"username" binding:"required" example:"testuser"`
	Email     string `json:"email" binding:"required,email" example:"test@example.com"`
	Password  string `json:"password" binding:"required,min=8" example:"password123"`
	Password2 string `json:"password2" binding:"required" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Login    string `json:"login" binding:"required" example:"testuser"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// endregion

// region --- Token helpers ---

func issueTokens(c *gin.Context, userID uint) error {
	accessToken, err := jwt.GenerateToken(userID)
	if err != nil {
		return err
	}

	refreshTTL := time.Duration(config.AppConfig.RefreshTokenTTLHours) * time.Hour
	refreshToken := models.RefreshToken{
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTTL),
	}
	if err := database.DB.Create(&refreshToken).Error; err != nil {
		return err
	}

	setAuthCookies(c, accessToken, refreshToken.Token)
	return nil
}

func setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	secure := config.AppConfig.CookieSecure
	accessMaxAge := config.AppConfig.AccessTokenTTLMinutes * 60
	refreshMaxAge := config.AppConfig.RefreshTokenTTLHours * 3600

	c.SetCookie(auth.AccessTokenCookie, accessToken, accessMaxAge, "/", "", secure, true)
	c.SetCookie(auth.RefreshTokenCookie, refreshToken, refreshMaxAge, "/", "", secure, true)
}

func clearAuthCookies(c *gin.Context) {
	secure := config.AppConfig.CookieSecure
	c.SetCookie(auth.AccessTokenCookie, "", -1, "/", "", secure, true)
	c.SetCookie(auth.RefreshTokenCookie, "", -1, "/", "", secure, true)
}

// endregion

// region --- Handlers ---

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a new user with an empty profile and logs them in via token cookies.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"message": "User created successfully"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Password != input.Password2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	var existingUser models.User
	if err := database.DB.Where("username = ? OR email = ?", input.Username, input.Email).First(&existingUser).Error; err == nil {
		respondError(c, domain.ErrUsernameTaken)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		// The profile row exists from the start, empty until the user fills
		// it in.
		return tx.Create(&models.UserProfile{UserID: user.ID}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, domain.ErrUsernameTaken)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	if err := issueTokens(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates a user with username/email and password, and sets token cookies.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"message": "Logged in"}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("username = ? OR email = ?", input.Login, input.Login).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := issueTokens(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged in"})
}

// RefreshToken godoc
// @Summary      Refresh the access token
// @Description  Rotates the refresh token cookie and issues a new access token cookie.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string "{"message": "Token refreshed"}"
// @Failure      401  {object}  ErrorResponse "Missing, unknown or expired refresh token"
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/refresh [post]
func RefreshToken(c *gin.Context) {
	tokenString, err := c.Cookie(auth.RefreshTokenCookie)
	if err != nil || tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token required"})
		return
	}

	var stored models.RefreshToken
	if err := database.DB.Where("token = ?", tokenString).First(&stored).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	if time.Now().After(stored.ExpiresAt) {
		database.DB.Delete(&stored)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired"})
		return
	}

	// Rotate: the presented token is single-use.
	if err := database.DB.Delete(&stored).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rotate token"})
		return
	}

	if err := issueTokens(c, stored.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token refreshed"})
}

// LogoutUser godoc
// @Summary      Log out
// @Description  Revokes the refresh token and clears both token cookies.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string "{"message": "Logged out"}"
// @Router       /auth/logout [post]
func LogoutUser(c *gin.Context) {
	if tokenString, err := c.Cookie(auth.RefreshTokenCookie); err == nil && tokenString != "" {
		database.DB.Where("token = ?", tokenString).Delete(&models.RefreshToken{})
	}

	clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// endregion
