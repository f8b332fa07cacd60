package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/Vlad1805/blogmates-backend/internal/database"
	"github.com/Vlad1805/blogmates-backend/internal/models"
	"github.com/Vlad1805/blogmates-backend/internal/relations"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// PublicUserResponse defines the structure for a user's public profile. The
// relation flags read from the profile's side: is_following means this user
// follows the viewer, is_followed_by means the viewer follows this user. The
// pending request ids are set when an open friend request exists between the
// viewer and this user, so clients can accept or cancel it directly.
type PublicUserResponse struct {
	ID                        uint   `json:"id" example:"1"`
	Username                  string `json:"username" example:"testuser"`
	Biography                 string `json:"biography,omitempty"`
	ProfilePicture            string `json:"profile_picture,omitempty"`
	ProfilePictureContentType string `json:"profile_picture_content_type,omitempty"`
	FollowersCount            int64  `json:"followers_count"`
	FollowingCount            int64  `json:"following_count"`
	IsFollowing               bool   `json:"is_following"`
	IsFollowedBy              bool   `json:"is_followed_by"`
	PendingSentRequestID      uint   `json:"pending_sent_request_id,omitempty"`
	PendingReceivedRequestID  uint   `json:"pending_received_request_id,omitempty"`
}

// PrivateUserResponse defines the structure for the authenticated user's own profile.
type PrivateUserResponse struct {
	ID                   uint   `json:"id" example:"1"`
	Username             string `json:"username" example:"testuser"`
	Email                string `json:"email" example:"test@example.com"`
	Biography            string `json:"biography,omitempty"`
	FollowersCount       int64  `json:"followers_count"`
	FollowingCount       int64  `json:"following_count"`
	PendingReceivedCount int64  `json:"pending_received_count"`
	PendingSentCount     int64  `json:"pending_sent_count"`
}

// ProfileInput defines the structure for profile updates. The picture is
// carried as a base64 blob alongside its content type.
type ProfileInput struct {
	Biography                 string `json:"biography"`
	ProfilePicture            string `json:"profile_picture"`
	ProfilePictureContentType string `json:"profile_picture_content_type"`
}

// ProfileResponse mirrors ProfileInput on reads.
type ProfileResponse struct {
	UserID                    uint   `json:"user_id"`
	Biography                 string `json:"biography"`
	ProfilePicture            string `json:"profile_picture,omitempty"`
	ProfilePictureContentType string `json:"profile_picture_content_type,omitempty"`
}

// endregion

// region --- Handlers ---

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the private profile for the currently authenticated user.
// @Tags         users
// @Produce      json
// @Success      200  {object}  PrivateUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	viewerID := mustUserID(c)

	var user models.User
	if err := database.DB.Preload("Profile").First(&user, viewerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	response, err := buildPrivateUserResponse(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetUserByID godoc
// @Summary      Get user by ID
// @Description  Retrieves the public profile for a specific user, including relationship flags.
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  PublicUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func GetUserByID(c *gin.Context) {
	viewerID := mustUserID(c)

	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var targetUser models.User
	if err := database.DB.Preload("Profile").First(&targetUser, uint(targetUserID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	response, err := buildPublicUserResponse(targetUser, viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// SearchUsers godoc
// @Summary      Search for users
// @Description  Searches for users by username with pagination.
// @Tags         users
// @Produce      json
// @Param        q         query     string  false  "Search query for username"
// @Param        page      query     int     false  "Page number" default(1)
// @Param        page_size query     int     false  "Items per page" default(10)
// @Success      200   {object}  PaginatedResponse[PublicUserResponse]
// @Failure      401   {object}  ErrorResponse
// @Router       /users [get]
func SearchUsers(c *gin.Context) {
	viewerID := mustUserID(c)
	searchQuery := c.Query("q")
	page, pageSize := pageParams(c)

	query := database.DB.Model(&models.User{}).Preload("Profile").Where("id <> ?", viewerID)
	if searchQuery != "" {
		query = query.Where("username LIKE ?", "%"+searchQuery+"%")
	}

	paginated, err := Paginate[models.User](query.Order("username ASC"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	userResponses := make([]PublicUserResponse, 0, len(paginated.Results))
	for _, user := range paginated.Results {
		response, err := buildPublicUserResponse(user, viewerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
			return
		}
		userResponses = append(userResponses, response)
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(userResponses, paginated.Count, page, pageSize))
}

// GetMyProfile godoc
// @Summary      Get the current user's profile record
// @Tags         users
// @Produce      json
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me/profile [get]
func GetMyProfile(c *gin.Context) {
	viewerID := mustUserID(c)

	var profile models.UserProfile
	if err := database.DB.Where("user_id = ?", viewerID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, buildProfileResponse(profile))
}

// UpdateMyProfile godoc
// @Summary      Update the current user's profile
// @Description  Replaces the biography and optionally the profile picture (base64).
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input body ProfileInput true "Profile"
// @Success      200  {object}  ProfileResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me/profile [put]
func UpdateMyProfile(c *gin.Context) {
	viewerID := mustUserID(c)

	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(input.Biography) > 500 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Biography must be at most 500 characters"})
		return
	}

	var profile models.UserProfile
	if err := database.DB.Where("user_id = ?", viewerID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	profile.Biography = input.Biography
	if input.ProfilePicture != "" {
		picture, err := base64.StdEncoding.DecodeString(input.ProfilePicture)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile picture encoding"})
			return
		}
		profile.ProfilePicture = picture
		profile.ProfilePictureContentType = input.ProfilePictureContentType
	}

	if err := database.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, buildProfileResponse(profile))
}

// endregion

// region --- Helpers ---

func buildPublicUserResponse(targetUser models.User, viewerID uint) (PublicUserResponse, error) {
	var followersCount, followingCount int64
	if err := database.DB.Model(&models.Friendship{}).Where("user_id = ?", targetUser.ID).Count(&followersCount).Error; err != nil {
		return PublicUserResponse{}, err
	}
	if err := database.DB.Model(&models.Friendship{}).Where("follower_id = ?", targetUser.ID).Count(&followingCount).Error; err != nil {
		return PublicUserResponse{}, err
	}

	isFollowing, err := relations.IsFollowing(database.DB, viewerID, targetUser.ID)
	if err != nil {
		return PublicUserResponse{}, err
	}
	isFollowedBy, err := relations.IsFollowing(database.DB, targetUser.ID, viewerID)
	if err != nil {
		return PublicUserResponse{}, err
	}

	response := PublicUserResponse{
		ID:                        targetUser.ID,
		Username:                  targetUser.Username,
		Biography:                 targetUser.Profile.Biography,
		ProfilePictureContentType: targetUser.Profile.ProfilePictureContentType,
		FollowersCount:            followersCount,
		FollowingCount:            followingCount,
		IsFollowing:               isFollowing,
		IsFollowedBy:              isFollowedBy,
	}
	if len(targetUser.Profile.ProfilePicture) > 0 {
		response.ProfilePicture = base64.StdEncoding.EncodeToString(targetUser.Profile.ProfilePicture)
	}

	sentID, err := pendingRequestID(viewerID, targetUser.ID)
	if err != nil {
		return PublicUserResponse{}, err
	}
	response.PendingSentRequestID = sentID

	receivedID, err := pendingRequestID(targetUser.ID, viewerID)
	if err != nil {
		return PublicUserResponse{}, err
	}
	response.PendingReceivedRequestID = receivedID

	return response, nil
}

// pendingRequestID returns the id of the open request from sender to
// receiver, or zero when there is none.
func pendingRequestID(senderID, receiverID uint) (uint, error) {
	var pending models.FriendRequest
	err := database.DB.Where("sender_id = ? AND receiver_id = ? AND is_accepted = ?", senderID, receiverID, false).
		First(&pending).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return pending.ID, nil
}

func buildPrivateUserResponse(user models.User) (PrivateUserResponse, error) {
	var followersCount, followingCount, pendingReceived, pendingSent int64
	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{database.DB.Model(&models.Friendship{}).Where("user_id = ?", user.ID), &followersCount},
		{database.DB.Model(&models.Friendship{}).Where("follower_id = ?", user.ID), &followingCount},
		{database.DB.Model(&models.FriendRequest{}).Where("receiver_id = ? AND is_accepted = ?", user.ID, false), &pendingReceived},
		{database.DB.Model(&models.FriendRequest{}).Where("sender_id = ? AND is_accepted = ?", user.ID, false), &pendingSent},
	}
	for _, count := range counts {
		if err := count.query.Count(count.dest).Error; err != nil {
			return PrivateUserResponse{}, err
		}
	}

	return PrivateUserResponse{
		ID:                   user.ID,
		Username:             user.Username,
		Email:                user.Email,
		Biography:            user.Profile.Biography,
		FollowersCount:       followersCount,
		FollowingCount:       followingCount,
		PendingReceivedCount: pendingReceived,
		PendingSentCount:     pendingSent,
	}, nil
}

func buildProfileResponse(profile models.UserProfile) ProfileResponse {
	response := ProfileResponse{
		UserID:                    profile.UserID,
		Biography:                 profile.Biography,
		ProfilePictureContentType: profile.ProfilePictureContentType,
	}
	if len(profile.ProfilePicture) > 0 {
		response.ProfilePicture = base64.StdEncoding.EncodeToString(profile.ProfilePicture)
	}
	return response
}

// endregion
