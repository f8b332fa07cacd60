package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Vlad1805/blogmates-backend/internal/database"
	"github.com/Vlad1805/blogmates-backend/internal/relations"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// FriendRequestInput defines the structure for sending a friend request.
type FriendRequestInput struct {
	ReceiverID uint `json:"receiver_id" binding:"required"`
}

// FriendRequestResponse defines the structure for a pending friend request.
// User is the counterparty: the sender on received requests, the receiver on
// sent ones.
type FriendRequestResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// FollowEdgeResponse defines the structure for one side of a follow edge.
type FollowEdgeResponse struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// endregion

// region --- Friend request handlers ---

// SendFriendRequest godoc
// @Summary      Send a friend request
// @Description  Creates a pending request toward another user. Requests in the opposite direction are independent.
// @Tags         social
// @Accept       json
// @Produce      json
// @Param        input body FriendRequestInput true "Receiver"
// @Success      201  {object}  map[string]string "{"message": "Friend request sent"}"
// @Failure      400  {object}  ErrorResponse "Missing receiver or self-request"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Receiver not found"
// @Failure      409  {object}  ErrorResponse "Already friends or request already sent"
// @Router       /friend-requests [post]
func SendFriendRequest(c *gin.Context) {
	viewerID := mustUserID(c)

	var input FriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Receiver ID is required"})
		return
	}

	if _, err := relations.SendRequest(database.DB, viewerID, input.ReceiverID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Friend request sent"})
}

// GetPendingRequests godoc
// @Summary      List received pending friend requests
// @Tags         social
// @Produce      json
// @Success      200  {array}   FriendRequestResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /friend-requests/pending [get]
func GetPendingRequests(c *gin.Context) {
	viewerID := mustUserID(c)

	requests, err := relations.PendingReceived(database.DB, viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve requests"})
		return
	}

	responses := make([]FriendRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, FriendRequestResponse{
			ID:        request.ID,
			UserID:    request.SenderID,
			Username:  request.Sender.Username,
			CreatedAt: request.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// GetPendingSentRequests godoc
// @Summary      List sent pending friend requests
// @Tags         social
// @Produce      json
// @Success      200  {array}   FriendRequestResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /friend-requests/pending/sent [get]
func GetPendingSentRequests(c *gin.Context) {
	viewerID := mustUserID(c)

	requests, err := relations.PendingSent(database.DB, viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve requests"})
		return
	}

	responses := make([]FriendRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, FriendRequestResponse{
			ID:        request.ID,
			UserID:    request.ReceiverID,
			Username:  request.Receiver.Username,
			CreatedAt: request.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// AcceptFriendRequest godoc
// @Summary      Accept a friend request
// @Description  Converts a pending request addressed to the caller into a follow edge: the sender now follows the caller.
// @Tags         social
// @Produce      json
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  map[string]string "{"message": "Friend request accepted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Request not found or not addressed to the caller"
// @Router       /friend-requests/{id}/accept [post]
func AcceptFriendRequest(c *gin.Context) {
	viewerID := mustUserID(c)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	if _, err := relations.AcceptRequest(database.DB, viewerID, uint(requestID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted"})
}

// RemoveFriendRequest godoc
// @Summary      Remove a friend request
// @Description  Deletes a request the caller sent (cancel) or received (reject).
// @Tags         social
// @Produce      json
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  map[string]string "{"message": "Friend request removed"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /friend-requests/{id} [delete]
func RemoveFriendRequest(c *gin.Context) {
	viewerID := mustUserID(c)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	if err := relations.RemoveRequest(database.DB, viewerID, uint(requestID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request removed"})
}

// endregion

// region --- Follow graph handlers ---

// GetFollowers godoc
// @Summary      List followers
// @Description  Lists the users following the caller.
// @Tags         social
// @Produce      json
// @Success      200  {array}   FollowEdgeResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /followers [get]
func GetFollowers(c *gin.Context) {
	viewerID := mustUserID(c)

	edges, err := relations.Followers(database.DB, viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve followers"})
		return
	}

	responses := make([]FollowEdgeResponse, 0, len(edges))
	for _, edge := range edges {
		responses = append(responses, FollowEdgeResponse{
			UserID:    edge.FollowerID,
			Username:  edge.Follower.Username,
			CreatedAt: edge.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// GetFollowing godoc
// @Summary      List followed users
// @Description  Lists the users the caller follows.
// @Tags         social
// @Produce      json
// @Success      200  {array}   FollowEdgeResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /following [get]
func GetFollowing(c *gin.Context) {
	viewerID := mustUserID(c)

	edges, err := relations.Following(database.DB, viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve following"})
		return
	}

	responses := make([]FollowEdgeResponse, 0, len(edges))
	for _, edge := range edges {
		responses = append(responses, FollowEdgeResponse{
			UserID:    edge.UserID,
			Username:  edge.User.Username,
			CreatedAt: edge.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// UnfollowUser godoc
// @Summary      Unfollow a user
// @Tags         social
// @Produce      json
// @Param        userID path     int  true  "User ID to unfollow"
// @Success      200  {object}  map[string]string "{"message": "Unfollowed"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Not following this user"
// @Router       /following/{userID} [delete]
func UnfollowUser(c *gin.Context) {
	viewerID := mustUserID(c)

	targetID, err := strconv.ParseUint(c.Param("userID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := relations.Unfollow(database.DB, viewerID, uint(targetID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}

// RemoveFollower godoc
// @Summary      Remove a follower
// @Tags         social
// @Produce      json
// @Param        userID path     int  true  "Follower's user ID"
// @Success      200  {object}  map[string]string "{"message": "Follower removed"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "This user is not a follower"
// @Router       /followers/{userID} [delete]
func RemoveFollower(c *gin.Context) {
	viewerID := mustUserID(c)

	followerID, err := strconv.ParseUint(c.Param("userID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := relations.RemoveFollower(database.DB, viewerID, uint(followerID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Follower removed"})
}

// endregion
