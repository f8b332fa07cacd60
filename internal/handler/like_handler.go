package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Vlad1805/blogmates-backend/internal/database"
	"github.com/Vlad1805/blogmates-backend/internal/domain"
	"github.com/Vlad1805/blogmates-backend/internal/models"
	"github.com/Vlad1805/blogmates-backend/internal/policy"
	"github.com/Vlad1805/blogmates-backend/internal/relations"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// LikeResponse defines the structure for a single like.
type LikeResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// endregion

// region --- Blog entry likes ---

// LikeBlogEntry godoc
// @Summary      Like a blog entry
// @Description  Adds a like. Liking an entry twice is a conflict, not a toggle.
// @Tags         likes
// @Produce      json
// @Param        id   path      int  true  "Entry ID"
// @Success      201  {object}  map[string]string "{"message": "Liked"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Already liked"
// @Router       /blog/{id}/like [post]
func LikeBlogEntry(c *gin.Context) {
	viewerID := mustUserID(c)

	entry, ok := loadEntry(c)
	if !ok {
		return
	}

	allowed, err := policy.CanInteract(policy.User(viewerID), entry.AuthorID, entry.Visibility, relations.Checker{DB: database.DB})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this blog entry"})
		return
	}

	like := models.BlogLike{BlogEntryID: entry.ID, UserID: viewerID}
	if err := database.DB.Create(&like).Error; err != nil {
		// The unique (entry, user) index decides; concurrent duplicates lose here too.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, domain.ErrDuplicateLike)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like entry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Liked"})
}

// UnlikeBlogEntry godoc
// @Summary      Remove a like from a blog entry
// @Description  Removes the caller's like. Unliking without a like is not found, not a no-op.
// @Tags         likes
// @Produce      json
// @Param        id   path      int  true  "Entry ID"
// @Success      200  {object}  map[string]string "{"message": "Like removed"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /blog/{id}/like [delete]
func UnlikeBlogEntry(c *gin.Context) {
	viewerID := mustUserID(c)

	entry, ok := loadEntry(c)
	if !ok {
		return
	}

	result := database.DB.Where("blog_entry_id = ? AND user_id = ?", entry.ID, viewerID).Delete(&models.BlogLike{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove like"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "You have not liked this entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Like removed"})
}

// GetBlogLikes godoc
// @Summary      List likes on a blog entry
// @Tags         likes
// @Produce      json
// @Param        id        path   int  true   "Entry ID"
// @Param        page      query  int  false  "Page number" default(1)
// @Param        page_size query  int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[LikeResponse]
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /blog/{id}/likes [get]
func GetBlogLikes(c *gin.Context) {
	entry, ok := loadViewableEntry(c)
	if !ok {
		return
	}

	page, pageSize := pageParams(c)
	query := database.DB.Model(&models.BlogLike{}).
		Preload("User").
		Where("blog_entry_id = ?", entry.ID).
		Order("created_at DESC")

	paginated, err := Paginate[models.BlogLike](query, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve likes"})
		return
	}

	likeResponses := make([]LikeResponse, 0, len(paginated.Results))
	for _, like := range paginated.Results {
		likeResponses = append(likeResponses, LikeResponse{
			ID:        like.ID,
			UserID:    like.UserID,
			Username:  like.User.Username,
			CreatedAt: like.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(likeResponses, paginated.Count, page, pageSize))
}

// GetBlogLikeCount godoc
// @Summary      Count likes on a blog entry
// @Tags         likes
// @Produce      json
// @Param        id   path      int  true  "Entry ID"
// @Success      200  {object}  map[string]int64 "{"count": 7}"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /blog/{id}/like-count [get]
func GetBlogLikeCount(c *gin.Context) {
	entry, ok := loadViewableEntry(c)
	if !ok {
		return
	}

	var count int64
	if err := database.DB.Model(&models.BlogLike{}).Where("blog_entry_id = ?", entry.ID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count likes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// endregion

// region --- Comment likes ---

// LikeComment godoc
// @Summary      Like a comment
// @Description  Adds a like to a comment on an entry the viewer may interact with.
// @Tags         likes
// @Produce      json
// @Param        id   path      int  true  "Comment ID"
// @Success      201  {object}  map[string]string "{"message": "Liked"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Already liked"
// @Router       /comments/{id}/like [post]
func LikeComment(c *gin.Context) {
	viewerID := mustUserID(c)

	comment, ok := loadInteractableComment(c, policy.User(viewerID))
	if !ok {
		return
	}

	like := models.CommentLike{CommentID: comment.ID, UserID: viewerID}
	if err := database.DB.Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, domain.ErrDuplicateLike)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Liked"})
}

// UnlikeComment godoc
// @Summary      Remove a like from a comment
// @Tags         likes
// @Produce      json
// @Param        id   path      int  true  "Comment ID"
// @Success      200  {object}  map[string]string "{"message": "Like removed"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /comments/{id}/like [delete]
func UnlikeComment(c *gin.Context) {
	viewerID := mustUserID(c)

	comment, ok := loadComment(c)
	if !ok {
		return
	}

	result := database.DB.Where("comment_id = ? AND user_id = ?", comment.ID, viewerID).Delete(&models.CommentLike{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove like"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "You have not liked this comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Like removed"})
}

// GetCommentLikes godoc
// @Summary      List likes on a comment
// @Tags         likes
// @Produce      json
// @Param        id        path   int  true   "Comment ID"
// @Param        page      query  int  false  "Page number" default(1)
// @Param        page_size query  int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[LikeResponse]
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /comments/{id}/likes [get]
func GetCommentLikes(c *gin.Context) {
	comment, ok := loadViewableComment(c)
	if !ok {
		return
	}

	page, pageSize := pageParams(c)
	query := database.DB.Model(&models.CommentLike{}).
		Preload("User").
		Where("comment_id = ?", comment.ID).
		Order("created_at DESC")

	paginated, err := Paginate[models.CommentLike](query, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve likes"})
		return
	}

	likeResponses := make([]LikeResponse, 0, len(paginated.Results))
	for _, like := range paginated.Results {
		likeResponses = append(likeResponses, LikeResponse{
			ID:        like.ID,
			UserID:    like.UserID,
			Username:  like.User.Username,
			CreatedAt: like.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(likeResponses, paginated.Count, page, pageSize))
}

// GetCommentLikeCount godoc
// @Summary      Count likes on a comment
// @Tags         likes
// @Produce      json
// @Param        id   path      int  true  "Comment ID"
// @Success      200  {object}  map[string]int64 "{"count": 2}"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /comments/{id}/like-count [get]
func GetCommentLikeCount(c *gin.Context) {
	comment, ok := loadViewableComment(c)
	if !ok {
		return
	}

	var count int64
	if err := database.DB.Model(&models.CommentLike{}).Where("comment_id = ?", comment.ID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count likes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// endregion

// region --- Helpers ---

// loadComment reads the comment id from the path and fetches it with its
// parent entry.
func loadComment(c *gin.Context) (*models.BlogComment, bool) {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return nil, false
	}

	var comment models.BlogComment
	if err := database.DB.Preload("BlogEntry").First(&comment, uint(commentID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return nil, false
	}
	return &comment, true
}

func loadViewableComment(c *gin.Context) (*models.BlogComment, bool) {
	return loadGatedComment(c, currentViewer(c))
}

func loadInteractableComment(c *gin.Context, viewer policy.Viewer) (*models.BlogComment, bool) {
	return loadGatedComment(c, viewer)
}

// loadGatedComment fetches the comment and checks the parent entry's
// visibility against the viewer. Comment access is gated by the entry, not
// the comment itself.
func loadGatedComment(c *gin.Context, viewer policy.Viewer) (*models.BlogComment, bool) {
	comment, ok := loadComment(c)
	if !ok {
		return nil, false
	}

	allowed, err := policy.CanView(viewer, comment.BlogEntry.AuthorID, comment.BlogEntry.Visibility, relations.Checker{DB: database.DB})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return nil, false
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this comment"})
		return nil, false
	}
	return comment, true
}

// endregion
