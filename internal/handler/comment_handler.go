package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Vlad1805/blogmates-backend/internal/database"
	"github.com/Vlad1805/blogmates-backend/internal/models"
	"github.com/Vlad1805/blogmates-backend/internal/policy"
	"github.com/Vlad1805/blogmates-backend/internal/relations"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// CommentInput defines the structure for creating a comment.
type CommentInput struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse defines the structure for a comment.
type CommentResponse struct {
	ID          uint      `json:"id"`
	BlogEntryID uint      `json:"blog_entry_id"`
	AuthorID    uint      `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newCommentResponse(comment models.BlogComment) CommentResponse {
	return CommentResponse{
		ID:          comment.ID,
		BlogEntryID: comment.BlogEntryID,
		AuthorID:    comment.AuthorID,
		AuthorName:  comment.Author.Username,
		Content:     comment.Content,
		CreatedAt:   comment.CreatedAt,
		UpdatedAt:   comment.UpdatedAt,
	}
}

// endregion

// region --- Handlers ---

// CreateComment godoc
// @Summary      Comment on a blog entry
// @Description  Adds a comment to an entry the viewer is allowed to interact with.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id    path      int           true  "Entry ID"
// @Param        input body      CommentInput  true  "Comment"
// @Success      201   {object}  CommentResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /blog/{id}/comments [post]
func CreateComment(c *gin.Context) {
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

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := models.BlogComment{
		BlogEntryID: entry.ID,
		AuthorID:    viewerID,
		Content:     input.Content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	database.DB.Preload("Author").First(&comment, comment.ID)
	c.JSON(http.StatusCreated, newCommentResponse(comment))
}

// GetComments godoc
// @Summary      List comments on a blog entry
// @Description  Lists the comments of an entry the viewer may see, oldest first.
// @Tags         comments
// @Produce      json
// @Param        id        path   int  true   "Entry ID"
// @Param        page      query  int  false  "Page number" default(1)
// @Param        page_size query  int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[CommentResponse]
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /blog/{id}/comments [get]
func GetComments(c *gin.Context) {
	entry, ok := loadViewableEntry(c)
	if !ok {
		return
	}

	page, pageSize := pageParams(c)
	query := database.DB.Model(&models.BlogComment{}).
		Preload("Author").
		Where("blog_entry_id = ?", entry.ID).
		Order("created_at ASC")

	paginated, err := Paginate[models.BlogComment](query, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	commentResponses := make([]CommentResponse, 0, len(paginated.Results))
	for _, comment := range paginated.Results {
		commentResponses = append(commentResponses, newCommentResponse(comment))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(commentResponses, paginated.Count, page, pageSize))
}

// GetCommentCount godoc
// @Summary      Count comments on a blog entry
// @Tags         comments
// @Produce      json
// @Param        id   path      int  true  "Entry ID"
// @Success      200  {object}  map[string]int64 "{"count": 3}"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /blog/{id}/comments/count [get]
func GetCommentCount(c *gin.Context) {
	entry, ok := loadViewableEntry(c)
	if !ok {
		return
	}

	var count int64
	if err := database.DB.Model(&models.BlogComment{}).Where("blog_entry_id = ?", entry.ID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Deletes a comment together with its likes. Allowed for the comment's author and the entry's author.
// @Tags         comments
// @Produce      json
// @Param        id        path  int  true  "Entry ID"
// @Param        commentID path  int  true  "Comment ID"
// @Success      200  {object}  map[string]string "{"message": "Comment deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /blog/{id}/comments/{commentID} [delete]
func DeleteComment(c *gin.Context) {
	viewerID := mustUserID(c)

	entry, ok := loadEntry(c)
	if !ok {
		return
	}

	commentID, err := strconv.ParseUint(c.Param("commentID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var comment models.BlogComment
	if err := database.DB.Where("id = ? AND blog_entry_id = ?", uint(commentID), entry.ID).First(&comment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if !policy.CanDeleteComment(viewerID, comment.AuthorID, entry.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot delete this comment"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", comment.ID).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// endregion

// region --- Helpers ---

// loadViewableEntry fetches the entry from the path and verifies the current
// viewer passes its visibility check.
func loadViewableEntry(c *gin.Context) (*models.BlogEntry, bool) {
	viewer := currentViewer(c)

	entry, ok := loadEntry(c)
	if !ok {
		return nil, false
	}

	allowed, err := policy.CanView(viewer, entry.AuthorID, entry.Visibility, relations.Checker{DB: database.DB})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return nil, false
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this blog entry"})
		return nil, false
	}
	return entry, true
}

// endregion
