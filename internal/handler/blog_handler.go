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

// BlogEntryInput defines the structure for creating and updating entries.
type BlogEntryInput struct {
	Title      string            `json:"title" binding:"required"`
	Content    string            `json:"content" binding:"required"`
	Visibility models.Visibility `json:"visibility"`
}

// BlogEntryResponse defines the structure for a blog entry.
type BlogEntryResponse struct {
	ID         uint              `json:"id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Visibility models.Visibility `json:"visibility"`
	AuthorID   uint              `json:"author_id"`
	AuthorName string            `json:"author_name"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func newBlogEntryResponse(entry models.BlogEntry) BlogEntryResponse {
	return BlogEntryResponse{
		ID:         entry.ID,
		Title:      entry.Title,
		Content:    entry.Content,
		Visibility: entry.Visibility,
		AuthorID:   entry.AuthorID,
		AuthorName: entry.Author.Username,
		CreatedAt:  entry.CreatedAt,
		UpdatedAt:  entry.UpdatedAt,
	}
}

// endregion

// region --- Handlers ---

// CreateBlogEntry godoc
// @Summary      Create a blog entry
// @Description  Creates an entry owned by the authenticated user. Titles are unique per author.
// @Tags         blog
// @Accept       json
// @Produce      json
// @Param        input body BlogEntryInput true "Entry"
// @Success      201  {object}  BlogEntryResponse
// @Failure      400  {object}  ErrorResponse "Missing field or unknown visibility"
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Duplicate title for this author"
// @Router       /blog [post]
func CreateBlogEntry(c *gin.Context) {
	viewerID := mustUserID(c)

	var input BlogEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Visibility == "" {
		input.Visibility = models.VisibilityPublic
	}
	if !input.Visibility.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown visibility"})
		return
	}

	entry := models.BlogEntry{
		Title:      input.Title,
		Content:    input.Content,
		AuthorID:   viewerID,
		Visibility: input.Visibility,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, domain.ErrTitleTaken)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		return
	}

	database.DB.Preload("Author").First(&entry, entry.ID)
	c.JSON(http.StatusCreated, newBlogEntryResponse(entry))
}

// GetBlogEntry godoc
// @Summary      Get a blog entry
// @Description  Retrieves a single entry if the viewer passes its visibility check. Public entries need no authentication.
// @Tags         blog
// @Produce      json
// @Param        id   path      int  true  "Entry ID"
// @Success      200  {object}  BlogEntryResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /blog/{id} [get]
func GetBlogEntry(c *gin.Context) {
	viewer := currentViewer(c)

	entry, ok := loadEntry(c)
	if !ok {
		return
	}

	allowed, err := policy.CanView(viewer, entry.AuthorID, entry.Visibility, relations.Checker{DB: database.DB})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this blog entry"})
		return
	}

	c.JSON(http.StatusOK, newBlogEntryResponse(*entry))
}

// UpdateBlogEntry godoc
// @Summary      Update a blog entry
// @Description  Updates title, content or visibility. Author only.
// @Tags         blog
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Entry ID"
// @Param        input body      BlogEntryInput  true  "New entry data"
// @Success      200   {object}  BlogEntryResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /blog/{id} [put]
func UpdateBlogEntry(c *gin.Context) {
	viewerID := mustUserID(c)

	entry, ok := loadEntry(c)
	if !ok {
		return
	}

	if !policy.CanEditEntry(viewerID, entry.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can edit this entry"})
		return
	}

	var input BlogEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Visibility == "" {
		input.Visibility = entry.Visibility
	}
	if !input.Visibility.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown visibility"})
		return
	}

	entry.Title = input.Title
	entry.Content = input.Content
	entry.Visibility = input.Visibility

	if err := database.DB.Save(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, domain.ErrTitleTaken)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		return
	}

	c.JSON(http.StatusOK, newBlogEntryResponse(*entry))
}

// DeleteBlogEntry godoc
// @Summary      Delete a blog entry
// @Description  Deletes an entry together with its comments and likes. Author only.
// @Tags         blog
// @Produce      json
// @Param        id   path      int  true  "Entry ID"
// @Success      200  {object}  map[string]string "{"message": "Entry deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /blog/{id} [delete]
func DeleteBlogEntry(c *gin.Context) {
	viewerID := mustUserID(c)

	entry, ok := loadEntry(c)
	if !ok {
		return
	}

	if !policy.CanDeleteEntry(viewerID, entry.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can delete this entry"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.BlogComment{}).Select("id").Where("blog_entry_id = ?", entry.ID)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_entry_id = ?", entry.ID).Delete(&models.BlogComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_entry_id = ?", entry.ID).Delete(&models.BlogLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(entry).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}

// GetMyEntries godoc
// @Summary      List own entries
// @Description  Lists the authenticated user's entries, newest first.
// @Tags         blog
// @Produce      json
// @Param        page      query  int  false  "Page number" default(1)
// @Param        page_size query  int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[BlogEntryResponse]
// @Failure      401  {object}  ErrorResponse
// @Router       /blog/my [get]
func GetMyEntries(c *gin.Context) {
	viewerID := mustUserID(c)
	page, pageSize := pageParams(c)

	query := database.DB.Model(&models.BlogEntry{}).
		Preload("Author").
		Where("author_id = ?", viewerID).
		Order("created_at DESC")

	respondEntryPage(c, query, page, pageSize)
}

// GetFeed godoc
// @Summary      List visible entries
// @Description  Lists every entry the viewer may see: their own, public ones, and friends-only entries of authors they follow. Anonymous viewers see public entries only.
// @Tags         blog
// @Produce      json
// @Param        page      query  int  false  "Page number" default(1)
// @Param        page_size query  int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[BlogEntryResponse]
// @Router       /blog/feed [get]
func GetFeed(c *gin.Context) {
	viewer := currentViewer(c)
	page, pageSize := pageParams(c)

	query := database.DB.Model(&models.BlogEntry{}).Preload("Author")
	if viewer.Authenticated {
		followedAuthors := database.DB.Model(&models.Friendship{}).
			Select("user_id").
			Where("follower_id = ?", viewer.ID)
		query = query.Where(
			"author_id = ? OR visibility = ? OR (visibility = ? AND author_id IN (?))",
			viewer.ID, models.VisibilityPublic, models.VisibilityFriends, followedAuthors,
		)
	} else {
		query = query.Where("visibility = ?", models.VisibilityPublic)
	}

	respondEntryPage(c, query.Order("created_at DESC"), page, pageSize)
}

// GetUserEntries godoc
// @Summary      List a user's entries
// @Description  Lists the entries of one author, filtered to what the viewer may see.
// @Tags         blog
// @Produce      json
// @Param        id        path   int  true   "Author ID"
// @Param        page      query  int  false  "Page number" default(1)
// @Param        page_size query  int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[BlogEntryResponse]
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /blog/user/{id} [get]
func GetUserEntries(c *gin.Context) {
	viewer := currentViewer(c)

	authorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var author models.User
	if err := database.DB.First(&author, uint(authorID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	page, pageSize := pageParams(c)
	query := database.DB.Model(&models.BlogEntry{}).
		Preload("Author").
		Where("author_id = ?", author.ID)

	switch {
	case viewer.Authenticated && viewer.ID == author.ID:
		// The author sees everything, journal included.
	case viewer.Authenticated:
		following, err := relations.IsFollowing(database.DB, author.ID, viewer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
			return
		}
		if following {
			query = query.Where("visibility IN ?", []models.Visibility{models.VisibilityPublic, models.VisibilityFriends})
		} else {
			query = query.Where("visibility = ?", models.VisibilityPublic)
		}
	default:
		query = query.Where("visibility = ?", models.VisibilityPublic)
	}

	respondEntryPage(c, query.Order("created_at DESC"), page, pageSize)
}

// endregion

// region --- Helpers ---

// loadEntry reads the entry id from the path and fetches the entry with its
// author, writing the error response itself on failure.
func loadEntry(c *gin.Context) (*models.BlogEntry, bool) {
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry ID"})
		return nil, false
	}

	var entry models.BlogEntry
	if err := database.DB.Preload("Author").First(&entry, uint(entryID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog entry not found"})
		return nil, false
	}
	return &entry, true
}

func respondEntryPage(c *gin.Context, query *gorm.DB, page, pageSize int) {
	paginated, err := Paginate[models.BlogEntry](query, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entries"})
		return
	}

	entryResponses := make([]BlogEntryResponse, 0, len(paginated.Results))
	for _, entry := range paginated.Results {
		entryResponses = append(entryResponses, newBlogEntryResponse(entry))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(entryResponses, paginated.Count, page, pageSize))
}

// endregion
