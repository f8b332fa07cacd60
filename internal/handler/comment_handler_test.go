package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Vlad1805/blogmates-backend/internal/database"
	"github.com/Vlad1805/blogmates-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postComment(t *testing.T, router *gin.Engine, cookies []*http.Cookie, entryID uint, content string) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/blog/%d/comments", entryID), gin.H{
		"content": content,
	}, cookies)
}

func TestCreateComment(t *testing.T) {
	router := setupRouter(t)
	_, aliceCookies := signup(t, router, "alice")
	_, bobCookies := signup(t, router, "bob")

	entryID := createEntry(t, router, aliceCookies, "Post", models.VisibilityPublic)

	w := postComment(t, router, bobCookies, entryID, "great read")
	require.Equal(t, http.StatusCreated, w.Code)
	var comment CommentResponse
	decodeBody(t, w, &comment)
	assert.Equal(t, entryID, comment.BlogEntryID)
	assert.Equal(t, "bob", comment.AuthorName)
	assert.Equal(t, "great read", comment.Content)

	// Empty content fails binding.
	w = doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/blog/%d/comments", entryID), gin.H{}, bobCookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Anonymous callers cannot comment.
	w = doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/blog/%d/comments", entryID), gin.H{
		"content": "hi",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, http.StatusNotFound, postComment(t, router, bobCookies, 99999, "void").Code)
}

func TestCommentRespectsVisibility(t *testing.T) {
	router := setupRouter(t)
	alice, aliceCookies := signup(t, router, "alice")
	bob, bobCookies := signup(t, router, "bob")

	friendsID := createEntry(t, router, aliceCookies, "Friends", models.VisibilityFriends)
	journalID := createEntry(t, router, aliceCookies, "Journal", models.VisibilityJournal)

	// A non-follower cannot comment on or read a friends-only entry.
	assert.Equal(t, http.StatusForbidden, postComment(t, router, bobCookies, friendsID, "hi").Code)
	assert.Equal(t, http.StatusForbidden,
		doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/blog/%d/comments", friendsID), nil, bobCookies).Code)

	makeFollower(t, alice.ID, bob.ID)
	assert.Equal(t, http.StatusCreated, postComment(t, router, bobCookies, friendsID, "hi").Code)

	// The journal only takes comments from its author.
	assert.Equal(t, http.StatusForbidden, postComment(t, router, bobCookies, journalID, "hi").Code)
	assert.Equal(t, http.StatusCreated, postComment(t, router, aliceCookies, journalID, "note to self").Code)
}

func TestGetCommentsOrderAndCount(t *testing.T) {
	router := setupRouter(t)
	_, aliceCookies := signup(t, router, "alice")
	_, bobCookies := signup(t, router, "bob")

	entryID := createEntry(t, router, aliceCookies, "Post", models.VisibilityPublic)
	require.Equal(t, http.StatusCreated, postComment(t, router, aliceCookies, entryID, "first").Code)
	require.Equal(t, http.StatusCreated, postComment(t, router, bobCookies, entryID, "second").Code)
	require.Equal(t, http.StatusCreated, postComment(t, router, aliceCookies, entryID, "third").Code)

	w := doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/blog/%d/comments", entryID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page PaginatedResponse[CommentResponse]
	decodeBody(t, w, &page)
	require.Equal(t, int64(3), page.Count)
	require.Len(t, page.Results, 3)
	// Oldest first.
	assert.Equal(t, "first", page.Results[0].Content)
	assert.Equal(t, "third", page.Results[2].Content)

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/blog/%d/comments/count", entryID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var count struct {
		Count int64 `json:"count"`
	}
	decodeBody(t, w, &count)
	assert.Equal(t, int64(3), count.Count)
}

func TestDeleteComment(t *testing.T) {
	router := setupRouter(t)
	_, aliceCookies := signup(t, router, "alice")
	_, bobCookies := signup(t, router, "bob")
	_, carolCookies := signup(t, router, "carol")

	entryID := createEntry(t, router, aliceCookies, "Post", models.VisibilityPublic)

	w := postComment(t, router, bobCookies, entryID, "mine")
	require.Equal(t, http.StatusCreated, w.Code)
	var comment CommentResponse
	decodeBody(t, w, &comment)

	path := fmt.Sprintf("/api/v1/blog/%d/comments/%d", entryID, comment.ID)

	// A bystander cannot delete another user's comment.
	assert.Equal(t, http.StatusForbidden, doRequest(t, router, http.MethodDelete, path, nil, carolCookies).Code)

	// The comment's author can.
	assert.Equal(t, http.StatusOK, doRequest(t, router, http.MethodDelete, path, nil, bobCookies).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, router, http.MethodDelete, path, nil, bobCookies).Code)

	// The entry's author can moderate comments they did not write.
	w = postComment(t, router, bobCookies, entryID, "again")
	require.Equal(t, http.StatusCreated, w.Code)
	decodeBody(t, w, &comment)

	// Likes on the comment go with it.
	require.Equal(t, http.StatusCreated,
		doRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/comments/%d/like", comment.ID), nil, carolCookies).Code)

	path = fmt.Sprintf("/api/v1/blog/%d/comments/%d", entryID, comment.ID)
	assert.Equal(t, http.StatusOK, doRequest(t, router, http.MethodDelete, path, nil, aliceCookies).Code)

	var likes int64
	require.NoError(t, database.DB.Model(&models.CommentLike{}).Where("comment_id = ?", comment.ID).Count(&likes).Error)
	assert.Zero(t, likes)
}

func TestDeleteCommentScopedToEntry(t *testing.T) {
	router := setupRouter(t)
	_, aliceCookies := signup(t, router, "alice")

	firstID := createEntry(t, router, aliceCookies, "First", models.VisibilityPublic)
	secondID := createEntry(t, router, aliceCookies, "Second", models.VisibilityPublic)

	w := postComment(t, router, aliceCookies, firstID, "on first")
	require.Equal(t, http.StatusCreated, w.Code)
	var comment CommentResponse
	decodeBody(t, w, &comment)

	// The comment id must belong to the entry in the path.
	path := fmt.Sprintf("/api/v1/blog/%d/comments/%d", secondID, comment.ID)
	assert.Equal(t, http.StatusNotFound, doRequest(t, router, http.MethodDelete, path, nil, aliceCookies).Code)
}
