package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaginatedResponse is the envelope applied uniformly to list endpoints.
type PaginatedResponse[T any] struct {
	Count       int64 `json:"count"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	Results     []T   `json:"results"`
}

// NewPaginatedResponse creates a new PaginatedResponse.
func NewPaginatedResponse[T any](results []T, count int64, page, pageSize int) PaginatedResponse[T] {
	if pageSize <= 0 {
		pageSize = 1
	}
	if results == nil {
		results = []T{}
	}
	return PaginatedResponse[T]{
		Count:       count,
		TotalPages:  (int(count) + pageSize - 1) / pageSize,
		CurrentPage: page,
		PageSize:    pageSize,
		Results:     results,
	}
}

// Paginate executes a paginated query and returns the results.
func Paginate[T any](db *gorm.DB, page, pageSize int) (*PaginatedResponse[T], error) {
	var count int64
	if err := db.Model(new(T)).Count(&count).Error; err != nil {
		return nil, err
	}

	var results []T
	offset := (page - 1) * pageSize
	if err := db.Offset(offset).Limit(pageSize).Find(&results).Error; err != nil {
		return nil, err
	}

	response := NewPaginatedResponse(results, count, page, pageSize)
	return &response, nil
}

// pageParams reads the page/page_size query parameters, defaulting to page 1
// and ten items, with page_size capped at 100.
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	return page, pageSize
}
