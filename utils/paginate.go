package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// maxPerPage bounds how many rows one page may request.
const maxPerPage = 100

// Pagination holds the page window parsed from a list request.
type Pagination struct {
	Page    int64
	PerPage int64
}

// ParsePagination reads page/per_page query params with sane bounds.
func ParsePagination(c *gin.Context, defaultPerPage int64) Pagination {
	p := Pagination{Page: 1, PerPage: defaultPerPage}
	if v, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.ParseInt(c.DefaultQuery("per_page", ""), 10, 64); err == nil && v > 0 {
		if v > maxPerPage {
			v = maxPerPage
		}
		p.PerPage = v
	}
	return p
}

func (p Pagination) Skip() int64 {
	return (p.Page - 1) * p.PerPage
}

// Pages is the total page count for the given row count.
func (p Pagination) Pages(total int64) int64 {
	if total == 0 {
		return 0
	}
	return (total + p.PerPage - 1) / p.PerPage
}
