package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/patients?"+rawQuery, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	p := ParsePagination(testContext("page=2&per_page=5"), 10)
	assert.Equal(t, int64(2), p.Page)
	assert.Equal(t, int64(5), p.PerPage)
	assert.Equal(t, int64(5), p.Skip())
}

func TestParsePaginationDefaults(t *testing.T) {
	p := ParsePagination(testContext(""), 10)
	assert.Equal(t, int64(1), p.Page)
	assert.Equal(t, int64(10), p.PerPage)
	assert.Equal(t, int64(0), p.Skip())
}

func TestParsePaginationRejectsBadValues(t *testing.T) {
	p := ParsePagination(testContext("page=-3&per_page=0"), 10)
	assert.Equal(t, int64(1), p.Page)
	assert.Equal(t, int64(10), p.PerPage)

	p = ParsePagination(testContext("page=abc"), 10)
	assert.Equal(t, int64(1), p.Page)
	assert.Equal(t, int64(10), p.PerPage)
}

func TestParsePaginationClampsOversizedPerPage(t *testing.T) {
	p := ParsePagination(testContext("per_page=1000"), 10)
	assert.Equal(t, int64(100), p.PerPage)

	p = ParsePagination(testContext("per_page=101"), 10)
	assert.Equal(t, int64(100), p.PerPage)

	p = ParsePagination(testContext("per_page=100"), 10)
	assert.Equal(t, int64(100), p.PerPage)
}

func TestPages(t *testing.T) {
	p := Pagination{Page: 2, PerPage: 5}
	// 12 matching rows at 5 per page: pages 1 and 2 full, page 3 partial
	assert.Equal(t, int64(3), p.Pages(12))
	assert.Equal(t, int64(0), p.Pages(0))
	assert.Equal(t, int64(1), p.Pages(5))
	assert.Equal(t, int64(2), p.Pages(6))
}
