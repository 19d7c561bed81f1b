package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Listing endpoints (vault items, recipients, policies, audit events) share
// one offset/limit contract. The audit feed is the largest consumer, so the
// cap keeps a single page from dragging the whole trail over the wire.
const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// ParsePagination reads and validates the offset and limit query parameters.
// Offset defaults to 0, limit to defaultPageSize, capped at maxPageSize.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 || limit > maxPageSize {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and %d", maxPageSize)
	}

	return offset, limit, nil
}
