package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgtype"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// defaultPageSize bounds list endpoints when the client does not ask
// for a specific page size.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pagination holds the parsed page/limit query parameters.
type pagination struct {
	Page   int
	Limit  int32
	Offset int32
}

// parsePagination reads ?page and ?limit with sane bounds.
func parsePagination(c *gin.Context) pagination {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return pagination{
		Page:   page,
		Limit:  int32(limit),
		Offset: int32((page - 1) * limit),
	}
}

// timeOrNil converts a nullable timestamp to *time.Time for JSON.
func timeOrNil(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}

// textOrEmpty converts a nullable text column to a plain string.
func textOrEmpty(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}
