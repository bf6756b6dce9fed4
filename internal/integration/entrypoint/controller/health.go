// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController reports service liveness and database reachability.
type HealthController struct {
	pingDB    func() bool
	startedAt time.Time
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status        string `json:"status"`
	Database      string `json:"database"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	CheckedAt     string `json:"checked_at"`
}

// NewHealthController creates a health controller. pingDB reports whether
// the database currently answers.
func NewHealthController(pingDB func() bool) *HealthController {
	return &HealthController{
		pingDB:    pingDB,
		startedAt: time.Now().UTC(),
	}
}

// Check handles GET /health. The endpoint answers 200 while the database is
// reachable and 503 otherwise, so load balancers can act on the status code
// alone.
func (h *HealthController) Check(c *gin.Context) {
	dbUp := h.pingDB != nil && h.pingDB()

	status := "healthy"
	database := "up"
	code := http.StatusOK
	if !dbUp {
		status = "degraded"
		database = "down"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:        status,
		Database:      database,
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		CheckedAt:     time.Now().UTC().Format(time.RFC3339),
	})
}
