package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/talentgraph/backend/models"
)

// Version is the API version reported by the health check
const Version = "1.0.0"

// HealthCheck reports server liveness
// @Summary Health check
// @Description Check whether the API server is up
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse "Server is healthy"
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Version:   Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
