package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler reports process liveness plus store and cache reachability.
type HealthHandler struct {
	mongo *mongo.Client
	redis *redis.Client
}

// NewHealthHandler creates the handler. Either client may be nil, in which
// case its check is reported as skipped.
func NewHealthHandler(mongoClient *mongo.Client, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{mongo: mongoClient, redis: redisClient}
}

// Check answers the health probe.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}

	if h.mongo != nil {
		if err := h.mongo.Ping(ctx, nil); err != nil {
			checks["mongo"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks["mongo"] = "ok"
		}
	} else {
		checks["mongo"] = "skipped"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "skipped"
	}

	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": checks})
}
