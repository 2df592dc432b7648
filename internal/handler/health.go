package handler

import (
	"context"
	"net/http"
	"time"

	"listacomparativa/internal/infra"
	"listacomparativa/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks DB and Redis connectivity, the SMTP circuit breaker state and the
// dead-letter queue depths; never exposes credentials or internals.
func Health(db *gorm.DB, rdb *redis.Client, cb *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		dlq := gin.H{}
		for _, queue := range []string{worker.QueueOrdenes, worker.QueueEmail} {
			if n, err := worker.DLQLength(ctx, rdb, queue); err == nil {
				dlq[queue] = n
			}
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":    status == http.StatusOK,
			"db":    dbStatus,
			"redis": redisStatus,
			"smtp":  cb.State().String(),
			"dlq":   dlq,
		})
	}
}
