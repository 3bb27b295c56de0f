// Package ops serves the health and metrics endpoints on a separate port.
package ops

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"attendance-backend/log"
)

// Pinger is a dependency whose health is reported.
type Pinger interface {
	Ping(ctx context.Context) error
}

const pingTimeout = 2 * time.Second

func NewRouter(checks map[string]Pinger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		result := gin.H{}
		healthy := true
		for name, p := range checks {
			if err := p.Ping(ctx); err != nil {
				log.Logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
				result[name] = err.Error()
				healthy = false
				continue
			}
			result[name] = "ok"
		}

		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"healthy": healthy, "checks": result})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
