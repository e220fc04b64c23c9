// Package health поднимает служебный HTTP сервер: liveness проба для
// хостинга и экспорт метрик.
package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func New() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Bot is running")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
