package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		log.Printf("%s %s %d %s %s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), c.ClientIP(), latency)
	}
}
