package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestTimeInterceptor logs how long each request took and records it in
// the request metrics.
func RequestTimeInterceptor() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		reqTime := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		logrus.Infof("request time: %v %v %d: %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), reqTime)
		observeRequest(c.Request.Method, route, c.Writer.Status(), reqTime)
	}
}
