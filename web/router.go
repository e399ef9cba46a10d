package web

import (
	"fmt"
	"log"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/google/uuid"
	"github.com/kigodev/kigo/db"
	"github.com/kigodev/kigo/util"
	"golang.org/x/time/rate"
)

// Router serves the public read-only surface: health and RSS.
func Router(database *db.DB, conf *util.AppConfig) error {
	log.Printf("Starting RSS feed server on %s:%d", conf.Conf.Host, conf.Conf.HttpPort)
	g := NewRouter(database, conf)
	return g.Run(fmt.Sprintf(":%d", conf.Conf.HttpPort))
}

// NewRouter builds the gin engine; split out so tests can drive it with
// httptest.
func NewRouter(database *db.DB, conf *util.AppConfig) *gin.Engine {
	g := gin.Default()
	g.Use(gzip.Gzip(gzip.DefaultCompression))

	// Global rate limiter: 10 requests per second per IP, burst of 20
	globalLimiter := NewRateLimiter(rate.Limit(10), 20)
	g.Use(RateLimitMiddleware(globalLimiter))

	g.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": util.GetVersion()})
	})

	g.GET("/feed", func(c *gin.Context) {
		c.Header("Content-Type", "application/xml; charset=utf-8")

		username := c.Query("username")
		rss, err := GetRSS(database, conf, username)
		if err != nil {
			c.Render(404, render.String{Format: ""})
		} else {
			c.Render(200, render.String{Format: rss})
		}
	})

	g.GET("/feed/:id", func(c *gin.Context) {
		c.Header("Content-Type", "application/xml; charset=utf-8")
		name := c.Param("id")
		feedId, err := uuid.Parse(name)
		if err != nil {
			c.Render(404, render.String{Format: ""})
			return
		}

		rssItem, err := GetRSSItem(database, conf, feedId)
		if err != nil {
			c.Render(404, render.String{Format: ""})
		} else {
			c.Render(200, render.String{Format: rssItem})
		}
	})

	return g
}
