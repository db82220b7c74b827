package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rappu-backend/config"
	"rappu-backend/controllers"
	"rappu-backend/middleware"
)

// SetupRouter wires the controllers onto the fixed path layout: the
// /api handlers, the /ruutu/* pretty URLs, and (for the local storage
// driver) the /files static mount the issued URLs point at.
func SetupRouter(
	cfg *config.Config,
	sc *controllers.ScreenController,
	rc *controllers.RSSController,
	lc *controllers.LogoController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := cfg.CORSOrigins
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.StorageDriver == "local" {
		r.Static("/files", cfg.DataDir)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/hello", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true, "hello": "world"})
		})

		screens := api.Group("/ruutu")
		{
			screens.GET("", sc.ListScreens)
			screens.POST("", sc.SaveScreen)
			screens.GET("/:serial", sc.ResumeScreen)
			screens.POST("/:serial", sc.SaveScreenBySerial)
		}

		api.GET("/serve-ruutu", sc.ServeScreen)
		api.GET("/rss", rc.Proxy)
		api.POST("/logo", lc.Upload)
	}

	// Pretty URL the TVs are configured with.
	r.GET("/ruutu/*file", sc.ServeScreenFile)

	return r
}
