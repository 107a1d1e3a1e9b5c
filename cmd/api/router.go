package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bestiespace-backend/internal/shared/middleware"
	"bestiespace-backend/internal/shared/response"
	"bestiespace-backend/pkg/container"
)

// SetupRouter builds the full route tree. Owner routes sit behind the JWT
// middleware; public routes are reachable with nothing but a secret code.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	router.GET("/health", healthHandler(c))

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.AdminHandler.Signup)
		auth.POST("/login", c.AdminHandler.Login)
	}

	public := v1.Group("/public/besties")
	{
		public.GET("/:secretCode", c.PublicHandler.GetBySecretCode)
		public.POST("/:secretCode/answer", c.PublicHandler.AnswerQuestion)
		public.POST("/:secretCode/message", c.PublicHandler.SubmitMessage)
	}

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		admin := authed.Group("/admin")
		{
			admin.GET("/profile", c.AdminHandler.GetProfile)
			admin.PUT("/profile", c.AdminHandler.UpdateProfile)
			admin.PUT("/password", c.AdminHandler.UpdatePassword)
		}

		besties := authed.Group("/besties")
		{
			besties.POST("", c.BestieHandler.Create)
			besties.GET("", c.BestieHandler.List)
			besties.GET("/:id", c.BestieHandler.Get)
			besties.PUT("/:id", c.BestieHandler.Update)
			besties.DELETE("/:id", c.BestieHandler.Delete)
			besties.PATCH("/:id/publish", c.BestieHandler.TogglePublish)

			besties.POST("/:id/gallery", c.BestieHandler.AddGalleryImage)
			besties.DELETE("/:id/gallery", c.BestieHandler.RemoveGalleryImage)

			besties.PUT("/:id/song", c.BestieHandler.UpdateSongDedication)

			besties.POST("/:id/playlist", c.BestieHandler.AddPlaylistItem)
			besties.DELETE("/:id/playlist/:index", c.BestieHandler.RemovePlaylistItem)
			besties.PUT("/:id/playlist/:index", c.BestieHandler.UpdatePlaylistItem)
		}

		upload := authed.Group("/upload")
		{
			upload.POST("/profile-photo", c.UploadHandler.UploadProfilePhoto)
			upload.POST("/gallery", c.UploadHandler.UploadGalleryImages)
			upload.POST("/song-dedication", c.UploadHandler.UploadSongDedication)
			upload.POST("/playlist", c.UploadHandler.UploadPlaylistAudio)
		}
	}

	return router
}

func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := gin.H{
			"status":   "ok",
			"version":  c.Config.App.Version,
			"database": "up",
			"cache":    "up",
		}
		code := http.StatusOK

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = "down"
			code = http.StatusServiceUnavailable
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			// Degraded but serviceable; reads fall through to the database.
			status["cache"] = "down"
		}

		if code != http.StatusOK {
			ctx.JSON(code, response.Response{Success: false, Data: status})
			return
		}
		response.Success(ctx, code, "", status)
	}
}
