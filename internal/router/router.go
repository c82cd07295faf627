package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/teamsite/internal/config"
	"github.com/teamsite/internal/db"
	"github.com/teamsite/internal/handler"
	"github.com/teamsite/internal/middleware"
	"github.com/teamsite/internal/storage"
)

// Setup configures the gin engine and route table.
func Setup(cfg config.AppConfig, store storage.BlobStore) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("teamsite_session", sessionStore))

	normalizer := storage.Normalizer{BaseURL: cfg.StorageBaseURL, Bucket: cfg.StorageBucket}
	api := handler.NewAPI(db.DB, store, normalizer)

	// The local driver serves its uploads as static files.
	if cfg.StorageDriver == "local" {
		r.Static(cfg.UploadURLPath, cfg.UploadDir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Public site surface.
	r.GET("/members", api.ListMembers)
	r.GET("/gallery", api.ListGallery)
	r.GET("/news", api.ListNews)
	r.GET("/news/:slug", api.GetNewsArticle)
	r.POST("/contact", api.CreateContact)

	r.POST("/admin/login", api.Login)
	r.POST("/admin/logout", api.Logout)

	// Everything that mutates site content, and the contact inbox, needs
	// an admin session.
	auth := r.Group("")
	auth.Use(handler.AuthRequired())
	{
		auth.GET("/admin/dashboard", api.Dashboard)

		auth.POST("/members", api.CreateMember)
		auth.DELETE("/members", api.DeleteMember)

		auth.POST("/gallery", api.CreateGalleryItem)
		auth.DELETE("/gallery", api.DeleteGalleryItem)

		auth.POST("/news", api.CreateNewsArticle)
		auth.DELETE("/news", api.DeleteNewsArticle)

		auth.GET("/contact", api.ListContacts)
		auth.DELETE("/contact", api.DeleteContact)
		auth.DELETE("/contact/:id", api.DeleteContactByID)
		auth.PUT("/contact/:id/read", api.MarkContactRead)
	}

	return r
}
