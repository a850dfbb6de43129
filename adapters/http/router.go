package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authUC "github.com/khoahotran/scholar-folio/internal/application/usecase/auth"
	backupUC "github.com/khoahotran/scholar-folio/internal/application/usecase/backup"
	contentUC "github.com/khoahotran/scholar-folio/internal/application/usecase/content"
	feedUC "github.com/khoahotran/scholar-folio/internal/application/usecase/feed"
	"github.com/khoahotran/scholar-folio/internal/application/usecase/notify"
	"github.com/khoahotran/scholar-folio/pkg/auth"
	"github.com/khoahotran/scholar-folio/pkg/logger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type RouterDeps struct {
	Store    *contentUC.Store
	Gate     *authUC.Gate
	Backup   *backupUC.BackupUseCase
	RSS      *feedUC.RSSUseCase
	Notifier *notify.Channel
	Meta     MetaReader
	JWT      *auth.JWTService
	Logger   logger.Logger

	// ServiceName enables otelgin request spans when non-empty.
	ServiceName string
}

func NewRouter(d RouterDeps) *gin.Engine {
	authHandler := NewAuthHandler(d.Gate, d.JWT, d.Notifier, d.Logger)
	sessionHandler := NewSessionHandler(d.Gate, d.Store, d.Notifier, d.Meta)
	profileHandler := NewProfileHandler(d.Store, d.Logger)
	collectionHandler := NewCollectionHandler(d.Store, d.Logger)
	backupHandler := NewBackupHandler(d.Backup, d.Logger)
	feedHandler := NewFeedHandler(d.RSS, d.Logger)

	authMiddleware := AuthMiddleware(d.JWT, d.Gate)
	editMiddleware := RequireEditing(d.Gate)

	router := gin.New()
	router.Use(gin.Recovery())
	if d.ServiceName != "" {
		router.Use(otelgin.Middleware(d.ServiceName))
	}
	router.Use(ErrorMiddleware(d.Logger))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.GET("/profile", profileHandler.GetProfile)
		api.GET("/collections/:name", collectionHandler.GetCollection)
		api.GET("/session", sessionHandler.GetSession)
		api.GET("/notification", sessionHandler.GetNotification)
		api.DELETE("/notification", sessionHandler.ClearNotification)
		api.GET("/highlight", sessionHandler.GetHighlight)
		api.PUT("/highlight", sessionHandler.SetHighlight)
		api.GET("/rss.xml", feedHandler.Serve)
		api.POST("/auth/login", authHandler.Login)

		private := api.Group("/")
		private.Use(authMiddleware)
		{
			private.POST("/auth/logout", authHandler.Logout)
			private.PUT("/auth/password", authHandler.ChangePassword)
			private.POST("/session/editing", sessionHandler.ToggleEditing)
			private.GET("/backup/export", backupHandler.Export)
			private.POST("/backup/import", backupHandler.Import)

			editing := private.Group("/")
			editing.Use(editMiddleware)
			{
				editing.PATCH("/profile", profileHandler.UpdateProfile)
				editing.PUT("/profile", profileHandler.ReplaceProfile)
				editing.PUT("/collections/:name", collectionHandler.ReplaceCollection)
				editing.POST("/collections/:name/items", collectionHandler.AddItem)
				editing.PUT("/collections/:name/items/:id", collectionHandler.UpdateItem)
				editing.DELETE("/collections/:name/items/:id", collectionHandler.DeleteItem)
			}
		}
	}

	return router
}
