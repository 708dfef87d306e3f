package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/khoahotran/portfolio/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio/pkg/auth"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// Handlers bundles everything the router mounts. History may be nil when no
// database is configured, Backup when snapshots are disabled.
type Handlers struct {
	Auth        *AuthHandler
	Portfolio   *PortfolioHandler
	Profile     *ProfileHandler
	Projects    *ProjectHandler
	Experiences *ExperienceHandler
	Skills      *SkillHandler
	Publish     *PublishHandler
	Media       *MediaHandler
	Contact     *ContactHandler
	Feed        *FeedHandler
	History     *HistoryHandler
	Backup      *BackupHandler
}

func NewRouter(h Handlers, jwtSvc *auth.JWTService, sessions *authUC.SessionRegistry, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), ErrorMiddleware(log))

	api := router.Group("/api")
	{
		public := api.Group("/")
		{
			public.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
			public.GET("/portfolio", h.Portfolio.GetPortfolio)
			public.POST("/contact", h.Contact.Contact)
			public.GET("/feed/rss", h.Feed.RSS)
			public.GET("/feed/atom", h.Feed.Atom)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/auth/login", h.Auth.Login)

			adminPrivate := admin.Group("/")
			adminPrivate.Use(AuthMiddleware(jwtSvc, sessions, log))
			{
				adminPrivate.GET("/session", h.Auth.GetSession)
				adminPrivate.POST("/logout", h.Auth.Logout)
				adminPrivate.PUT("/mode", h.Auth.SetMode)

				adminPrivate.GET("/export", h.Portfolio.Export)
				adminPrivate.POST("/reset", h.Portfolio.Reset)

				adminPrivate.GET("/publish/config", h.Publish.GetConfig)
				adminPrivate.PUT("/publish/config", h.Publish.SaveConfig)
				adminPrivate.POST("/publish", h.Publish.Publish)
				adminPrivate.GET("/publish/status", h.Publish.Status)

				if h.History != nil {
					adminPrivate.GET("/history", h.History.List)
				}
				if h.Backup != nil {
					adminPrivate.POST("/backup", h.Backup.Create)
				}

				edit := adminPrivate.Group("/")
				edit.Use(RequireEditMode(sessions))
				{
					profile := edit.Group("/profile")
					profile.POST("/edit", h.Profile.BeginEdit)
					profile.PATCH("/draft", h.Profile.UpdateDraft)
					profile.POST("/save", h.Profile.Save)
					profile.POST("/cancel", h.Profile.Cancel)

					h.Projects.register(edit.Group("/projects"))
					h.Experiences.register(edit.Group("/experiences"))

					skills := edit.Group("/skills")
					skills.POST("", h.Skills.Add)
					skills.DELETE("/:tag", h.Skills.Delete)
					skills.POST("/edit", h.Skills.BeginEdit)
					skills.PATCH("/draft", h.Skills.UpdateDraft)
					skills.POST("/save", h.Skills.Save)
					skills.POST("/cancel", h.Skills.Cancel)

					media := edit.Group("/media")
					media.POST("/image", h.Media.UploadImage)
					media.DELETE("/image", h.Media.RemoveImage)
					media.POST("/resume", h.Media.UploadResume)
				}
			}
		}
	}
	return router
}
