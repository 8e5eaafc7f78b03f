package handlers

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/thereayou/messenger/internal/metrics"
	"github.com/thereayou/messenger/internal/middleware"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

func NewRouter(log logrus.FieldLogger, api *APIHandler, web *WebHandler, health *HealthHandler) *gin.Engine {
	RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log), middleware.Metrics())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.tmpl")))

	r.GET("/healthz", health.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	APIEndpoints(r, api)
	WebEndpoints(r, web)

	r.NoRoute(web.NotFound)
	return r
}

func APIEndpoints(r *gin.Engine, api *APIHandler) {
	g := r.Group("/api")
	{
		g.GET("/users", api.ListUsers)
		g.POST("/users", api.CreateUser)
		g.GET("/users/:id", api.GetUser)

		g.GET("/chats", api.ListChats)
		g.POST("/chats", api.CreateChat)
		g.GET("/chats/:id", api.GetChat)
		g.DELETE("/chats/:id", api.DeleteChat)

		g.GET("/chats/:id/messages", api.ListMessages)
		g.POST("/chats/:id/messages", api.SendMessage)
	}
}

func WebEndpoints(r *gin.Engine, web *WebHandler) {
	g := r.Group("/", middleware.FlashSession())
	{
		g.GET("/", web.Home)
		g.POST("/users", web.CreateUser)
		g.POST("/chats", web.CreateChat)
		g.GET("/chats/:id", web.ViewChat)
		g.POST("/chats/:id/messages", web.PostMessage)
	}
}
