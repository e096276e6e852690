package app

import (
	"spmtutor/docs"
	"spmtutor/internal/middleware"
	"spmtutor/internal/model"
	"spmtutor/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(a.Config.JWT.Secret), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(r *gin.RouterGroup, c *controllers) {
	r.GET("/me", c.profile.Me)

	training := r.Group("/training")
	{
		training.POST("/start", c.training.Start)
		training.POST("/next", c.training.Next)
	}

	vocab := r.Group("/vocab")
	{
		vocab.POST("/start", c.vocab.Start)
		vocab.POST("/next", c.vocab.Next)
	}

	grammar := r.Group("/grammar")
	{
		grammar.POST("/start", c.grammar.Start)
		grammar.POST("/next", c.grammar.Next)
	}

	weekly := r.Group("/weekly")
	{
		weekly.POST("/start", c.weekly.Start)
		weekly.POST("/submit", c.weekly.Submit)
	}

	chat := r.Group("/chat")
	{
		chat.POST("", c.chat.Ask)
		chat.GET("/history", c.chat.History)
	}
}

func (a *App) registerTeacherRoutes(r *gin.RouterGroup, c *controllers) {
	teacher := r.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/reset-student", c.teacher.ResetStudent)
		teacher.GET("/students", c.teacher.Students)
	}
}
