package app

import (
	"pwnpath_backend/docs"
	"pwnpath_backend/internal/config"
	"pwnpath_backend/internal/middleware"
	"pwnpath_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 公共路由
	public := router.Group("/api")
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	// 需要授权的路由
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		api.GET("/auth/me", c.auth.Me)

		api.GET("/user/profile", c.user.GetProfile)
		api.PUT("/user/profile", c.user.UpdateProfile)
		api.PUT("/user/preferences", c.user.UpdatePreferences)
		api.POST("/user/avatar", c.user.UploadAvatar)

		api.GET("/curriculum", c.curriculum.ListPhases)
		api.GET("/curriculum/states", c.curriculum.PhaseStates)
		api.GET("/curriculum/:phase", c.curriculum.GetPhase)
		api.GET("/curriculum/:phase/:day/:hour", c.curriculum.GetLesson)

		api.GET("/progress", c.progress.GetProgress)
		api.GET("/progress/:phase", c.progress.GetPhaseProgress)
		api.GET("/progress/:phase/:day/:hour", c.progress.GetRecord)
		api.PUT("/progress/:phase/:day/:hour", c.progress.UpdateRecord)
		api.POST("/progress/:phase/:day/:hour/quiz", c.progress.SubmitQuiz)

		api.GET("/daily-plan", c.planner.GetPlansBetween)
		api.GET("/daily-plan/:date", c.planner.GetDailyPlan)
		api.POST("/daily-plan/:date/sessions", c.planner.AddSession)
		api.PUT("/daily-plan/:date/sessions/:index", c.planner.UpdateSession)
		api.DELETE("/daily-plan/:date/sessions/:index", c.planner.DeleteSession)
		api.POST("/daily-plan/:date/sessions/:index/toggle", c.planner.ToggleSession)
		api.PUT("/daily-plan/:date/total-hours", c.planner.SetTotalHours)

		api.GET("/analytics/overview", c.analytics.GetOverview)
		api.GET("/analytics/progress-chart", c.analytics.GetProgressChart)
		api.GET("/analytics/streak", c.analytics.GetStreak)

		api.GET("/dashboard", c.dashboard.Summary)

		api.GET("/challenges", c.challenge.List)
		api.GET("/challenges/stats", c.challenge.Stats)
		api.GET("/challenges/:id", c.challenge.Get)
		api.POST("/challenges/:id/submit", c.challenge.SubmitFlag)

		api.GET("/projects", c.project.List)
		api.GET("/projects/submissions", c.project.Submissions)
		api.GET("/projects/:id", c.project.Get)
		api.POST("/projects/:id/submit", c.project.Submit)
		api.POST("/projects/:id/demo-video", c.project.UploadDemoVideo)
	}
}
