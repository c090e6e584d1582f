package app

import (
	"learnhub_backend/docs"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/courses", c.course.Catalog)
		public.GET("/courses/:id", c.course.Detail)

		public.GET("/articles", c.article.List)
		public.GET("/articles/:id", c.article.Get)
	}

	// Community: reads allow guests, writes require auth.
	community := router.Group("/api/community")
	{
		community.GET("/posts", middleware.TryAuthMiddleware(cfg), c.community.Feed)
		community.GET("/posts/:id", middleware.TryAuthMiddleware(cfg), c.community.GetPost)

		authorized := community.Group("/")
		authorized.Use(middleware.AuthMiddleware(cfg))
		{
			authorized.POST("/posts", c.community.CreatePost)
			authorized.DELETE("/posts/:id", c.community.DeletePost)
			authorized.POST("/posts/:id/comments", c.community.AddComment)
			authorized.DELETE("/comments/:id", c.community.DeleteComment)
			authorized.POST("/posts/:id/like", c.community.ToggleLike)
			authorized.POST("/uploads", c.community.UploadPostImage)
		}
	}

	// Authenticated learner routes.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user, s.sessions))
	{
		authGroup.GET("/auth/me", c.auth.Me)
		authGroup.PUT("/auth/me", c.auth.UpdateMe)

		authGroup.POST("/courses/:id/enroll", c.course.Enroll)

		authGroup.GET("/dashboard", c.classroom.Dashboard)
		authGroup.GET("/classroom/:courseId", c.classroom.State)
		authGroup.GET("/classroom/:courseId/progress", c.classroom.Progress)
		authGroup.POST("/lessons/:lessonId/finish", c.classroom.FinishLesson)

		authGroup.POST("/quiz/lessons/:lessonId/start", c.quiz.StartLessonQuiz)
		authGroup.POST("/quiz/courses/:courseId/pretest/start", c.quiz.StartPreTest)
		authGroup.POST("/quiz/attempts/:quizKey/select", c.quiz.Select)
		authGroup.POST("/quiz/attempts/:quizKey/previous", c.quiz.Previous)
		authGroup.POST("/quiz/attempts/:quizKey/advance", c.quiz.Advance)
		authGroup.POST("/quiz/attempts/:quizKey/retry", c.quiz.Retry)
		authGroup.DELETE("/quiz/attempts/:quizKey", c.quiz.Discard)

		authGroup.GET("/lessons/:lessonId/questions", c.qa.List)
		authGroup.POST("/lessons/:lessonId/questions", c.qa.Ask)
		authGroup.POST("/questions/:questionId/answers", c.qa.Answer)
	}

	// Admin console.
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.admin.Users)

		admin.POST("/courses", c.admin.CreateCourse)
		admin.PUT("/courses/:id", c.admin.UpdateCourse)
		admin.DELETE("/courses/:id", c.admin.DeleteCourse)

		admin.POST("/modules", c.admin.CreateModule)
		admin.PUT("/modules/:id", c.admin.UpdateModule)
		admin.DELETE("/modules/:id", c.admin.DeleteModule)

		admin.POST("/lessons", c.admin.CreateLesson)
		admin.PUT("/lessons/:id", c.admin.UpdateLesson)
		admin.DELETE("/lessons/:id", c.admin.DeleteLesson)

		admin.POST("/questions", c.admin.CreateQuestion)
		admin.PUT("/questions/:id", c.admin.UpdateQuestion)
		admin.DELETE("/questions/:id", c.admin.DeleteQuestion)

		admin.GET("/articles", c.admin.ListArticles)
		admin.POST("/articles", c.admin.CreateArticle)
		admin.PUT("/articles/:id", c.admin.UpdateArticle)
		admin.DELETE("/articles/:id", c.admin.DeleteArticle)

		admin.POST("/uploads/images", c.admin.UploadImage)
		admin.POST("/uploads/videos", c.admin.UploadVideo)
	}
}
