package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/controller"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"
	"learnhub_backend/pkg/security"
	"learnhub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user      *repository.UserRepository
	course    *repository.CourseRepository
	quiz      *repository.QuizRepository
	progress  *repository.ProgressRepository
	community *repository.CommunityRepository
	lessonQA  *repository.LessonQARepository
	article   *repository.ArticleRepository
}

type services struct {
	auth      *service.AuthService
	storage   *service.StorageService
	course    *service.CourseService
	quiz      *service.QuizService
	progress  *service.ProgressService
	community *service.CommunityService
	lessonQA  *service.LessonQAService
	article   *service.ArticleService
	admin     *service.AdminService
	sessions  *service.SessionRegistry
	attempts  *service.AttemptStore
}

type controllers struct {
	auth      *controller.AuthController
	course    *controller.CourseController
	classroom *controller.ClassroomController
	quiz      *controller.QuizController
	community *controller.CommunityController
	qa        *controller.QAController
	article   *controller.ArticleController
	admin     *controller.AdminController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		course:    repository.NewCourseRepository(db),
		quiz:      repository.NewQuizRepository(db),
		progress:  repository.NewProgressRepository(db),
		community: repository.NewCommunityRepository(db, rdb),
		lessonQA:  repository.NewLessonQARepository(db),
		article:   repository.NewArticleRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.attempts = service.NewAttemptStore()
	s.sessions = service.NewSessionRegistry(repos.user, repos.progress)

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.course = service.NewCourseService(repos.course, repos.quiz, repos.progress)
	s.quiz = service.NewQuizService(repos.quiz, repos.course, repos.progress, s.attempts)
	s.progress = service.NewProgressService(repos.progress, repos.course, s.quiz, s.sessions)
	s.community = service.NewCommunityService(repos.community)
	s.lessonQA = service.NewLessonQAService(repos.lessonQA, repos.course)
	s.article = service.NewArticleService(repos.article)
	s.admin = service.NewAdminService(repos.user, repos.progress)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		course:    controller.NewCourseController(s.course),
		classroom: controller.NewClassroomController(s.progress),
		quiz:      controller.NewQuizController(s.quiz),
		community: controller.NewCommunityController(s.community, s.storage),
		qa:        controller.NewQAController(s.lessonQA),
		article:   controller.NewArticleController(s.article),
		admin:     controller.NewAdminController(s.course, s.article, s.admin, s.storage),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.Server.Mode != "release" {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("learnhub-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, services, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
