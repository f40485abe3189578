package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pwnpath_backend/internal/config"
	"pwnpath_backend/internal/controller"
	"pwnpath_backend/internal/event"
	"pwnpath_backend/internal/repository"
	"pwnpath_backend/internal/service"
	"pwnpath_backend/pkg/database"
	"pwnpath_backend/pkg/logger"
	"pwnpath_backend/pkg/monitoring"
	"pwnpath_backend/pkg/security"
	"pwnpath_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Bus             *event.Bus
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	curriculum *repository.CurriculumRepository
	progress   *repository.ProgressRepository
	plan       *repository.PlanRepository
	challenge  *repository.ChallengeRepository
	project    *repository.ProjectRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	storage    *service.StorageService
	curriculum *service.CurriculumService
	progress   *service.ProgressService
	planner    *service.PlannerService
	analytics  *service.AnalyticsService
	dashboard  *service.DashboardService
	challenge  *service.ChallengeService
	project    *service.ProjectService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	curriculum *controller.CurriculumController
	progress   *controller.ProgressController
	planner    *controller.PlannerController
	analytics  *controller.AnalyticsController
	dashboard  *controller.DashboardController
	challenge  *controller.ChallengeController
	project    *controller.ProjectController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// OnConfigReload 配置文件热更新后回调，仅分发给已注册的组件
func (a *App) OnConfigReload(cfg *config.Config) {
	logger.Log.Info("Config reloaded")
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		curriculum: repository.NewCurriculumRepository(db),
		progress:   repository.NewProgressRepository(db),
		plan:       repository.NewPlanRepository(db),
		challenge:  repository.NewChallengeRepository(db),
		project:    repository.NewProjectRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client, bus *event.Bus) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.curriculum = service.NewCurriculumService(repos.curriculum, rdb)
	s.progress = service.NewProgressService(repos.progress, s.curriculum, bus)
	s.planner = service.NewPlannerService(repos.plan, bus)
	s.analytics = service.NewAnalyticsService(repos.progress, repos.plan, repos.challenge, repos.project, repos.user, s.curriculum, cfg.Analytics)
	s.dashboard = service.NewDashboardService(s.analytics, s.planner, s.progress, repos.progress)
	s.challenge = service.NewChallengeService(repos.challenge)
	s.project = service.NewProjectService(repos.project, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user, s.storage),
		curriculum: controller.NewCurriculumController(s.curriculum, s.progress),
		progress:   controller.NewProgressController(s.progress),
		planner:    controller.NewPlannerController(s.planner),
		analytics:  controller.NewAnalyticsController(s.analytics),
		dashboard:  controller.NewDashboardController(s.dashboard),
		challenge:  controller.NewChallengeController(s.challenge),
		project:    controller.NewProjectController(s.project),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

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

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用时降级直连数据库
		logger.Log.Warn("Redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	}

	bus := event.NewBus(logger.Log)
	go bus.Run()

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Bus:    bus,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb, bus)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("pwnpath-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

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

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	a.Bus.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
