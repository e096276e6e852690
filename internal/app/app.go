package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spmtutor/internal/config"
	"spmtutor/internal/controller"
	"spmtutor/internal/drill"
	"spmtutor/internal/llm"
	"spmtutor/internal/repository"
	"spmtutor/internal/service"
	"spmtutor/pkg/configwatcher"
	"spmtutor/pkg/database"
	"spmtutor/pkg/logger"
	"spmtutor/pkg/monitoring"
	"spmtutor/pkg/security"
	"spmtutor/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	Provider llm.Provider

	services        *services
	configCallbacks []func(*config.Config)
	tracer          *sdktrace.TracerProvider

	// 后台任务（限流清理、配置监听）的生命周期
	ctx    context.Context
	cancel context.CancelFunc
}

type repositories struct {
	user    *repository.UserRepository
	drill   *repository.DrillRepository
	grammar *repository.GrammarRepository
	weekly  *repository.WeeklyRepository
	chat    *repository.ChatRepository
	reset   *repository.ResetRepository
}

type services struct {
	generator  *service.GeneratorService
	training   *service.DrillService
	vocab      *service.DrillService
	grammar    *service.GrammarService
	weekly     *service.WeeklyService
	chat       *service.ChatService
	teacher    *service.TeacherService
	profile    *service.ProfileService
	askLimiter service.AskLimiter
}

type controllers struct {
	training *controller.DrillController
	vocab    *controller.DrillController
	grammar  *controller.GrammarController
	weekly   *controller.WeeklyController
	chat     *controller.ChatController
	teacher  *controller.TeacherController
	profile  *controller.ProfileController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		drill:   repository.NewDrillRepository(db),
		grammar: repository.NewGrammarRepository(db),
		weekly:  repository.NewWeeklyRepository(db),
		chat:    repository.NewChatRepository(db),
		reset:   repository.NewResetRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}
	loc := cfg.Server.Location()

	s.generator = service.NewGeneratorService(a.Provider, service.GeneratorConfig{
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
		Timeout:     cfg.AI.Timeout(),
	})
	s.training = service.NewDrillService(drill.KindWriting, repos.drill, repos.user, s.generator, loc)
	s.vocab = service.NewDrillService(drill.KindVocab, repos.drill, repos.user, s.generator, loc)
	s.grammar = service.NewGrammarService(repos.grammar, loc)
	s.weekly = service.NewWeeklyService(repos.weekly, repos.user, s.generator, loc)

	// 多实例部署时冷却状态放在 Redis
	if rdb != nil {
		s.askLimiter = service.NewRedisAskLimiter(rdb, cfg.Chat.Cooldown())
	} else {
		mem := service.NewMemoryAskLimiter(cfg.Chat.Cooldown())
		go mem.Run(a.ctx)
		s.askLimiter = mem
	}
	s.chat = service.NewChatService(a.Provider, repos.chat, s.askLimiter, cfg.AI.Timeout())

	s.teacher = service.NewTeacherService(repos.user, repos.reset)
	s.profile = service.NewProfileService(repos.user)
	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		training: controller.NewDrillController(s.training),
		vocab:    controller.NewDrillController(s.vocab),
		grammar:  controller.NewGrammarController(s.grammar),
		weekly:   controller.NewWeeklyController(s.weekly),
		chat:     controller.NewChatController(s.chat),
		teacher:  controller.NewTeacherController(s.teacher),
		profile:  controller.NewProfileController(s.profile),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// registerConfigCallbacks 配置热更新：日志级别与问答冷却时间
func (a *App) registerConfigCallbacks() {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		if cfg.Log.Level != "" {
			logger.SetLevel(cfg.Log.Level)
		}
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.services.askLimiter.SetCooldown(cfg.Chat.Cooldown())
	})
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	logger.Log.Info("Config reloaded",
		zap.String("log_level", logger.Level().String()),
		zap.Duration("chat_cooldown", cfg.Chat.Cooldown()))
}

func (a *App) startBackgroundTasks() {
	file := config.FileUsed()
	if file == "" {
		return
	}
	go func() {
		if err := configwatcher.Watch(a.ctx, file, a.applyConfig); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

// LLMConfig 将 ai 配置转换为模型提供方配置
func LLMConfig(ai config.AIConfig) llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = ai.Provider
	cfg.OpenAI.APIKey = ai.APIKey
	cfg.OpenAI.BaseURL = ai.BaseURL
	cfg.Anthropic.APIKey = ai.AnthropicAPIKey
	cfg.Gemini.APIKey = ai.GeminiAPIKey
	if ai.Model != "" {
		switch ai.Provider {
		case "anthropic":
			cfg.Anthropic.Model = ai.Model
		case "gemini":
			cfg.Gemini.Model = ai.Model
		default:
			cfg.OpenAI.Model = ai.Model
		}
	}
	if ai.RetryAttempts > 0 {
		cfg.Retry.MaxAttempts = ai.RetryAttempts
	}
	return cfg
}

// NewApp 初始化日志、数据库、Redis、模型提供方并装配路由
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		logger.Log.Info("Database migrated")
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("initialize redis: %w", err)
	}

	llmCfg := LLMConfig(cfg.AI)
	if err := llmCfg.Validate(); err != nil {
		return nil, err
	}
	provider, err := llm.NewProvider(context.Background(), llmCfg)
	if err != nil {
		return nil, err
	}

	app := New(cfg, db, rdb, provider)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("spm-tutor", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			app.cancel()
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		app.tracer = tp
	}

	app.startBackgroundTasks()
	return app, nil
}

// New 用已建立的连接装配 App，rdb 可以为 nil
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, provider llm.Provider) *App {
	gin.SetMode(cfg.Server.Mode)

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		Provider: provider,
		ctx:      ctx,
		cancel:   cancel,
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(app.services, db, rdb)
	app.registerConfigCallbacks()

	// 监控初始化
	monitoring.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, repos)
	return app
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		a.Close()
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(ctx)
	a.Close()
	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}

// Close 停止后台任务并释放连接
func (a *App) Close() {
	a.cancel()

	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
	_ = logger.Log.Sync()
}
