package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpHandler "github.com/shubhashmahato/kurakani/internal/handler/http"
	wsHandler "github.com/shubhashmahato/kurakani/internal/handler/websocket"
	"github.com/shubhashmahato/kurakani/internal/hub"
	gormpersistence "github.com/shubhashmahato/kurakani/internal/infra/persistence/gorm"
	"github.com/shubhashmahato/kurakani/internal/infra/presence"
	"github.com/shubhashmahato/kurakani/internal/infra/setup"
	redisstate "github.com/shubhashmahato/kurakani/internal/infra/state/redis"
	"github.com/shubhashmahato/kurakani/internal/middleware"
	"github.com/shubhashmahato/kurakani/internal/service"
	"github.com/shubhashmahato/kurakani/internal/worker"
)

// Config holds everything read from the environment at startup.
type Config struct {
	DBUser          string
	DBPassword      string
	DBHost          string
	DBPort          string
	DBName          string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	ServerPort      string
	LogLevel        string
	RateLimitMax    int
	RateLimitWindow time.Duration
	JWTExpiryHours  int
	AppEnv          string
	KeyPrefix       string
}

// LoadConfig reads configuration from the environment, loading a .env file
// first when one exists.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          os.Getenv("DB_PORT"),
		DBName:          os.Getenv("DB_NAME"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		ServerPort:      os.Getenv("SERVER_PORT"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		AppEnv:          os.Getenv("APP_ENV"),
		KeyPrefix:       os.Getenv("REDIS_KEY_PREFIX"),
		RateLimitMax:    100,
		RateLimitWindow: 1 * time.Second,
		JWTExpiryHours:  24,
	}

	cfg.RedisDB, _ = strconv.Atoi(os.Getenv("REDIS_DB"))

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "kk:"
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("environment variable REDIS_ADDR must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET must be set")
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// App holds the assembled components of the service.
type App struct {
	Config      *Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	AsynqClient *asynq.Client
	Worker      *worker.WorkerServer
	Hub         *hub.Hub
	HttpServer  *http.Server
}

// NewApp wires the whole application: config, logger, storage, realtime
// core, services, handlers and routes.
func NewApp() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	log := logrus.New()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	logLevel, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)
	logrus.SetLevel(logLevel)
	log.Info("Configuration loaded successfully")

	log.Info("Initializing infrastructure...")
	db, err := setup.InitDB(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	if err := setup.MigrateDB(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}
	log.Info("Database initialized and migrated")

	redisClient, err := setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}
	log.Info("Redis client initialized")

	redisClientOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	asynqClient := asynq.NewClient(redisClientOpt)
	log.Info("Asynq client initialized")

	log.Info("Initializing repositories...")
	userRepo := gormpersistence.NewGormUserRepository(db)
	chatRepo := gormpersistence.NewGormChatRepository(db)
	messageRepo := gormpersistence.NewGormMessageRepository(db)
	callRepo := gormpersistence.NewGormCallRepository(db)
	presenceCache := redisstate.NewRedisPresenceCache(redisClient, cfg.KeyPrefix)
	log.Info("Repositories initialized")

	// This process restarting means every connection it held is gone, so
	// any lingering online flags in the user table are stale.
	if err := userRepo.ResetAllPresence(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to reset presence state: %w", err)
	}
	log.Info("Stale presence state reset")

	log.Info("Initializing hub...")
	presenceStore := presence.NewAsynqPresenceStore(asynqClient)
	hubInstance := hub.NewHub(presenceStore)
	log.Info("Hub initialized")

	log.Info("Initializing services...")
	authService, err := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiryHours)
	if err != nil {
		return nil, fmt.Errorf("failed to create AuthService: %w", err)
	}
	chatService := service.NewChatService(chatRepo, userRepo, hubInstance.Router())
	messageService := service.NewMessageService(messageRepo, chatRepo, hubInstance.Router())
	callService := service.NewCallService(callRepo, chatRepo, hubInstance.Router())
	presenceService := service.NewPresenceService(hubInstance.Registry(), presenceCache, userRepo)
	log.Info("Services initialized")

	log.Info("Initializing handlers...")
	authHandler := httpHandler.NewAuthHandler(authService)
	chatHandler := httpHandler.NewChatHandler(chatService)
	messageHandler := httpHandler.NewMessageHandler(messageService)
	callHandler := httpHandler.NewCallHandler(callService)
	presenceHandler := httpHandler.NewPresenceHandler(presenceService)
	websocketHandler := wsHandler.NewHandler(hubInstance)
	log.Info("Handlers initialized")

	workerServer := worker.NewWorkerServer(redisClientOpt, userRepo, presenceCache, log)
	log.Info("Worker server initialized")

	log.Info("Setting up Gin router...")
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(middleware.RateLimit(redisClient, cfg.RateLimitMax, cfg.RateLimitWindow))

	api := router.Group("/api")
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	authed := api.Group("")
	authed.Use(middleware.Auth(cfg.JWTSecret))
	{
		authed.POST("/chats", chatHandler.Create)
		authed.GET("/chats", chatHandler.List)
		authed.GET("/chats/:chatId", chatHandler.Get)
		authed.POST("/chats/:chatId/participants", chatHandler.AddParticipant)
		authed.DELETE("/chats/:chatId/participants/:userId", chatHandler.RemoveParticipant)

		authed.POST("/chats/:chatId/messages", messageHandler.Send)
		authed.GET("/chats/:chatId/messages", messageHandler.List)
		authed.PUT("/messages/:messageId", messageHandler.Edit)
		authed.DELETE("/messages/:messageId", messageHandler.Delete)
		authed.POST("/messages/:messageId/reactions", messageHandler.React)
		authed.POST("/messages/:messageId/read", messageHandler.MarkRead)
		authed.POST("/messages/:messageId/delivered", messageHandler.MarkDelivered)

		authed.POST("/calls", callHandler.Initiate)
		authed.PUT("/calls/:callId/status", callHandler.UpdateStatus)

		authed.GET("/users/:userId/presence", presenceHandler.Get)
	}

	wsRoutes := router.Group("/ws").Use(middleware.Auth(cfg.JWTSecret))
	{
		wsRoutes.GET("", websocketHandler.Serve)
	}
	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })
	log.Info("Router setup complete")

	httpServer := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	return &App{
		Config:      cfg,
		Log:         log,
		DB:          db,
		RedisClient: redisClient,
		AsynqClient: asynqClient,
		Worker:      workerServer,
		Hub:         hubInstance,
		HttpServer:  httpServer,
	}, nil
}

// Start launches the worker server and the HTTP server.
func (a *App) Start() {
	a.Log.Info("Starting application background routines...")

	go a.Worker.Start()
	a.Log.Info("Worker server routine started")

	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

// Shutdown stops the application gracefully. The HTTP server drains first so
// no new connections arrive while the worker finishes in-flight writes.
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	if a.Worker != nil {
		a.Worker.Shutdown()
	}

	if a.AsynqClient != nil {
		if err := a.AsynqClient.Close(); err != nil {
			a.Log.Errorf("Error closing Asynq client: %v", err)
		}
	}

	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		}
	}

	a.Log.Info("Application shutdown complete.")
}

// LoggerMiddleware logs each request with latency and status.
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
		})

		switch {
		case errorMessage != "":
			entry.Error(errorMessage)
		case statusCode >= 500:
			entry.Error("Server error")
		case statusCode >= 400:
			entry.Warn("Client error")
		default:
			entry.Info("Request handled")
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowedOrigin := os.Getenv("CORS_ALLOWED_ORIGIN")
		if allowedOrigin == "" {
			allowedOrigin = "http://localhost:3000"
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
