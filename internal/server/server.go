package server

import (
	"context"
	"net/http"
	"time"

	"github.com/aman-churiwal/libretune/internal/config"
	"github.com/aman-churiwal/libretune/internal/handler"
	"github.com/aman-churiwal/libretune/internal/middleware"
	"github.com/aman-churiwal/libretune/internal/repository"
	"github.com/aman-churiwal/libretune/internal/service"
	"github.com/aman-churiwal/libretune/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router        *gin.Engine
	config        *config.Config
	logger        *zap.Logger
	db            *storage.Database
	redis         *storage.RedisClient
	requestLogger *middleware.RequestLogger
	dbSink        *middleware.DatabaseSink
	httpServer    *http.Server

	general   *handler.GeneralHandler
	users     *handler.UserHandler
	tracks    *handler.TrackHandler
	playlists *handler.PlaylistHandler
	analytics *handler.AnalyticsHandler
}

// New wires repositories, services and handlers around the injected storage
// handles and builds the fixed middleware chain.
func New(cfg *config.Config, logger *zap.Logger, db *storage.Database, redis *storage.RedisClient) *Server {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	requestLogRepo := repository.NewRequestLogRepository(db)

	s := &Server{
		router:    router,
		config:    cfg,
		logger:    logger,
		db:        db,
		redis:     redis,
		general:   handler.NewGeneralHandler(),
		users:     handler.NewUserHandler(service.NewUserService(repository.NewUserRepository(db), redis, cfg.Cache.UserTTL, logger.Named("users"))),
		tracks:    handler.NewTrackHandler(service.NewTrackService(repository.NewTrackRepository(db))),
		playlists: handler.NewPlaylistHandler(service.NewPlaylistService(repository.NewPlaylistRepository(db))),
		analytics: handler.NewAnalyticsHandler(service.NewAnalyticsService(requestLogRepo)),
	}

	var extra []middleware.Sink
	if cfg.RequestLog.LogToDatabase {
		s.dbSink = middleware.NewDatabaseSink(requestLogRepo, cfg.RequestLog.DatabaseBufferSize, logger.Named("request_log_db"))
		extra = append(extra, s.dbSink)
	}
	s.requestLogger = middleware.NewRequestLogger(cfg.RequestLog, logger, extra...)

	// Setup middleware
	s.setupMiddleware()

	// Setup routes
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(s.requestLogger.Handler())
	s.router.Use(middleware.Recovery(s.logger))
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.general.Hello)
	s.router.GET("/users/:id/", s.general.Welcome)
	s.router.GET("/search", s.general.Search)
	s.router.GET("/test/:status", s.general.TestStatus)
	s.router.GET("/health", s.healthCheck)

	api := s.router.Group("/api/v1")
	{
		users := api.Group("/users")
		users.POST("", s.users.Create)
		users.GET("", s.users.List)
		users.GET("/:id", s.users.Get)
		users.PATCH("/:id", s.users.Update)
		users.DELETE("/:id", s.users.Delete)

		tracks := api.Group("/tracks")
		tracks.POST("", s.tracks.Create)
		tracks.GET("", s.tracks.List)
		tracks.GET("/:id", s.tracks.Get)
		tracks.PATCH("/:id", s.tracks.Update)
		tracks.DELETE("/:id", s.tracks.Delete)

		playlists := api.Group("/playlists")
		playlists.POST("", s.playlists.Create)
		playlists.GET("", s.playlists.List)
		playlists.GET("/:id", s.playlists.Get)
		playlists.PATCH("/:id", s.playlists.Update)
		playlists.DELETE("/:id", s.playlists.Delete)
	}

	admin := s.router.Group("/admin")
	{
		admin.GET("/analytics", s.analytics.GetSummary)
		admin.GET("/logs", s.analytics.GetLogs)
		admin.DELETE("/logs", s.analytics.PurgeLogs)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	redisHealthy := true
	if err := s.redis.Ping(c.Request.Context()); err != nil {
		redisHealthy = false
		s.logger.Warn("redis health check failed", zap.Error(err))
	}

	dbHealthy := true
	if err := s.db.Ping(c.Request.Context()); err != nil {
		dbHealthy = false
		s.logger.Warn("database health check failed", zap.Error(err))
	}

	status := "healthy"
	statusCode := http.StatusOK

	if !redisHealthy || !dbHealthy {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"status":    status,
		"service":   "libretune",
		"version":   "1.0.0",
		"uptime":    time.Since(startTime).Seconds(),
		"timestamp": time.Now().Unix(),
		"checks": gin.H{
			"redis":    redisHealthy,
			"database": dbHealthy,
		},
	})
}

func (s *Server) Run(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	s.logger.Info("starting libretune",
		zap.String("addr", addr),
		zap.String("environment", s.config.Server.Environment),
		zap.Int("request_log_sinks", len(s.requestLogger.Sinks())),
	)

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests, then flushes the database sink.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	if s.dbSink != nil {
		if sinkErr := s.dbSink.Close(ctx); sinkErr != nil && err == nil {
			err = sinkErr
		}
	}

	return err
}

func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

var startTime = time.Now()
