package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/thereayou/messenger/internal/config"
	"github.com/thereayou/messenger/internal/database"
	"github.com/thereayou/messenger/internal/flash"
	"github.com/thereayou/messenger/internal/handlers"
	"github.com/thereayou/messenger/internal/services"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	Router *gin.Engine
	DB     *database.Database
	Redis  *redis.Client

	cfg  config.Config
	log  *logrus.Logger
	http *http.Server
}

func NewServer(ctx context.Context, cfg config.Config, log *logrus.Logger) (*Server, error) {
	gin.SetMode(cfg.GinMode)

	dbConn, err := database.Connect(ctx, database.ConnectOptions{
		Driver:   cfg.DBDriver,
		DSN:      cfg.DatabaseURL,
		Attempts: cfg.DBConnectAttempts,
		Backoff:  cfg.DBConnectBackoff,
	}, log)
	if err != nil {
		return nil, err
	}

	checks := map[string]handlers.Pinger{"database": dbConn}

	// Без Redis flash-сообщения живут в памяти процесса
	var (
		rdb     *redis.Client
		flashes flash.Store
	)
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			_ = dbConn.Close()
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		rdb = redis.NewClient(redisOpts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = dbConn.Close()
			_ = rdb.Close()
			return nil, fmt.Errorf("redis connect failed: %w", err)
		}
		flashes = flash.NewRedisStore(rdb, cfg.FlashTTL)
		checks["redis"] = flashes
	} else {
		log.Info("REDIS_URL is empty, keeping flash messages in memory")
		flashes = flash.NewMemoryStore(cfg.FlashTTL)
	}

	svc := services.NewMessengerService(services.NewStore(dbConn), log)
	router := handlers.NewRouter(log,
		handlers.NewAPIHandler(svc),
		handlers.NewWebHandler(svc, flashes, log, cfg.AppName),
		handlers.NewHealthHandler(checks),
	)

	return &Server{
		Router: router,
		DB:     dbConn,
		Redis:  rdb,
		cfg:    cfg,
		log:    log,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Run блокируется до отмены ctx, затем корректно останавливает сервер
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.http.Addr).Info("server starting")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.close()
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.http.Shutdown(shutdownCtx)
	s.close()
	return err
}

func (s *Server) close() {
	if err := s.DB.Close(); err != nil {
		s.log.WithError(err).Warn("database close failed")
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.log.WithError(err).Warn("redis close failed")
		}
	}
}
