// Package main runs the quiz competition HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quizcomp/backend/config"
	"github.com/quizcomp/backend/internal/admin"
	"github.com/quizcomp/backend/internal/auth"
	"github.com/quizcomp/backend/internal/middleware"
	"github.com/quizcomp/backend/internal/notifications"
	"github.com/quizcomp/backend/internal/quiz"
	"github.com/quizcomp/backend/internal/realtime"
	"github.com/quizcomp/backend/internal/registrations"
	"github.com/quizcomp/backend/internal/results"
	"github.com/quizcomp/backend/pkg/database"
	"github.com/quizcomp/backend/pkg/queue"
	"github.com/quizcomp/backend/pkg/redis"
	"github.com/quizcomp/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	hub := realtime.NewHub(logger)

	// Notifications (queue-backed, best-effort)
	jobQueue := queue.NewQueue(rdb.Client, logger)
	emitter := notifications.NewEmitter(jobQueue, logger)
	notificationRepo := notifications.NewRepository(pool)
	notificationHandler := notifications.NewHandler(notificationRepo)
	feedPub := realtime.NewRedisPublisher(rdb.Client)
	notificationWorker := notifications.NewWorker(notificationRepo, jobQueue, feedPub, logger)

	// Auth (admin staff)
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)

	// Registrations
	registrationRepo := registrations.NewRepository(pool)
	registrationHandler := registrations.NewHandler(registrationRepo, emitter, logger)

	// Quiz sessions
	quizRepo := quiz.NewRepository(pool)
	sessionStore := quiz.NewStore(rdb.Client, time.Duration(cfg.Quiz.SessionTTLHours)*time.Hour)
	resultDelay := time.Duration(cfg.Quiz.ResultDelayHours) * time.Hour
	quizHandler := quiz.NewHandler(quizRepo, registrationRepo, sessionStore, emitter, resultDelay, logger)

	// Results
	resultRepo := results.NewRepository(pool)
	resultHandler := results.NewHandler(resultRepo, registrationRepo, logger)

	// Admin dashboard
	adminHandler := admin.NewHandler(resultRepo, registrationRepo, quizRepo, logger)

	jwtValidate := func(token string) (userID, role string, err error) {
		claims, err := jwtService.Validate(token)
		if err != nil {
			return "", "", err
		}
		return claims.UserID.String(), claims.Role, nil
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Public: participant flow (registration credential only, no account)
	router.POST("/register", registrationHandler.Register)
	router.POST("/quiz/start", quizHandler.Start)
	router.GET("/quiz/session/:rid", quizHandler.Get)
	router.POST("/quiz/session/:rid/answer", quizHandler.Answer)
	router.POST("/quiz/session/:rid/next", quizHandler.Next)
	router.POST("/quiz/session/:rid/previous", quizHandler.Previous)
	router.POST("/quiz/session/:rid/submit", quizHandler.Submit)
	router.POST("/results/check", resultHandler.Check)

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/register", authHandler.Register)
	}

	// Admin dashboard (JWT + admin role)
	adminGroup := router.Group("/admin")
	adminGroup.Use(middleware.JWT(jwtService), middleware.RequireRole("admin"))
	{
		adminGroup.GET("/submissions", adminHandler.ListSubmissions)
		adminGroup.DELETE("/submissions/:id", adminHandler.DeleteSubmission)
		adminGroup.GET("/registrations", adminHandler.ListRegistrations)
		adminGroup.GET("/questions", adminHandler.ListQuestions)
		adminGroup.POST("/questions", adminHandler.CreateQuestion)
		adminGroup.GET("/notifications", notificationHandler.List)
		adminGroup.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		adminGroup.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
	}

	// WebSocket notification feed (token in query; admin only)
	router.GET("/ws", realtime.ServeWs(hub, logger, jwtValidate))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Background: in-process notification worker and feed subscription
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go notificationWorker.Run(workerCtx)
	go realtime.SubscribeFeed(workerCtx, rdb.Client, notifications.FeedChannel, hub, logger)
	logger.Info("notification worker started")

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	workerCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
