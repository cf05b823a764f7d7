package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/teamtrack/task-tracker-api/internal/config"
	"github.com/teamtrack/task-tracker-api/internal/database"
	"github.com/teamtrack/task-tracker-api/internal/handlers"
	"github.com/teamtrack/task-tracker-api/internal/middleware"
	"github.com/teamtrack/task-tracker-api/internal/models"
	"github.com/teamtrack/task-tracker-api/internal/repository"
	"github.com/teamtrack/task-tracker-api/internal/services"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if cfg.Server.GinMode == gin.ReleaseMode && cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		logger.Fatalf("auth jwt secret is required in release mode")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.Server.GinMode)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatalf("connect database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatalf("run migrations: %v", err)
	}
	if err := database.AddIndexes(db, logger); err != nil {
		logger.Fatalf("add indexes: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	mailer := services.NewLogMailer(logger)
	taskService := services.NewTaskService(taskRepo, userRepo, mailer, logger)

	authHandler := handlers.NewAuthHandler(authService, tokenService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/token", authHandler.Token)
		auth.POST("/signup", authHandler.Signup)
	}

	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireAuth(tokenService, authService))
	{
		tasks.GET("/", taskHandler.ListTasks)
		tasks.POST("/", taskHandler.CreateTask)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), taskHandler.DeleteTask)
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
}
