package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"livestock-service/internal/config"
	"livestock-service/internal/database/minio"
	"livestock-service/internal/database/postgres"
	"livestock-service/internal/database/redis"
	"livestock-service/internal/event"
	"livestock-service/internal/handlers"
	"livestock-service/internal/repository"
	"livestock-service/internal/services"
	"livestock-service/internal/worker"
	"livestock-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const sessionExpiration = 7 * 24 * time.Hour

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	zapLogger := logger.Must(logger.New())
	defer zapLogger.Sync()

	cfg := config.New()

	// db connection; blocks until PostgreSQL is reachable so the schema and
	// every repository below get a live handle
	db, err := postgres.Connect(cfg.PostgresCfg)
	if err != nil {
		zapLogger.Warn("initial PostgreSQL connection failed, retrying", zap.Error(err))
		postgres.RetryConnectOnFailed(5*time.Second, &db, cfg.PostgresCfg)
	}
	defer db.Close()
	if err := postgres.EnsureSchema(db); err != nil {
		zapLogger.Fatal("failed to apply database schema", zap.Error(err))
	}

	redisClient, err := redis.NewRedisClient(cfg.RedisCfg)
	if err != nil {
		zapLogger.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	minioClient, err := minio.NewMinioClient(cfg.MinioCfg)
	if err != nil {
		zapLogger.Fatal("failed to connect to MinIO", zap.Error(err))
	}

	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		zapLogger.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer rabbitConn.Close()
	publisher := event.NewNotificationPublisher(rabbitConn)

	// repositories
	farmRepo := repository.NewFarmRepository(db)
	animalRepo := repository.NewAnimalRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient.GetClient(), sessionExpiration)

	// services
	jwtService := services.NewJWTService(cfg.JWTSecret)
	sessionService := services.NewSessionService(sessionRepo)
	authService := services.NewAuthService(staffRepo, jwtService, sessionService, cfg.LineCfg)
	farmService := services.NewFarmService(farmRepo)
	animalService := services.NewAnimalService(animalRepo, activityRepo, farmService, minioClient)
	activityService := services.NewActivityService(activityRepo, animalRepo, farmService)
	notificationService := services.NewNotificationService(activityRepo, farmRepo, redisClient.GetClient())
	exportService := services.NewExportService(animalRepo, farmService)

	// handlers
	authMiddleware := handlers.NewAuthMiddleware(jwtService, sessionService)
	authHandler := handlers.NewAuthHandler(authService, authMiddleware)
	farmHandler := handlers.NewFarmHandler(farmService, authMiddleware)
	animalHandler := handlers.NewAnimalHandler(animalService, exportService, authMiddleware)
	activityHandler := handlers.NewActivityHandler(activityService, authMiddleware)
	notificationHandler := handlers.NewNotificationHandler(notificationService, authMiddleware)

	r := gin.Default()
	authHandler.RegisterRoutes(r)
	farmHandler.RegisterRoutes(r)
	animalHandler.RegisterRoutes(r)
	activityHandler.RegisterRoutes(r)
	notificationHandler.RegisterRoutes(r)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := worker.NewOverdueSweeper(
		activityRepo,
		farmRepo,
		publisher,
		cfg.SweepInterval,
		logger.Named(zapLogger, "overdue-sweeper"),
	)
	go sweeper.Run(ctx)

	zapLogger.Info("starting livestock-service", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
}
