package main

import (
	"context"
	"log"
	"seat-lock-service/config"
	"seat-lock-service/internal/database"
	"seat-lock-service/internal/handler"
	"seat-lock-service/internal/lock"
	"seat-lock-service/internal/queue"
	"seat-lock-service/internal/repository"
	"seat-lock-service/internal/service"
	"seat-lock-service/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env 不存在時直接用環境變數
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	inventoryRepo := repository.NewInventoryRepository(pool)
	lockManager := lock.NewRedisSeatLockManager(rdb)
	resolver := service.NewSeatAvailabilityResolver(inventoryRepo, lockManager)

	sessionService, err := service.NewAESSessionService(cfg.Session.TransportKey)
	if err != nil {
		log.Fatalf("Failed to initialize session service: %v", err)
	}

	lockService := service.NewSeatLockService(resolver, lockManager, sessionService, cfg.Lock)

	// booking/payment 協調者透過 Redis Stream 發布釋放指令
	releaseQueue, err := queue.NewRedisStreamReleaseQueue(rdb, "", nil)
	if err != nil {
		log.Fatalf("Failed to initialize release queue: %v", err)
	}

	workerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	releaseWorker := worker.NewReleaseWorker(lockManager, releaseQueue)
	if err := releaseWorker.Start(workerCtx); err != nil {
		log.Fatalf("Failed to start release worker: %v", err)
	}

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	lockHandler := handler.NewSeatLockHandler(lockService)
	lockHandler.RegisterRoutes(router)

	router.Run() // デフォルトで0.0.0.0:8080で待機します
}
