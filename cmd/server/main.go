package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reviro_api/internal/api"
	"reviro_api/internal/api/middleware"
	"reviro_api/internal/app/service"
	"reviro_api/internal/app/worker"
	"reviro_api/internal/common/security"
	"reviro_api/internal/domain/repository"
	"reviro_api/internal/platform/config"
	"reviro_api/internal/platform/database"
	"reviro_api/internal/platform/redisq"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. Token Codec
	codec := security.NewTokenCodec(cfg.JWTAlgorithm, cfg.JWTSecret)

	// 3. Database
	db, err := database.Connect(cfg.DBConnStr)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	log.Println("Database connected and migrated.")

	// 4. Redis (sweep lock)
	rdb, err := redisq.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	defer rdb.Close()
	log.Println("Redis connected.")

	// 5. Repositories
	userRepo := repository.NewPgUserRepository(db)
	refreshRepo := repository.NewPgRefreshTokenRepository(db)
	companyRepo := repository.NewPgCompanyRepository(db)
	productRepo := repository.NewPgProductRepository(db)

	// 6. Services
	authService := service.NewAuthService(userRepo, refreshRepo, codec, cfg.AccessTTL, cfg.RefreshTTL)
	companyService := service.NewCompanyService(companyRepo)
	productService := service.NewProductService(productRepo, companyRepo)

	// 7. Refresh token sweeper (as a goroutine)
	sweeper := worker.NewSweeper(rdb, refreshRepo, cfg.SweepInterval,
		cfg.SweepLockKey, time.Duration(cfg.SweepLockTTLSecs)*time.Second)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go sweeper.Start(workerCtx)

	// 8. Router & HTTP Server
	authMW := middleware.NewAuthMiddleware(codec, userRepo)
	router := api.NewRouter(codec, authMW, authService, companyService, productService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")
	workerCancel() // Signal sweeper to stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server and sweeper stopped gracefully.")
}
