// File: bookrental/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookrental/config"
	"bookrental/database"
	catalogRepo "bookrental/database/repository/catalog"
	"bookrental/handlers"
	"bookrental/middleware"
	"bookrental/routes"
	"bookrental/services/rental"
	"bookrental/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRentalCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookRepo := catalogRepo.NewMongoBookRepo()
	store := rental.NewRedisStore(utils.GetRentalCacheClient())

	// rental core: one draft tracker and one ledger, owned by the session
	// service for the lifetime of the process.
	drafts := rental.NewDraftTracker(store)
	ledger := rental.NewLedger(store)

	rehydrateCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := ledger.Rehydrate(rehydrateCtx); err != nil {
		logger.Sugar().Warnf("main: ledger rehydration degraded, starting empty: %v", err)
	}
	cancel()

	sessionService := rental.NewBookingSessionService(drafts, ledger, logger)

	rentalHandler := handlers.NewRentalHandler(sessionService, bookRepo, logger)
	catalogHandler := handlers.NewCatalogHandler(bookRepo, logger)

	routes.RegisterRoutes(router, rentalHandler, catalogHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
