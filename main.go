// File: suncrest/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"suncrest/config"
	"suncrest/gateway"
	"suncrest/handlers"
	"suncrest/middleware"
	"suncrest/routes"
	"suncrest/services/wizard"
	"suncrest/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// External collaborators.
	catalogClient := gateway.NewCatalogClient(config.AppConfig.CatalogAPIURL)
	bookingClient := gateway.NewBookingClient(config.AppConfig.BookingAPIURL)

	// Stores.
	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	sessionStore := wizard.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL)
	credentialStore := utils.NewRedisCredentialStore(utils.GetAuthCacheClient())

	// Wizard service.
	gate := &wizard.AvailabilityGate{
		Bookings: bookingClient,
		Logger:   logger,
	}
	wizardService := &wizard.DefaultWizardService{
		Sessions:    sessionStore,
		Credentials: credentialStore,
		Catalog:     catalogClient,
		Bookings:    bookingClient,
		Gate:        gate,
		Logger:      logger,
	}

	handlerBundle := &routes.HandlerBundle{
		Wizard: handlers.NewWizardHandler(wizardService, logger),
		Rooms:  handlers.NewRoomsHandler(wizardService, logger),
	}

	routes.RegisterRoutes(router, handlerBundle)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
