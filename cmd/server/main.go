package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courseapp/internal/api"
	"courseapp/internal/app/seed"
	"courseapp/internal/app/service"
	"courseapp/internal/common/security"
	"courseapp/internal/domain/repository"
	"courseapp/internal/platform/cache"
	"courseapp/internal/platform/config"
	"courseapp/internal/platform/database"
	"courseapp/internal/platform/email"
	"courseapp/internal/platform/genai"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	courseRepo := repository.NewPgCourseRepository(database.DB)
	enrollmentRepo := repository.NewPgEnrollmentRepository(database.DB)
	chatRepo := repository.NewPgChatRepository(database.DB)

	// 6. Initialize external collaborators
	var mailer email.Service
	if config.AppConfig.SendgridAPIKey != "" {
		mailer = email.NewSendgridService()
	} else {
		mailer = email.NewConsoleService()
	}
	mentor := genai.NewClient(
		config.AppConfig.GenAIBaseURL,
		config.AppConfig.GenAIAPIKey,
		config.AppConfig.GenAIModel,
	)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, mailer)
	courseService := service.NewCourseService(courseRepo, cache.RDB)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo)
	chatService := service.NewChatService(chatRepo, mentor)

	// 8. Seed the first admin
	if err := seed.EnsureAdmin(context.Background(), userRepo); err != nil {
		log.Fatalf("Admin seed failed: %v", err)
	}

	// 9. Initialize Router & HTTP Server
	router := api.NewRouter(authService, userService, courseService, enrollmentService, chatService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 10. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
