package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"vclub/database"
	"vclub/jobs"
	"vclub/logger"
	"vclub/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Log.Warn("No .env file loaded")
	}

	database.Connect()

	host := os.Getenv("HOST")
	port := os.Getenv("PORT")

	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "3000"
	}

	app := fiber.New()
	routes.Setup(app)
	jobs.StartCleanupScheduler()

	addr := fmt.Sprintf("%s:%s", host, port)
	logger.Log.Info("Server running at ", addr)

	go func() {
		if err := app.Listen(addr); err != nil {
			logger.Log.Panicf("Failed to start server: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Log.Info("Gracefully shutting down...")
	if err := app.Shutdown(); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}
	logger.Log.Info("Server exited cleanly")
}
