// cmd/api/main.go
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"fleet-service/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}

	server := app.NewServer()

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("server exited: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down fleet-service")
}
