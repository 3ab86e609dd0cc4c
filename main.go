package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"camelia-boutique/app"
	"camelia-boutique/db"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Overload(".env"); err != nil {
			log.Printf("Warning: .env file not found, using system environment variables")
		}
	}

	// Initialize application
	if err := app.Initialize(); err != nil {
		log.Fatal(err)
	}
	defer db.CloseDB()

	// Start server
	// Listen on 0.0.0.0 to accept connections from all interfaces
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if len(port) > 0 && port[0] == ':' {
		port = port[1:]
	}
	addr := "0.0.0.0:" + port
	log.Printf("Server starting on %s", addr)

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
