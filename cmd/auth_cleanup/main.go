package main

import (
	"context"
	"log"
	"os"

	"prodcatalog/internal/database"
	"prodcatalog/internal/repository"
)

// Purges refresh tokens that can never be presented again. Intended to run
// on a schedule; the API never deletes token rows itself.
func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	deleted, err := repository.NewRefreshTokenRepository(db).DeleteExpired(context.Background())
	if err != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", err)
	}

	log.Printf("auth cleanup completed: refresh_tokens=%d", deleted)
}
