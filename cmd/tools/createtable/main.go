package main

import (
	"context"
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/http/middleware"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/cart"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/menu"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/profile"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/users"
)

// Creates the client-state tables and seeds the menu without booting the
// server. Useful for a fresh dev database.
func main() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "cafe.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&users.User{},
		&middleware.Session{},
		&profile.Profile{},
		&cart.Record{},
		&menu.Item{},
	); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	if err := menu.Seed(context.Background(), db); err != nil {
		log.Fatalf("Failed to seed menu: %v", err)
	}

	log.Printf("✓ tables created and menu seeded in %s", path)
}
