// Command seed fills the catalog with fake products for local development.
//
//	go run ./cmd/seed -count 50
//	go run ./cmd/seed -clear
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Eyiladeogo/MicroMart/database"
	"github.com/Eyiladeogo/MicroMart/models"
)

func main() {
	count := flag.Int("count", 50, "number of fake products to create")
	clearExisting := flag.Bool("clear", false, "delete all existing products first")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system environment variables")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	if *clearExisting {
		log.Println("Clearing existing products...")
		if err := db.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
			log.Fatalf("Failed to clear products: %v", err)
		}
	}

	created := 0
	for i := 0; i < *count; i++ {
		name := productName(db)
		product := models.Product{
			Name:        name,
			Description: gofakeit.Sentence(12),
			Price:       decimal.NewFromFloat(gofakeit.Price(5, 1000)).Round(2),
			Stock:       gofakeit.Number(0, 200),
			Image:       fmt.Sprintf("https://placehold.co/600x400?text=%s", strings.ReplaceAll(name, " ", "+")),
		}
		// Keep going past individual failures; this is dev tooling.
		if err := db.Create(&product).Error; err != nil {
			log.Printf("Error creating product %d: %v", i+1, err)
			continue
		}
		created++
		if created%10 == 0 {
			log.Printf("Created %d products so far...", created)
		}
	}

	log.Printf("Seeded %d products", created)
}

// productName generates a product name not already present in the catalog.
// The random suffix makes collisions rare; the loop handles the rest.
func productName(db *gorm.DB) string {
	for {
		name := fmt.Sprintf("%s %d", gofakeit.ProductName(), gofakeit.Number(100, 999))
		var count int64
		if err := db.Model(&models.Product{}).Where("name = ?", name).Count(&count).Error; err != nil || count == 0 {
			return name
		}
	}
}
