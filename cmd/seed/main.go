package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/google/uuid"

	"prodcatalog/internal/database"
	"prodcatalog/internal/domain"
	"prodcatalog/internal/pkg/password"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "catalog.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Product{},
		&domain.RefreshToken{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	var userCount int64
	db.Model(&domain.User{}).Count(&userCount)
	if userCount > 0 {
		log.Println("Users already exist, skipping seed")
		return
	}

	log.Println("Creating users...")
	var users []domain.User
	for i := 1; i <= 3; i++ {
		hash, err := password.Hash("Pass123$")
		if err != nil {
			log.Fatal("hash failed:", err)
		}
		u := domain.User{
			ID:             uuid.New(),
			Username:       fmt.Sprintf("user%d", i),
			Email:          fmt.Sprintf("user%d@test.com", i),
			PasswordHash:   hash,
			EmailConfirmed: true,
			SecurityStamp:  uuid.NewString(),
		}
		if err := db.Create(&u).Error; err != nil {
			log.Fatal("create user failed:", err)
		}
		users = append(users, u)
	}

	log.Println("Creating products...")
	productID := 1
	for _, u := range users {
		count := 4 + rand.Intn(7) // 4-10 products per user
		for i := 0; i < count; i++ {
			p := domain.Product{
				Name:         fmt.Sprintf("Product %d", productID),
				ProductCode:  fmt.Sprintf("P%03d", productID),
				Category:     fmt.Sprintf("Category %d", (i%3)+1),
				Image:        fmt.Sprintf("/uploads/p%d.jpg", 1+rand.Intn(4)),
				Price:        float64(10 + rand.Intn(190)),
				Quantity:     1 + rand.Intn(49),
				DiscountRate: rand.Float64() * 0.3,
				CreatedBy:    u.ID,
			}
			if err := db.Create(&p).Error; err != nil {
				log.Fatal("create product failed:", err)
			}
			productID++
		}
	}

	log.Printf("Seed completed: users=%d products=%d", len(users), productID-1)
}
