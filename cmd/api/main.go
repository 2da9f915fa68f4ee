package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"prodcatalog/internal/config"
	"prodcatalog/internal/database"
	"prodcatalog/internal/domain"
	"prodcatalog/internal/middleware"
	"prodcatalog/internal/modules/auth"
	"prodcatalog/internal/modules/product"
	jwtsvc "prodcatalog/internal/pkg/jwt"
	"prodcatalog/internal/repository"
	"prodcatalog/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Product{},
		&domain.RefreshToken{},
	); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)

	imageStore, err := storage.NewLocalImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(
		cfg.JWT.Key,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		time.Duration(cfg.JWT.AccessTokenMinutes)*time.Minute,
	)
	refreshTTL := time.Duration(cfg.JWT.RefreshTokenDays) * 24 * time.Hour

	authService := auth.NewService(userRepo, refreshRepo, j, refreshTTL)
	authHandler := auth.NewHandler(authService)

	productService := product.NewService(productRepo, imageStore)
	productHandler := product.NewHandler(productService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.Static("/uploads", cfg.UploadDir)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		productHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			productHandler.RegisterProtectedRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
