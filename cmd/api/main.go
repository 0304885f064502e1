package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/domain/auth"
	"storefront/internal/domain/feed"
	"storefront/internal/domain/product"
	"storefront/internal/domain/signing"
	"storefront/internal/middleware"
	jwtsvc "storefront/internal/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db, &auth.User{}, &product.Product{}, &product.ProductImage{}); err != nil {
		log.Fatal(err)
	}

	var listCache *cache.Client
	if cfg.RedisAddr != "" {
		listCache, err = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Printf("redis unavailable, product list cache disabled: %v", err)
			listCache = nil
		}
	}

	presigner, err := signing.NewS3Presigner(context.Background(), signing.S3Options{
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Endpoint:  cfg.S3Endpoint,
		Expiry:    cfg.UploadTTL,
	})
	if err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(auth.NewRepository(db), j)
	authHandler := auth.NewHandler(authService)

	hub := feed.NewHub()
	feedHandler := feed.NewHandler(hub)

	productService := product.NewService(product.NewRepository(db), listCache, feedHandler)
	productHandler := product.NewHandler(productService)

	signingService := signing.NewService(presigner, cfg.S3Bucket, cfg.S3Region)
	signingHandler := signing.NewHandler(signingService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		auth.RegisterRoutes(v1, authHandler)
		product.RegisterPublicRoutes(v1, productHandler)
		feed.RegisterRoutes(v1, feedHandler)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			product.RegisterProtectedRoutes(protected, productHandler)
			signing.RegisterRoutes(protected, signingHandler)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
