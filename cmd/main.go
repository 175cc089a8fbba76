package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"chatwire/backend/internal/api/handler"
	"chatwire/backend/internal/auth"
	"chatwire/backend/internal/blob"
	"chatwire/backend/internal/config"
	"chatwire/backend/internal/gateway"
	"chatwire/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	if err := storage.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting ChatWire Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, rdb := setupDependencies(cfg)
	s := storage.NewService(db, rdb)

	verifier, err := auth.NewVerifierFromFile(cfg.PublicKeyPath)
	if err != nil {
		log.Fatalf("Failed to load public key: %v", err)
	}
	issuer, err := auth.NewIssuerFromFile(cfg.PrivateKeyPath, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to load private key: %v", err)
	}

	blobs, err := blob.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload dir: %v", err)
	}

	gw := gateway.New(verifier, s, blobs)
	h := handler.NewHandler(gw, s, issuer, verifier, cfg.ClientURL)

	r := gin.Default()

	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.GET("/profile", h.Profile)
	r.GET("/user", h.ListUsers)
	r.POST("/message/:userId", h.ConversationHistory)
	r.GET("/ws", h.ServeWebSocket)

	// Stored uploads are public, keyed by their generated filename.
	r.Static("/public/uploads", blobs.Dir())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "Home page") })

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("listening on port %s", cfg.Port)
	log.Fatal(server.ListenAndServe())
}
