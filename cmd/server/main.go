package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MehediHasan95/tasty-pizza-server/internal/auth"
	c "github.com/MehediHasan95/tasty-pizza-server/internal/cache"
	"github.com/MehediHasan95/tasty-pizza-server/internal/gateway"
	api "github.com/MehediHasan95/tasty-pizza-server/internal/http"
	"github.com/MehediHasan95/tasty-pizza-server/internal/identity"
	"github.com/MehediHasan95/tasty-pizza-server/internal/repository"
	s "github.com/MehediHasan95/tasty-pizza-server/internal/service"
)

type Config struct {
	HTTPPort        string
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPassword   string
	TokenSecret     string
	StoreID         string
	StorePass       string
	GatewaySandbox  bool
	IdentityAPIKey  string
	PublicBaseURL   string
	FrontendBaseURL string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "pastyPizzaDB"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		TokenSecret:     getEnv("ACCESS_KEY", ""),
		StoreID:         getEnv("STORE_ID", ""),
		StorePass:       getEnv("STORE_PASS", ""),
		GatewaySandbox:  getEnv("SSLCZ_SANDBOX", "true") == "true",
		IdentityAPIKey:  getEnv("IDENTITY_API_KEY", ""),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		FrontendBaseURL: getEnv("FRONTEND_BASE_URL", "https://tasty-pizza-restaurant.web.app"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	if cfg.TokenSecret == "" {
		log.Fatal("ACCESS_KEY must be set")
	}

	ctx := context.Background()
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := repository.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	users := repository.NewMongoUserRepository(mongoDB)
	items := repository.NewMongoItemRepository(mongoDB)
	carts := repository.NewMongoCartRepository(mongoDB)
	orders := repository.NewMongoOrderRepository(mongoDB)

	tokens := auth.NewTokenService(cfg.TokenSecret)
	idClient := identity.NewClient(cfg.IdentityAPIKey)
	gwClient := gateway.NewClient(cfg.StoreID, cfg.StorePass, cfg.GatewaySandbox)

	catalog := s.NewCatalogService(items, c.NewRedisCache(redisClient))
	payments := s.NewPaymentService(orders, items, carts, gwClient, cfg.PublicBaseURL, cfg.FrontendBaseURL)

	router := api.NewRouter(api.Handlers{
		Users:    api.NewUserHandler(users, tokens, idClient),
		Items:    api.NewItemHandler(catalog),
		Carts:    api.NewCartHandler(carts),
		Orders:   api.NewOrderHandler(orders),
		Payments: api.NewPaymentHandler(payments, gwClient),
	}, tokens, users, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Tasty Pizza server running on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	if err := mongoDB.Client().Disconnect(shutdownCtx); err != nil {
		log.Printf("mongo disconnect error: %v", err)
	}

	log.Println("server exited")
}
