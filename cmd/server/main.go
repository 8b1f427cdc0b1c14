package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/flossiendabambi/alx-project-nexus/internal/cache"
	h "github.com/flossiendabambi/alx-project-nexus/internal/http"
	"github.com/flossiendabambi/alx-project-nexus/internal/notifier"
	"github.com/flossiendabambi/alx-project-nexus/internal/repository"
	"github.com/flossiendabambi/alx-project-nexus/internal/service"
)

type Config struct {
	HTTPPort        string
	RedisAddr       string
	KafkaBrokers    []string
	DB              repository.Credentials
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		DB: repository.Credentials{
			Host:              getEnv("POSTGRES_HOST", "localhost"),
			Port:              getEnvInt("POSTGRES_PORT", 5432),
			User:              getEnv("POSTGRES_USER", "postgres"),
			Password:          getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:            getEnv("POSTGRES_DB", "shop"),
			MigrationsDirPath: getEnv("MIGRATIONS_DIR", "./migrations"),
		},
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

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	repo, err := repository.NewRepository(&cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(&cfg.DB); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	cartCache := cache.NewRedisCache(redisClient)
	cartService := service.NewCartService(repo, cartCache)
	orderService := service.NewOrderService(repo, cartService)

	publisher := notifier.NewKafkaPublisher(cfg.KafkaBrokers...)
	defer publisher.Close()

	poller := notifier.NewPoller(repo, repo, publisher)
	pollerCtx, stopPoller := context.WithCancel(context.Background())
	defer stopPoller()
	go poller.Run(pollerCtx)

	categoryHandler := h.NewCategoryHandler(repo)
	productHandler := h.NewProductHandler(repo)
	reviewHandler := h.NewReviewHandler(repo)
	cartHandler := h.NewCartHandler(cartService)
	orderHandler := h.NewOrderHandler(orderService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.AuthMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.Post("/", categoryHandler.Create)
			r.Get("/{categoryID}", categoryHandler.Get)
			r.Put("/{categoryID}", categoryHandler.Update)
			r.Delete("/{categoryID}", categoryHandler.Delete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Post("/", productHandler.Create)
			r.Get("/{productID}", productHandler.Get)
			r.Put("/{productID}", productHandler.Update)
			r.Delete("/{productID}", productHandler.Delete)

			r.Route("/{productID}/reviews", func(r chi.Router) {
				r.Get("/", reviewHandler.List)
				r.Post("/", reviewHandler.Create)
				r.Get("/{reviewID}", reviewHandler.Get)
				r.Put("/{reviewID}", reviewHandler.Update)
				r.Delete("/{reviewID}", reviewHandler.Delete)
			})
		})

		r.Route("/carts", func(r chi.Router) {
			r.Post("/", cartHandler.CreateCart)
			r.Get("/{cartID}", cartHandler.GetCart)
			r.Delete("/{cartID}", cartHandler.DeleteCart)
			r.Get("/{cartID}/items", cartHandler.ListItems)
			r.Post("/{cartID}/items", cartHandler.AddItem)
			r.Patch("/{cartID}/items/{itemID}", cartHandler.UpdateQuantity)
			r.Delete("/{cartID}/items/{itemID}", cartHandler.RemoveItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderHandler.ListOrders)
			r.Post("/", orderHandler.CreateOrder)
			r.Get("/{orderID}", orderHandler.GetOrder)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stopPoller()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
