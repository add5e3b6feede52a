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
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/PRASHANT-tech870/Embroidery/internal/cart"
	"github.com/PRASHANT-tech870/Embroidery/internal/catalog"
	"github.com/PRASHANT-tech870/Embroidery/internal/checkout"
	h "github.com/PRASHANT-tech870/Embroidery/internal/http"
	"github.com/PRASHANT-tech870/Embroidery/internal/identity"
	"github.com/PRASHANT-tech870/Embroidery/internal/orders"
	"github.com/PRASHANT-tech870/Embroidery/internal/payment"
	"github.com/PRASHANT-tech870/Embroidery/internal/postgres"
)

type Config struct {
	HTTPPort        string
	Postgres        postgres.Credentials
	RedisAddr       string
	KafkaBrokers    []string
	JWTSecret       string
	StripeKey       string
	Currency        string
	RequestTimeout  time.Duration
	PaymentTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	return &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		Postgres: postgres.Credentials{
			Host:              getEnv("POSTGRES_HOST", "localhost"),
			Port:              getEnvInt("POSTGRES_PORT", 5432),
			User:              getEnv("POSTGRES_USER", "postgres"),
			Password:          getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:            getEnv("POSTGRES_DB", "embroidery"),
			MigrationsDirPath: getEnv("MIGRATIONS_DIR", "./migrations"),
		},
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:    splitList(getEnv("KAFKA_BROKERS", "")),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret"),
		StripeKey:       getEnv("STRIPE_TEST_KEY", ""),
		Currency:        getEnv("CURRENCY", "INR"),
		RequestTimeout:  30 * time.Second,
		PaymentTimeout:  checkout.DefaultPaymentTimeout,
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

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func main() {
	cfg := loadConfig()

	db, err := postgres.Open(&cfg.Postgres)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()
	log.Println("Connected to postgres!")

	if err := postgres.RunMigrations(db, &cfg.Postgres); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	designRepo := catalog.NewRepository(db)
	designCache := catalog.NewRedisCache(redisClient)
	designService := catalog.NewService(designRepo, designCache)

	orderRepo := orders.NewRepository(db)
	history := orders.NewHistory(orderRepo)

	var events orders.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher := orders.NewKafkaPublisher(cfg.KafkaBrokers...)
		defer publisher.Close()
		events = publisher
	}

	var provider payment.Provider
	if cfg.StripeKey != "" {
		provider = payment.NewStripeProvider(cfg.StripeKey)
	} else {
		log.Println("no stripe key configured, using simulated payments")
		provider = payment.NewSimulator(payment.RandomStatus{})
	}

	sessions := cart.NewSessions()
	defer sessions.Close()

	orchestrator := checkout.NewOrchestrator(
		identity.ContextProvider{},
		provider,
		orderRepo,
		events,
		cfg.Currency,
		cfg.PaymentTimeout,
	)

	verifier := identity.NewTokenVerifier(cfg.JWTSecret)

	catalogHandler := h.NewCatalogHandler(designService)
	cartHandler := h.NewCartHandler(sessions, designService)
	checkoutHandler := h.NewCheckoutHandler(sessions, orchestrator)
	ordersHandler := h.NewOrdersHandler(history)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)
	r.Use(h.AuthMiddleware(verifier))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/designs", func(r chi.Router) {
			r.Get("/", catalogHandler.ListDesigns)
			r.Get("/{id}", catalogHandler.GetDesign)
			r.Get("/{id}/quote", catalogHandler.Quote)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{design_id}/{page}", cartHandler.UpdateQuantity)
			r.Delete("/items/{design_id}/{page}", cartHandler.RemoveItem)
		})
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.Submit)
			r.Get("/status", checkoutHandler.Status)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.ListOrders)
			r.Get("/{id}", ordersHandler.GetOrder)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
