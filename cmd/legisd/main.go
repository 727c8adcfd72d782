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

	"github.com/joho/godotenv"

	"legis-news/internal/article"
	"legis-news/internal/config"
	"legis-news/internal/db"
	"legis-news/internal/event"
	"legis-news/internal/ingest"
	"legis-news/internal/server"
)

func main() {
	// Root context cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stdout, "[legisd] ", log.LstdFlags|log.Lshortfile)

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	// Mongo
	mongoClient, err := db.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatalf("failed to connect to db: %v", err)
	}
	dbInstance := mongoClient.Database(cfg.MongoDBName)

	// Article repository
	articleRepo, err := article.NewMongoRepository(dbInstance, logger)
	if err != nil {
		logger.Fatalf("failed to init repository: %v", err)
	}
	logger.Println("article repository initialised")

	// News API client + aggregation service
	httpClient := &http.Client{Timeout: cfg.Timeout}
	newsClient := ingest.NewClient(cfg.NewsAPIURL, cfg.NewsAPIKey, httpClient)
	aggregator := ingest.NewService(articleRepo, newsClient, logger)

	// Event publisher (RabbitMQ)
	publisher, err := event.NewRabbitPublisher(
		cfg.RabbitURI,
		cfg.RabbitExchange,
		cfg.RabbitRoutingKey,
		logger,
	)
	if err != nil {
		logger.Fatalf("failed to init rabbit publisher: %v", err)
	}
	defer publisher.Close()

	eventsService := event.NewService(
		dbInstance.Collection("articles"),
		publisher,
		logger,
	)

	// HTTP API
	api := server.New(aggregator, articleRepo, logger)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.Handler(),
	}

	go func() {
		logger.Printf("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("HTTP server error: %v", err)
		}
	}()

	go eventsService.Run(ctx)

	logger.Println("service started")

	// Block until we receive a signal / ctx cancelled
	<-ctx.Done()
	logger.Println("shutdown signal received, shutting down...")

	// Unified shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Graceful HTTP shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Printf("HTTP server shutdown error: %v", err)
	}

	// Graceful Mongo shutdown
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Printf("mongo disconnect error: %v", err)
	}

	logger.Println("shutdown complete")
}
