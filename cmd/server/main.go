package main

import (
	"alcyxob/fitness-planner/internal/api"
	"alcyxob/fitness-planner/internal/config"
	"alcyxob/fitness-planner/internal/llm"
	"alcyxob/fitness-planner/internal/logger"
	"alcyxob/fitness-planner/internal/planner"
	"alcyxob/fitness-planner/internal/repository/mongo"
	"alcyxob/fitness-planner/internal/service"
	"alcyxob/fitness-planner/internal/storage"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// @title Fitness Planner API
// @version 1.0
// @description Generates weekly training and nutrition plans from a user profile.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Starting Fitness Planner Server...", "provider", cfg.Generation.Provider, "cache", cfg.Cache.Enabled)

	ctx := context.Background()

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(ctx, cfg.Database.URI)
	if err != nil {
		log.Fatal("Could not connect to MongoDB", "error", err)
	}
	defer func() {
		log.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Error("Failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return mongo.EnsureProfileIndexes(gctx, appDB) })
		g.Go(func() error { return mongo.EnsurePlanIndexes(gctx, appDB) })
		if err := g.Wait(); err != nil {
			log.Error("Index creation failed", "error", err)
			return
		}
		log.Info("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	// Exports are optional; the rest of the API works without a bucket.
	fileStorage, err := storage.NewS3Storage(ctx, cfg.S3, log)
	if err != nil {
		if !errors.Is(err, storage.ErrStorageDisabled) {
			log.Fatal("Failed to initialize S3 storage", "error", err)
		}
		log.Warn("Plan export disabled: no S3 bucket configured")
		fileStorage = nil
	}

	// --- Plan pipeline ---
	generator, err := llm.New(ctx, cfg.Generation, cfg.Cache, log)
	if err != nil {
		log.Fatal("Failed to initialize text generator", "error", err)
	}
	if closer, ok := generator.(llm.Closer); ok {
		defer closer.Close()
	}
	if generator == nil {
		log.Warn("No text generator configured; every plan uses the deterministic generator")
	}
	kb, err := planner.LoadKnowledge(cfg.Planner.KnowledgeFile)
	if err != nil {
		log.Fatal("Failed to load knowledge base", "error", err)
	}
	opts, err := planner.OptionsFromConfig(cfg)
	if err != nil {
		log.Fatal("Invalid planner configuration", "error", err)
	}
	pipeline := planner.NewPipeline(generator, kb, log, opts)

	// --- Initialize Repositories and Services ---
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)

	profileService := service.NewProfileService(profileRepo)
	planService := service.NewPlanService(profileRepo, planRepo, pipeline, fileStorage, cfg.S3.PresignTTL, log)

	// --- Initialize Gin Engine ---
	if cfg.Log.Mode == "prod" || cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if len(cfg.Server.CORSOrigins) > 0 {
		router.Use(api.CORSMiddleware(cfg.Server.CORSOrigins))
	}
	api.SetupRoutes(router, cfg.JWT.Secret, log, profileService, planService)

	// --- Start HTTP Server ---
	// Plan generation can take as long as the generator timeout.
	writeTimeout := opts.AdapterTimeout
	if writeTimeout <= 0 {
		writeTimeout = planner.DefaultAdapterTimeout
	}
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Info("Server starting", "address", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	log.Info("Server exiting.")
}
