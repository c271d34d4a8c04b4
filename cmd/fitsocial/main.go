package main

import (
	"alcyxob/fitsocial/internal/api"
	"alcyxob/fitsocial/internal/apiclient"
	"alcyxob/fitsocial/internal/config"
	"alcyxob/fitsocial/internal/notify"
	"alcyxob/fitsocial/internal/repository"
	"alcyxob/fitsocial/internal/repository/file"
	"alcyxob/fitsocial/internal/repository/mongo"
	"alcyxob/fitsocial/internal/service"
	"alcyxob/fitsocial/internal/session"
	"alcyxob/fitsocial/internal/storage"
	"alcyxob/fitsocial/internal/util"
	"alcyxob/fitsocial/internal/validation"
	"alcyxob/fitsocial/internal/worker"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title fitsocial local API
// @version 1.0
// @description Local companion API over the fitness-social client core.
// @host localhost:8090
// @BasePath /api/v1
func main() {
	log.Println("Starting fitsocial client...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	ctx := context.Background()

	// --- Session Store ---
	var sessionRepo repository.SessionRepository
	switch cfg.Session.Store {
	case config.SessionStoreMongo:
		dbClient, err := mongo.ConnectDB(ctx, cfg.Database.URI)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
		}
		defer func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		}()
		sessionRepo = mongo.NewMongoSessionRepository(dbClient.Database(cfg.Database.Name))
		log.Println("Session store: MongoDB")
	case config.SessionStoreFile, "":
		sessionRepo = file.NewFileSessionRepository(cfg.Session.Path)
		log.Printf("Session store: %s", cfg.Session.Path)
	default:
		log.Fatalf("FATAL: Unknown session store %q", cfg.Session.Store)
	}

	// --- Remote API Client ---
	client, err := apiclient.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		log.Fatalf("FATAL: Invalid API base URL: %v", err)
	}

	clock := util.NewRealClock()
	holder := session.NewHolder(sessionRepo, client, clock)
	client.SetTokenSource(holder.Token)

	// --- Initialize Storage ---
	var media storage.MediaStorage
	if cfg.S3.Enabled() {
		log.Println("Initializing media storage...")
		media, err = storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("WARN: S3 bucket not configured, posts can only reference hosted media URLs")
	}

	// --- Dispatcher ---
	notices := &notify.Recorder{}
	lists := service.NewLists()
	dispatcher := service.NewDispatcher(
		client,
		holder,
		lists,
		validation.New(clock),
		notify.Multi{notify.LogNotifier{}, notices},
		media,
	)

	if _, err := dispatcher.LoadSession(ctx); err != nil {
		if errors.Is(err, session.ErrUnauthenticated) {
			log.Println("INFO: No session, login required")
		} else {
			log.Printf("WARN: Could not restore session: %v", err)
		}
	}

	// --- Background Refresh ---
	refresher := worker.NewWorker(map[string]worker.Reloader{
		"posts":           lists.Posts,
		"profilePosts":    lists.ProfilePosts,
		"shares":          lists.Shares,
		"users":           lists.Users,
		"workoutStatuses": lists.WorkoutStatuses,
		"workoutPlans":    lists.WorkoutPlans,
		"mealPlans":       lists.MealPlans,
	}, cfg.API.Timeout)
	refresher.Start(cfg.Refresh.Interval)
	defer refresher.Stop()

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware
	api.SetupRoutes(router, dispatcher, notices)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.API.Timeout + 30*time.Second, // Uploads plus one remote call
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
