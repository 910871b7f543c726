package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yearworm/backend/internal/adapters/catalog"
	"github.com/yearworm/backend/internal/adapters/itunes"
	"github.com/yearworm/backend/internal/adapters/rest"
	"github.com/yearworm/backend/internal/adapters/sqlite"
	"github.com/yearworm/backend/internal/core/services"
	"github.com/yearworm/backend/internal/matcher"
	"github.com/yearworm/backend/internal/selector"
	"github.com/yearworm/backend/internal/worker"
)

func main() {
	// 1. Configuration (Environment Variables)
	// A missing .env file is fine in production; the environment wins.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARN main: load .env: %v", err)
	}

	addr := envOr("YEARWORM_ADDR", ":8080")
	dataDir := envOr("YEARWORM_DATA_DIR", "data")
	dbPath := envOr("YEARWORM_DB", "yearworm.db")
	itunesBaseURL := os.Getenv("ITUNES_BASE_URL")

	// 2. Initialize "Driven" Adapters (The Tools)
	// -- Catalog Store
	store, err := catalog.New(dataDir)
	if err != nil {
		log.Fatalf("FATAL: Failed to open catalog: %v", err)
	}
	if err := store.Watch(); err != nil {
		log.Fatalf("FATAL: Failed to watch catalog: %v", err)
	}
	defer store.Close()

	// -- Result History
	results, err := sqlite.NewAdapter(dbPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	defer results.Close()

	// -- iTunes Search Adapter and Preview Resolver
	itunesClient := itunes.NewClient(nil, itunesBaseURL)
	matcherCfg := matcher.DefaultConfig()
	if cutoff := os.Getenv("MATCHER_SCORE_CUTOFF"); cutoff != "" {
		value, err := strconv.ParseFloat(cutoff, 64)
		if err != nil {
			log.Fatalf("FATAL: Invalid MATCHER_SCORE_CUTOFF: %v", err)
		}
		matcherCfg.ScoreCutoff = value
	}
	resolver := matcher.New(itunesClient, matcherCfg)

	// 3. Initialize Core Logic (The Driver)
	// This is Dependency Injection in action.
	// We inject the specific adapters into the agnostic service.
	songs := selector.New(store)

	prefetcher := worker.NewPrefetcher(resolver, 100)
	prefetcher.Start(2)
	defer prefetcher.Stop()

	svc := services.NewGameService(songs, store, resolver, results, prefetcher)

	// Warm the preview cache with today's daily set so the first player
	// of the day does not wait on upstream searches.
	today := time.Now().Format("2006-01-02")
	if daily, err := songs.Daily(today); err == nil {
		for _, song := range daily {
			prefetcher.Submit(worker.Job{Title: song.Title, Artist: song.Artist})
		}
	} else {
		log.Printf("WARN main: prefetch daily songs: %v", err)
	}

	// 4. Initialize "Driving" Adapter (The Interface)
	// The HTTP handler talks to the Service.
	handler := rest.NewHandler(svc)

	// 5. Start the Server
	log.Println("------------------------------------------------")
	log.Printf("🎶 Yearworm API is running on %s", addr)
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
