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

	"github.com/cx-tal-miterani/flight-quote/internal/airport"
	"github.com/cx-tal-miterani/flight-quote/internal/config"
	"github.com/cx-tal-miterani/flight-quote/internal/database"
	"github.com/cx-tal-miterani/flight-quote/internal/handlers"
	"github.com/cx-tal-miterani/flight-quote/internal/router"
	"github.com/cx-tal-miterani/flight-quote/internal/service"
	"github.com/cx-tal-miterani/flight-quote/internal/websocket"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional persistence for user-added airports and rendered quotes
	var store service.Store
	if cfg.DatabaseURL != "" {
		log.Println("Connecting to database...")
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		repo := database.NewRepository(pool)
		if err := repo.Migrate(ctx); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		store = repo
		log.Println("Connected to database")
	}

	airports := airport.NewList()
	hub := websocket.NewHub(airports, cfg.CORSOrigin)
	quoteService := service.NewQuoteService(airports, store, hub)

	h := handlers.NewHandler(quoteService)
	r := router.SetupRouter(h, hub, cfg.CORSOrigin)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return hub.Run(ctx)
	})

	// The server starts answering before the dataset is loaded; until then
	// the airport list is empty.
	g.Go(func() error {
		if err := quoteService.LoadAirports(ctx, cfg.AirportsSource); err != nil {
			log.Printf("Error loading airports: %v", err)
		}
		log.Printf("Airport list ready with %d airports", airports.Len())
		return nil
	})

	g.Go(func() error {
		log.Printf("API Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server stopped with error: %v", err)
		os.Exit(1)
	}

	log.Println("Server stopped")
}
