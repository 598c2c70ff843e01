package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"listingscope/internal/config"
	"listingscope/internal/dataset"
	"listingscope/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	source, err := dataset.NewSource(appConfig.Data)
	if err != nil {
		log.Fatalf("Failed to configure data source: %v", err)
	}
	holder := dataset.NewHolder(source)
	log.Printf("Using %s data source: %s", appConfig.Data.Source, source.Name())

	server, err := ui.NewServer(holder, ui.Options{
		PreviewRows: appConfig.Data.PreviewRows,
		GinMode:     appConfig.Server.GinMode,
	})
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	servers := []*http.Server{{Addr: ":" + appConfig.Server.Port, Handler: server.Handler()}}
	if appConfig.Profiling.Enabled {
		servers = append(servers, &http.Server{Addr: ":" + appConfig.Profiling.Port, Handler: ui.NewApp(holder).Handler()})
		log.Printf("Ops server (healthz, pprof) starting on :%s", appConfig.Profiling.Port)
		log.Printf("View profiles: go tool pprof -http=:8081 http://localhost:%s/debug/pprof/profile?seconds=30", appConfig.Profiling.Port)
	}

	// Warm the cache so the first page view does not pay for the read.
	go func() {
		if _, err := holder.Get(ctx); err != nil {
			log.Printf("Initial dataset load failed, will retry on request: %v", err)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			log.Printf("Listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()
		log.Printf("Shutting down (timeout %v)", appConfig.Server.ShutdownTimeout)
		var firstErr error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
