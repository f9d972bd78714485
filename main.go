package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"busfront/internal/backend"
	intconfig "busfront/internal/config"
	router "busfront/internal/http"
	"busfront/internal/session"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB()
	defer intconfig.CloseDB()

	store := session.NewStore(db, env.SessionSecret, env.SessionTTL)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := store.EnsureTable(ctx); err != nil {
			cancel()
			log.Fatalf("failed to prepare session table: %v", err)
		}
		cancel()
	}

	client := backend.New(env.BackendBaseURL, env.BackendTimeout)

	// Router (Gin engine)
	r := router.NewRouter(env, client, store)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("gateway listening on http://localhost%s (backend %s)", env.AppAddr, env.BackendBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly.")
}
