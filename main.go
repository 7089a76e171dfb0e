package main

import (
	"ReframeGo/config"
	"ReframeGo/routes"
	"ReframeGo/services"
	"ReframeGo/store"
	"ReframeGo/utils"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	// Logger first so everything after can report through it
	if err := config.InitLogger(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer config.Logger.Sync()

	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	utils.InitJWT(conf.JWTSecret)

	db, err := config.InitDB(conf)
	if err != nil {
		log.Fatalf("failed to init database: %v", err)
	}

	// The classifier is best-effort: a dead endpoint must never stop event
	// logging, so a construction failure only disables labeling.
	var classifier services.EmotionClassifier
	if c, err := services.NewOpenAIClassifier(conf); err != nil {
		config.Logger.Warnw("emotion classifier disabled", "error", err)
	} else {
		classifier = c
	}

	eventStore := store.NewEventStore(db)
	eventService := services.NewEventService(eventStore, classifier, config.Logger)

	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	routes.RegisterRoutes(r, eventStore, eventService)

	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	go func() {
		log.Printf("listening on port %s", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for an interrupt, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
