package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sonalan/filact-sub001/config"
	"github.com/sonalan/filact-sub001/internal/demoserver"
	"github.com/sonalan/filact-sub001/pkg/logger"
)

func main() {
	log := logger.New()

	defer func() {
		if r := recover(); r != nil {
			log.Error("Panic recovered: %v", r)
			os.Exit(1)
		}
	}()

	srv := demoserver.New(seedData())
	srv.RegisterAction("users", "deactivate", deactivateAction)

	port := config.GetServerPort()
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: srv.Handler(),
	}

	go func() {
		log.Info("Demo server listening on :%d", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("Shutdown error: %v", err)
	}
}

func seedData() map[string][]map[string]any {
	return map[string][]map[string]any{
		"users": {
			{"id": 1, "name": "alice", "email": "alice@example.com", "age": 34, "status": "active"},
			{"id": 2, "name": "bob", "email": "bob@example.com", "age": 28, "status": "inactive"},
			{"id": 3, "name": "carol", "email": "carol@example.com", "age": 41, "status": "active"},
		},
		"posts": {
			{"id": 1, "title": "Hello world", "authorId": 1, "published": true},
			{"id": 2, "title": "Drafts are forever", "authorId": 2, "published": false},
		},
	}
}

func deactivateAction(resource string, payload map[string]any) (any, error) {
	id, ok := payload["id"]
	if !ok {
		return nil, fmt.Errorf("missing id")
	}
	return map[string]any{"deactivated": id}, nil
}
