package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	commonlog "lodging_server/server/common/log"
	multimediaapp "lodging_server/server/multimedia/app"
)

func main() {
	cfg := multimediaapp.LoadConfig()
	if port := os.Getenv("MULTIMEDIA_PORT"); port != "" {
		cfg.Port = port
	}

	server, err := multimediaapp.NewServer(cfg)
	if err != nil {
		log.Fatalf("initialize multimedia server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		commonlog.Infof("start multimedia http server on :%s", cfg.Port)
		if err := server.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("run multimedia http server: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		commonlog.Errorf("shutdown multimedia server gracefully: %v", err)
	}
}
