package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rinklog/pkg/api"
	"rinklog/pkg/config"
	"rinklog/pkg/logging"
	"rinklog/pkg/workbook"

	log "github.com/sirupsen/logrus"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	configFile := flag.String("config", "rinklog.toml", "Path to the TOML config file")

	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	closer := logging.Setup(*verbose, cfg.Log)
	defer closer.Close()

	repo, err := workbook.Open(context.Background(), cfg, log.StandardLogger())
	if err != nil {
		log.Fatalf("Failed to open workbook: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.Server.ListenAddress,
		Handler:           api.GetRouter(repo),
		ReadHeaderTimeout: 2 * time.Second,
	}
	go startServer(server)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan
	log.Info("Signalled, shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("HTTP shutdown failed")
	}
}

func startServer(server *http.Server) {
	log.Infof("listening for HTTP on: %s", server.Addr)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("ListenAndServeError ", err)
	}
}
