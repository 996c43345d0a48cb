package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MitieSoft/salesdesk/internal/config"
	"github.com/MitieSoft/salesdesk/internal/mailer"
	"github.com/MitieSoft/salesdesk/internal/server"
	"github.com/MitieSoft/salesdesk/internal/services"
	"github.com/MitieSoft/salesdesk/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := config.NewLogger(cfg.Env)

	st, err := store.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("store open failed")
	}

	// The engine swaps in an SMTP transport itself once an active
	// setting is loaded or configured.
	engine, err := services.NewEngine(st, &mailer.Loopback{Log: log}, log)
	if err != nil {
		log.WithError(err).Fatal("engine init failed")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.New(engine, st, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
	log.Info("server stopped")
}
