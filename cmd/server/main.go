package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/api"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/config"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/event"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/mailer"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/repository/postgres"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/service"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Initialize services
	services := service.NewServices(repos, cfg)

	// Initialize mailer and outbox dispatcher
	smtpMailer, err := mailer.NewSMTPMailer(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize mailer")
	}

	dispatcher := event.NewDispatcher(repos.Outbox, cfg.OutboxPollInterval, cfg.OutboxMaxAttempts)
	dispatcher.Handle(event.TopicAccountConfirmation, event.AccountConfirmationHandler(services.User, smtpMailer))

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()
	go dispatcher.Run(dispatcherCtx)

	// Initialize router
	router := api.NewRouter(services, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server")
	stopDispatcher()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	logrus.Info("server stopped")
}
