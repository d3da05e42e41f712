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

	"go.uber.org/zap"

	"github.com/example/ctcourse/internal/auth"
	"github.com/example/ctcourse/internal/config"
	"github.com/example/ctcourse/internal/course"
	"github.com/example/ctcourse/internal/database"
	"github.com/example/ctcourse/internal/project"
	"github.com/example/ctcourse/internal/scheduler"
	"github.com/example/ctcourse/internal/server"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DBType, cfg.DSN())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	docs := database.NewDocumentStore(db)
	users := database.NewUserRepository(db)
	sessions := database.NewSessionRepository(db)
	progressRepo := database.NewProgressRepository(docs)
	answerRepo := database.NewAnswerRepository(docs)

	catalog := course.DefaultCatalog()
	engine := course.NewEngine(catalog, progressRepo)
	answers := project.NewService(catalog, answerRepo, engine, project.Config{
		MinAnswerLen:     cfg.MinAnswerLen,
		CompleteOnSubmit: cfg.AnswerSubmitCompletes,
	})
	authService := auth.NewService(users, sessions, progressRepo, answerRepo, catalog, cfg.SessionTTL)

	srv := server.New(cfg, authService, engine, answers, users, logger)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	jobs := scheduler.New(sessions, logger)
	jobs.Start()
	defer jobs.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server started", zap.String("addr", cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	sig := <-sigChan
	logger.Info("received signal, shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("error during shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

// newLogger builds the process logger for the configured environment.
func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
