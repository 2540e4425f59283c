package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/skillswap/skillswap-be/internal/api"
	"github.com/skillswap/skillswap-be/internal/auth"
	"github.com/skillswap/skillswap-be/internal/config"
	"github.com/skillswap/skillswap-be/internal/database"
	"github.com/skillswap/skillswap-be/internal/logger"
	"github.com/skillswap/skillswap-be/internal/ratelimit"
	"github.com/skillswap/skillswap-be/internal/services"
	"github.com/skillswap/skillswap-be/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.IsProduction())

	// Set up the document store
	db, err := database.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer db.Client().Disconnect(context.Background())

	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure indexes")
	}

	// Set up stores and services
	userStore := store.NewUsers(db)
	swapStore := store.NewSwaps(db)
	userService := services.NewUserService(userStore, cfg.BcryptCost)
	swapService := services.NewSwapService(swapStore, userStore)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	// Per-IP limiters for the unauthenticated auth endpoints, with a
	// background janitor evicting idle entries
	signupLimiter := ratelimit.New(cfg.SignupLimit, cfg.SignupWindow)
	signinLimiter := ratelimit.New(cfg.SigninLimit, cfg.SigninWindow)
	janitor := ratelimit.NewJanitor(10*time.Minute, signupLimiter, signinLimiter)
	go janitor.Run()

	// Set up router
	router := api.NewRouter(cfg, tokens, userService, swapService, signupLimiter, signinLimiter)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	janitor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
