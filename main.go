package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"studybuddy/internal/api"
	"studybuddy/internal/config"
	"studybuddy/internal/logger"
	"studybuddy/internal/metrics"
	"studybuddy/internal/service/ai"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("STUDYBUDDY_CONFIG"))
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if err := logger.Init(logger.Options{
		Level:      cfg.Logging.Level,
		Pretty:     cfg.Logging.Pretty,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}); err != nil {
		log.Fatal().Err(err).Msg("init logger")
	}

	// Refuse to start without an upstream credential; a relay with no key can
	// serve nothing but the health check.
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	metrics.Init()

	client, err := ai.NewGeminiClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout())
	if err != nil {
		log.Fatal().Err(err).Msg("init gemini client")
	}

	handlers := api.NewHandler(client, cfg.Upload.Dir, cfg.Upload.MaxBytes())

	router := gin.Default()
	router.Use(cors.Default())
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	handlers.RegisterRoutes(router)

	srv := &http.Server{Addr: cfg.Server.Address, Handler: router}
	go func() {
		log.Info().
			Str("addr", cfg.Server.Address).
			Str("model", cfg.Gemini.Model).
			Msg("studybuddy api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info().Msg("shutdown complete")
}
