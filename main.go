package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	"ruedo-cms/authz"
	"ruedo-cms/config"
	"ruedo-cms/handlers"
	"ruedo-cms/logging"
	"ruedo-cms/repositories"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize database")
	}

	blacklist, err := repositories.NewTokenBlacklistRepository(cfg.TokenStorePath)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open token store")
	}
	defer blacklist.Close()

	engine, err := authz.NewDefaultEngine()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load authorization policy")
	}

	router, err := handlers.NewRouter(handlers.Dependencies{
		Config:    cfg,
		DB:        db,
		Blacklist: blacklist,
		Engine:    engine,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler(cfg).Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("server shutdown failed")
	}
	logging.Info().Msg("server stopped")
}

func corsHandler(cfg *config.Config) *cors.Cors {
	var pattern *regexp.Regexp
	if cfg.CORSAllowedOriginPattern != "" {
		pattern = regexp.MustCompile(cfg.CORSAllowedOriginPattern)
	}

	allowed := make(map[string]bool, len(cfg.CORSAllowedOrigins))
	for _, origin := range cfg.CORSAllowedOrigins {
		allowed[origin] = true
	}

	return cors.New(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return allowed[origin] || (pattern != nil && pattern.MatchString(origin))
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Authorization"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
