package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ifnexus/docs" // swagger docs
	"ifnexus/internal/auth"
	"ifnexus/internal/cache"
	"ifnexus/internal/config"
	"ifnexus/internal/db"
	"ifnexus/internal/handler"
	"ifnexus/internal/metrics"
	"ifnexus/internal/repository"
	"ifnexus/internal/router"
	"ifnexus/internal/service"
	"ifnexus/internal/storage"
	"ifnexus/internal/suap"
)

// @title IFNexus API
// @version 1.0
// @description Showcase of IFRN student projects with SUAP login, likes and comments.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := log.With().Str("component", "server").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("database init")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		logger.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, running without cache")
	}

	store, err := storage.New(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("upload storage init")
	}
	m := metrics.New()

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	suapClient := suap.NewClient(suap.Config{
		ClientID:     cfg.SUAPClientID,
		ClientSecret: cfg.SUAPClientSecret,
		RedirectURI:  cfg.SUAPRedirectURI,
		AuthURL:      cfg.SUAPAuthURL,
		TokenURL:     cfg.SUAPTokenURL,
		APIURL:       cfg.SUAPAPIURL,
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	likeRepo := repository.NewLikeRepository(gormDB)

	// Initialize services
	listingService := service.NewListingService(projectRepo, commentRepo, likeRepo, store, cacheClient)
	projectService := service.NewProjectService(projectRepo, userRepo, store, listingService, m)
	interactionService := service.NewInteractionService(projectRepo, commentRepo, likeRepo, listingService, m)
	userService := service.NewUserService(userRepo, projectRepo, likeRepo, store, cacheClient)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, suapClient, userService, m)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, router.Handlers{
		Auth:    handler.NewAuthHandler(authService, cfg.SessionCookieSecure),
		Project: handler.NewProjectHandler(projectService, interactionService),
		Listing: handler.NewListingHandler(listingService),
		User:    handler.NewUserHandler(userService),
	}, jwtService, tokenStore, userRepo, m)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}
	logger.Info().Str("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html").Msg("swagger documentation available")

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
	}
}
