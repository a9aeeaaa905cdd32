package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"mealprep/auth"
	"mealprep/catalog"
	"mealprep/config"
	"mealprep/db"
	"mealprep/mealplan"
	"mealprep/menus"
	"mealprep/middleware"
	"mealprep/mq"
	"mealprep/profile"
	"mealprep/ratelim"
	"mealprep/rdx"
	"mealprep/recipes"
	"mealprep/routes"
	"mealprep/settings"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// XSS, content sniffing, framing
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		// HSTS (must be on HTTPS)
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		w.Header().Set("Referrer-Policy", "no-referrer")
		// Prevent caching
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if cfg.LogFormat == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithField("level", cfg.LogLevel).Warn("unknown log level; using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// setupRouter wires repositories, services and handlers into the router.
func setupRouter(cfg *config.Config, database *db.DB, redisClient *rdx.Client) *httprouter.Router {
	events := mq.NewEmitter(redisClient)

	profiles := profile.NewService(profile.NewMongoRepository(database), events)
	cat := catalog.NewService(catalog.NewMongoRepository(database), redisClient)
	store := menus.NewStore(menus.NewMongoRepository(database))

	authSvc := auth.NewService(
		auth.NewMongoAccounts(database),
		profiles,
		auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		auth.NewRedisRevocations(redisClient),
		events,
	)
	generator := recipes.NewService(cat, profiles, store, mealplan.NewPlanner(mealplan.FirstSeven{}), events)

	router := httprouter.New()
	routes.Register(router, routes.Deps{
		Verifier:    authSvc,
		RateLimiter: ratelim.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitPerMinute),
		Auth:        auth.NewHandler(authSvc),
		Catalog:     catalog.NewHandler(cat),
		Recipes:     recipes.NewHandler(generator),
		Menus:       menus.NewHandler(store, cat, cfg.PublicBaseURL).WithFont(cfg.PDFFontPath),
		Profile:     profile.NewHandler(profiles),
		Settings:    settings.NewHandler(profiles),
	})
	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found; using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logger := newLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		cancel()
		logger.WithError(err).Fatal("failed to connect to MongoDB")
	}
	if err := database.EnsureIndexes(ctx); err != nil {
		cancel()
		logger.WithError(err).Fatal("failed to create indexes")
	}
	redisClient, err := rdx.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	cancel()
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to Redis")
	}

	router := setupRouter(cfg, database, redisClient)

	// apply middleware: request log → security headers → CORS → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler(router)

	handler := middleware.RequestLogger(logger)(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// on shutdown: close the stores once in-flight requests are done
	server.RegisterOnShutdown(func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := database.Close(closeCtx); err != nil {
			logger.WithError(err).Warn("closing MongoDB")
		}
		if err := redisClient.Close(); err != nil {
			logger.WithError(err).Warn("closing Redis")
		}
	})

	go func() {
		logger.WithField("addr", cfg.Port).Info("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("ListenAndServe error")
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received; shutting down gracefully")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Fatal("graceful shutdown failed")
	}

	logger.Info("server stopped cleanly")
}
