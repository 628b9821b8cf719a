package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/kampusapp/kampus-sync/domain"
	"github.com/kampusapp/kampus-sync/internal/cache"
	"github.com/kampusapp/kampus-sync/internal/gateway"
	"github.com/kampusapp/kampus-sync/internal/rest"
	"github.com/kampusapp/kampus-sync/internal/usecase/interaction"
	"github.com/kampusapp/kampus-sync/internal/usecase/profile"
	"github.com/kampusapp/kampus-sync/internal/usecase/session"
	"github.com/kampusapp/kampus-sync/internal/workers"

	"github.com/kampusapp/kampus-sync/internal/store"
)

const (
	defaultTimeout         = 10
	defaultAddress         = ":9090"
	defaultCacheDB         = 0
	defaultCacheDir        = ".kampus-sync"
	defaultRefreshInterval = 60
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file found, using environment")
	}
}

func openSessionCache() (domain.SessionCache, error) {
	if os.Getenv("CACHE_BACKEND") == "redis" {
		cacheDB, err := strconv.Atoi(os.Getenv("CACHE_DB"))
		if err != nil {
			log.Println("failed to parse CACHE_DB, using default")
			cacheDB = defaultCacheDB
		}
		client := redis.NewClient(&redis.Options{
			Addr:     os.Getenv("CACHE_HOST") + ":" + os.Getenv("CACHE_PORT"),
			Password: os.Getenv("CACHE_PASS"),
			DB:       cacheDB,
		})
		if _, err := client.Ping(context.Background()).Result(); err != nil {
			return nil, err
		}
		return cache.NewRedisCache(client), nil
	}

	dir := os.Getenv("CACHE_DIR")
	if dir == "" {
		dir = defaultCacheDir
	}
	return cache.NewBadgerCache(dir)
}

func main() {
	apiBase := os.Getenv("API_BASE_URL")
	if apiBase == "" {
		log.Fatal("API_BASE_URL is required")
	}

	timeout, err := strconv.Atoi(os.Getenv("CONTEXT_TIMEOUT"))
	if err != nil {
		log.Println("failed to parse timeout, using default timeout")
		timeout = defaultTimeout
	}

	// Remote gateway
	gw := gateway.NewClient(apiBase, time.Duration(timeout)*time.Second)

	// Session cache (badger by default, redis when configured)
	sessionCache, err := openSessionCache()
	if err != nil {
		log.Fatal("could not open session cache: ", err)
	}
	defer func() {
		if err := sessionCache.Close(); err != nil {
			log.Println("got error when closing the session cache: ", err)
		}
	}()

	// Stores
	entityStore := store.NewEntityStore()
	ledger := store.NewNotificationLedger()

	// Build service layer
	profileSvc := profile.NewService(gw, sessionCache, os.Getenv("INSTITUTION_DOMAIN"))
	engineSvc := interaction.NewService(entityStore, ledger, gw, profileSvc)
	sessionSvc := session.NewService(gw, sessionCache, entityStore, ledger, profileSvc, gw.SetToken)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Resume the previous session if a token survived the restart.
	if err := sessionSvc.Bootstrap(ctx); err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			log.Println("no persisted session, waiting for token handover")
		} else {
			log.Println("session bootstrap failed, continuing degraded: ", err)
		}
	}

	// Start workers
	refreshInterval, err := strconv.Atoi(os.Getenv("NOTIFY_REFRESH_SECONDS"))
	if err != nil || refreshInterval <= 0 {
		refreshInterval = defaultRefreshInterval
	}
	notifyWorker := workers.NewNotificationRefreshWorker(gw, ledger, time.Duration(refreshInterval)*time.Second)
	go notifyWorker.Start(ctx)

	if pushURL := os.Getenv("PUSH_URL"); pushURL != "" {
		listener := gateway.NewPushListener(pushURL, func() string {
			raw, err := sessionCache.Get(ctx, domain.CacheKeyToken)
			if err != nil {
				return ""
			}
			return string(raw)
		}, ledger)
		go listener.Start(ctx)
	}

	// Prepare gin
	route := gin.Default()

	postHandler := rest.NewPostHandler(engineSvc, entityStore, sessionSvc)
	projectHandler := rest.NewProjectHandler(engineSvc, entityStore)
	notificationHandler := rest.NewNotificationHandler(ledger, gw, notifyWorker)
	profileHandler := rest.NewProfileHandler(profileSvc)
	sessionHandler := rest.NewSessionHandler(sessionSvc)

	// Register routes
	route.POST("/session", sessionHandler.Start)
	route.POST("/session/refresh", sessionHandler.Refresh)
	route.DELETE("/session", sessionHandler.End)

	route.GET("/posts", postHandler.Feed)
	route.GET("/posts/:id", postHandler.GetByID)
	route.POST("/posts", postHandler.Create)
	route.POST("/posts/:id/like", postHandler.Like)
	route.POST("/posts/:id/comments", postHandler.CreateComment)

	route.GET("/projects", projectHandler.List)
	route.GET("/projects/:id", projectHandler.GetByID)
	route.POST("/projects", projectHandler.Create)
	route.POST("/projects/:id/like", projectHandler.Like)
	route.POST("/projects/:id/comments", projectHandler.CreateComment)
	route.POST("/projects/:id/members", projectHandler.ToggleMember)

	route.GET("/notifications", notificationHandler.List)
	route.PUT("/notifications/:id/read", notificationHandler.MarkRead)
	route.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
	route.POST("/notifications/refresh", notificationHandler.Refresh)

	route.GET("/profile", profileHandler.Get)
	route.PUT("/profile", profileHandler.Update)

	// Start server
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}
	srv := &http.Server{
		Addr:    address,
		Handler: route,
	}
	go func() {
		log.Printf("sync engine is running on %s\n", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err) // nolint
		}
	}()

	// shutdown
	<-ctx.Done()
	log.Println("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
