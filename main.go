package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gym-management-api/config"
	"gym-management-api/events"
	"gym-management-api/handlers"
	"gym-management-api/logger"
	"gym-management-api/mailer"
	"gym-management-api/metrics"
	"gym-management-api/middleware"
	"gym-management-api/routes"
	"gym-management-api/services"
	"gym-management-api/sessions"
	"gym-management-api/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.GetLogger().Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.Init(cfg.Server.Env)

	// Set Gin mode
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database
	db, err := store.Open(cfg.Database)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := store.Migrate(db); err != nil {
		log.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}
	if err := store.Seed(db, cfg.Admin); err != nil {
		log.Error("failed to seed database", "error", err)
		os.Exit(1)
	}
	log.Info("database ready", "driver", cfg.Database.Driver)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	hub := events.NewHub()
	go hub.Run(ctx)
	publishers := events.Fanout{hub}
	if cfg.MQTT.Broker != "" {
		mq, err := events.NewMQTTPublisher(cfg.MQTT)
		if err != nil {
			log.Warn("mqtt disabled", "broker", cfg.MQTT.Broker, "error", err)
		} else {
			defer mq.Close()
			publishers = append(publishers, mq)
			log.Info("publishing events to mqtt", "broker", cfg.MQTT.Broker)
		}
	}

	m := metrics.New()
	sm := sessions.NewManager(cfg.Auth.TokenTTL)
	svc := services.New(services.Deps{
		Store:            store.New(db),
		Sessions:         sm,
		Events:           publishers,
		Metrics:          m,
		Mailer:           mailer.New(cfg.SMTP),
		VerificationCode: cfg.Auth.VerificationCode,
	})
	authn := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, sm)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(m), middleware.CORS())

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Gym Management API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"Admin", "Member", "Trainer"},
		})
	})

	// Register all routes
	if err := routes.SetupRoutes(r, handlers.New(svc, authn, hub), authn, m); err != nil {
		log.Error("failed to register routes", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", "addr", "http://localhost:"+cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
	stop()
	log.Info("server stopped gracefully")
}
