package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"desidine-api/config"
	"desidine-api/middleware"
	"desidine-api/pkg/logger"
	"desidine-api/realtime"
	"desidine-api/routes"
	"desidine-api/services"
)

func main() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	var log *logger.Logger
	if gin.Mode() == gin.DebugMode {
		log = logger.NewDevelopment()
	} else {
		log = logger.New()
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	db, err := config.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	log.Infow("database connected and migrated", "path", cfg.DB.Path)

	images, err := services.NewDiskImageStore(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		log.Fatalw("failed to prepare upload dir", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := realtime.NewHub(log)
	go hub.Run(ctx)

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	// CORS for the mobile client
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "DesiDine API"})
	})
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "DesiDine API Running")
	})
	r.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)

	routes.SetupRoutes(r, routes.Deps{
		DB:          db,
		JWTSecret:   []byte(cfg.JWT.Secret),
		TokenTTL:    cfg.JWT.TTL,
		OTPSender:   services.NewLogOTPSender(log),
		OTPTTL:      cfg.OTP.TTL,
		Gateway:     services.NewRazorpayClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret),
		Publisher:   hub,
		Images:      images,
		AuthLimiter: middleware.NewRateLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window),
		Hub:         hub,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		log.Infow("server running", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("shutdown error", "error", err)
	}
}

// requestLogger logs each request through zap instead of gin's default writer.
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
