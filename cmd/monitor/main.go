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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"goalsignal/internal/calibration"
	"goalsignal/internal/client/livescore"
	"goalsignal/internal/config"
	cronrunner "goalsignal/internal/cron"
	"goalsignal/internal/db"
	"goalsignal/internal/handler"
	"goalsignal/internal/labeler"
	"goalsignal/internal/logger"
	gormrepository "goalsignal/internal/repository/gorm"
	"goalsignal/internal/service"
	"goalsignal/internal/stream"
)

func main() {
	cfgPath := os.Getenv("GS_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("GS_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)

	feedHTTP := &http.Client{Timeout: cfg.Feed.Timeout}
	feedClient := livescore.NewClient(feedHTTP, cfg.Feed.BaseURL)

	hub := stream.NewHub(cfg.Stream.SubscriberBuf, logger)
	recorder := &calibration.Recorder{
		Repo:    store,
		Leagues: labeler.NewLeagueExtractor(),
		Logger:  logger,
	}
	signalSvc := &service.SignalService{
		Repo:          store,
		RetentionDays: cfg.Settlement.RetentionDays,
		Logger:        logger,
	}
	sweepSvc := &service.SweepService{
		Repo:     store,
		Supplier: feedClient,
		Recorder: recorder,
		Hub:      hub,
		Config:   cfg.Settlement,
		Logger:   logger,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	signalHandler := &handler.SignalHandler{Service: signalSvc}
	signalHandler.Register(engine)
	statsHandler := &handler.StatsHandler{Service: signalSvc}
	statsHandler.Register(engine)
	calibrationHandler := &handler.CalibrationHandler{Repo: store}
	calibrationHandler.Register(engine)
	sweepHandler := &handler.SweepHandler{Sweep: sweepSvc}
	sweepHandler.Register(engine)
	if cfg.Stream.Enabled {
		streamHandler := &handler.StreamHandler{Hub: hub, Logger: logger}
		streamHandler.Register(engine)
	}

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Stream.Enabled {
		go func() {
			if err := hub.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("stream hub stopped", zap.Error(err))
			}
		}()
	}

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled {
		_, err = cronRunner.Add(cfg.Cron.Sweep, func(ctx context.Context) {
			if err := sweepSvc.RunOnce(ctx); err != nil {
				logger.Warn("cron settlement sweep failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register sweep failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown failed", zap.Error(err))
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
