package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	apirest "github.com/kasuganosora/epicadventure/api/rest"
	"github.com/kasuganosora/epicadventure/api/sse"
	"github.com/kasuganosora/epicadventure/audit"
	"github.com/kasuganosora/epicadventure/cache"
	"github.com/kasuganosora/epicadventure/config"
	dbadapter "github.com/kasuganosora/epicadventure/db"
	"github.com/kasuganosora/epicadventure/game/broadcast"
	"github.com/kasuganosora/epicadventure/game/content"
	"github.com/kasuganosora/epicadventure/game/store"
	mw "github.com/kasuganosora/epicadventure/middleware"
	"github.com/kasuganosora/epicadventure/model"
	"github.com/kasuganosora/epicadventure/plugin/hook"
	"github.com/kasuganosora/epicadventure/scheduler"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfgPath := "config/config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ---- Logger ----
	var logger *zap.Logger
	var logErr error
	if cfg.Server.Debug {
		logger, logErr = zap.NewDevelopment()
	} else {
		logger, logErr = zap.NewProduction()
	}
	if logErr != nil {
		log.Fatalf("logger: %v", logErr)
	}
	defer logger.Sync()

	if cfg.Server.AdminKeyHash == "" {
		logger.Warn("server.admin_key_hash is not set; admin endpoints are disabled")
	}

	// ---- Database ----
	db, err := dbadapter.Open(cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	logger.Info("DB initialized", zap.String("mode", cfg.Database.Mode))

	// ---- Audit ----
	auditSvc := audit.New(db, logger)
	defer auditSvc.Stop(context.Background())

	// ---- Cache / PubSub ----
	cacheConfig := cache.CacheConfig{
		RedisAddr:       cfg.Cache.RedisAddr,
		RedisPassword:   cfg.Cache.RedisPassword,
		RedisDB:         cfg.Cache.RedisDB,
		LocalGCInterval: cfg.Cache.LocalGCInterval,
		LocalPubSubBuf:  cfg.Cache.LocalPubSubBuf,
	}
	c, err := cache.NewCache(cacheConfig)
	if err != nil {
		log.Fatalf("cache: %v", err)
	}
	pubsub, err := cache.NewPubSub(cacheConfig)
	if err != nil {
		log.Fatalf("pubsub: %v", err)
	}
	logger.Info("Cache initialized", zap.Bool("redis", cfg.Cache.RedisAddr != ""))

	// ---- Scheduler ----
	sched := scheduler.New(logger)
	defer sched.Stop()

	// ---- Game state ----
	hc := hook.NewHookCenter()
	gen := content.NewGenerator(cfg.Game.Seed)
	b := broadcast.New(pubsub, c, logger)
	defer b.Stop()

	st := store.New(store.Config{
		SkillRadius:        cfg.Game.SkillRadius,
		AuraDuration:       cfg.Game.AuraDuration,
		CounterattackDelay: cfg.Game.CounterattackDelay,
		RespawnDelay:       cfg.Game.RespawnDelay,
		ManaRegen:          cfg.Game.ManaRegen,
		StaminaRegen:       cfg.Game.StaminaRegen,
		HealthRegen:        cfg.Game.HealthRegen,
		ExplorationXP:      cfg.Game.ExplorationXP,
	}, gen, sched, hc, b, logger)
	auditSvc.Attach(hc, st)
	b.Attach(hc, st)

	// ---- Periodic Scheduler Tasks ----
	tick := cfg.Game.TickInterval
	sched.AddTicker("game_tick", tick, func() {
		st.Tick(tick)
	})
	sched.AddTicker("enemy_respawn", cfg.Game.RespawnCheck, func() {
		st.RefillEnemies(cfg.Game.InitialEnemies)
	})
	st.SpawnEnemies(cfg.Game.InitialEnemies)

	// ---- Gin HTTP Server ----
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(mw.TraceID(), mw.Logger(logger), mw.Recovery(logger))
	r.Use(mw.RateLimit(rate.Limit(cfg.Security.RateLimitRPS), cfg.Security.RateLimitBurst))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	sessH := apirest.NewSessionHandler(db, c, cfg.Security, st, auditSvc, b, logger)
	contentH := apirest.NewContentHandler()
	rankH := apirest.NewRankingHandler(c, logger)
	gameH := apirest.NewGameHandler(st, logger)
	adminH := apirest.NewAdminHandler(st, sched, logger)

	api := r.Group("/api")
	{
		api.POST("/session", sessH.Create)
		api.DELETE("/session", mw.Auth(cfg.Security, c), sessH.Delete)

		contentH.Register(api.Group("/content"))
		api.GET("/ranking/level", rankH.TopLevel)

		gameG := api.Group("")
		gameG.Use(mw.Auth(cfg.Security, c))
		gameH.Register(gameG)

		adminG := api.Group("/admin")
		adminG.Use(mw.IPWhitelist(cfg.Server.AdminIPs), apirest.AdminAuth(cfg.Server.AdminKeyHash))
		adminH.Register(adminG)
	}

	// ---- SSE ----
	sseH := sse.NewHandler(pubsub, c, cfg.Security, st, logger)
	r.GET("/sse", sseH.ServeSSE)

	// ---- Browser client ----
	if cfg.Server.StaticDir != "" {
		r.StaticFile("/", filepath.Join(cfg.Server.StaticDir, "index.html"))
		r.NoRoute(apirest.StaticFallback(cfg.Server.StaticDir))
		logger.Info("Serving client files", zap.String("dir", cfg.Server.StaticDir))
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		logger.Info("Server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}
}
