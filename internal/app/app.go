package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/safespace/core/internal/config"
	"github.com/safespace/core/internal/database"
	"github.com/safespace/core/internal/middleware"
	"github.com/safespace/core/internal/moderation"
	pkgredis "github.com/safespace/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	engine *moderation.Engine
	logger *zap.Logger
}

// New initializes the application: config → DB → Redis → engine → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := applyRuntimeSettings(cfg, logger); err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.Redis.URLValue())
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	engine := buildEngine(cfg, logger)

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	app := &App{cfg: cfg, router: router, db: db, engine: engine, logger: logger}
	app.registerRoutes(rc)

	return app, nil
}

// buildEngine constructs the moderation engine from config, loading the
// lexicon file when one is configured. An unreadable lexicon file is never
// fatal: the engine falls back to the built-in word list and the process
// continues.
func buildEngine(cfg *config.AppConfig, logger *zap.Logger) *moderation.Engine {
	var lexicon *moderation.Lexicon
	if path := cfg.Moderation.LexiconPath; path != "" {
		lx, err := moderation.LoadLexicon(path)
		if err != nil {
			logger.Warn("lexicon load failed, falling back to built-in word list",
				zap.String("path", path), zap.Error(err))
		} else {
			lexicon = lx
			logger.Info("lexicon loaded", zap.String("path", path), zap.Int("words", lx.Len()))
		}
	}

	m := cfg.Moderation
	return moderation.NewEngine(moderation.Config{
		MaxCommentLength:       m.MaxCommentLength,
		SimilarityThreshold:    m.SimilarityThreshold,
		PromotionalWarnRepeats: m.PromotionalWarnRepeats,
		PromotionalHideRepeats: m.PromotionalHideRepeats,
		RepetitionWarnRepeats:  m.RepetitionWarnRepeats,
		RepetitionHideRepeats:  m.RepetitionHideRepeats,
	}, lexicon, logger)
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown flushes buffered log entries.
func (a *App) Shutdown() { _ = a.logger.Sync() }
