package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/safespace/core/internal/middleware"
	"github.com/safespace/core/internal/modules/comment"
	"github.com/safespace/core/internal/modules/moderator"
	"github.com/safespace/core/internal/modules/post"
	"github.com/safespace/core/internal/modules/user"
	"github.com/safespace/core/internal/pkg/mail"
	pkgredis "github.com/safespace/core/internal/pkg/redis"
	"github.com/safespace/core/internal/pkg/response"
	"github.com/safespace/core/internal/pkg/taskqueue"
	"go.uber.org/zap"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)
	optionalAuthMW := middleware.OptionalAuth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "safespace-core",
		"version": "1.0.0",
	}

	r.Use(middleware.RateLimit(rc.Raw()))

	sender := mail.New(mail.Config{
		Enable:    a.cfg.Mail.Enable,
		Host:      a.cfg.Mail.SMTPHost,
		Port:      a.cfg.Mail.SMTPPort,
		User:      a.cfg.Mail.SMTPUser,
		Pass:      a.cfg.Mail.SMTPPassword,
		From:      a.cfg.Mail.From,
		FromName:  a.cfg.Mail.FromName,
		UseResend: a.cfg.Mail.Provider == "resend",
		ResendKey: a.cfg.Mail.ResendAPIKey,
	})
	taskSvc := taskqueue.NewService(rc)

	userSvc := user.NewService(db, sender, taskSvc, a.cfg, a.logger)
	if err := userSvc.EnsureDefaultAdmin(context.Background()); err != nil {
		a.logger.Warn("default admin bootstrap failed", zap.Error(err))
	}

	// Every abusive comment re-evaluates the author's abuse rate off the
	// request path.
	a.engine.OnAbusive = func(userID string) {
		go userSvc.CheckAbuseRate(userID)
	}

	api := r.Group("/api/v1")

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/info", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		uptimeMs := time.Since(processStart).Milliseconds()
		c.JSON(http.StatusOK, gin.H{
			"timestamp": uptimeMs,
			"humanize":  humanizeDuration(time.Duration(uptimeMs) * time.Millisecond),
		})
	})

	user.NewHandler(userSvc).RegisterRoutes(api, authMW)

	postSvc := post.NewService(db, a.cfg.Moderation.MaxPostLength)
	post.NewHandler(postSvc).RegisterRoutes(api, authMW, optionalAuthMW)

	commentSvc := comment.NewService(db, a.engine)
	comment.NewHandler(commentSvc).RegisterRoutes(api, authMW, optionalAuthMW)

	moderator.NewHandler(moderator.NewService(db, sender, taskSvc)).RegisterRoutes(api, authMW)
}
