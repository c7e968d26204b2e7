// Package httpapi exposes the learning app over HTTP/JSON with gin.
package httpapi

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/p-n-ai/codelearn/internal/auth"
	"github.com/p-n-ai/codelearn/internal/learn"
	"github.com/p-n-ai/codelearn/internal/platform/logger"
	"github.com/p-n-ai/codelearn/internal/progress"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Deps holds everything the router needs.
type Deps struct {
	Service     *learn.Service
	Issuer      *auth.Issuer
	Hub         *progress.Hub          // optional; disables /api/me/events when nil
	Logger      *logger.Logger         // optional
	CORSOrigins []string               // empty allows every origin
	Checks      map[string]HealthCheck // readiness checks by name
}

type handler struct {
	svc     *learn.Service
	hub     *progress.Hub
	checks  map[string]HealthCheck
	origins []string
	log     *logger.Logger
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(d Deps) *gin.Engine {
	log := d.Logger
	if log == nil {
		log = logger.Default()
	}
	h := &handler{
		svc:     d.Service,
		hub:     d.Hub,
		checks:  d.Checks,
		origins: originPatterns(d.CORSOrigins),
		log:     log,
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log), CORS(d.CORSOrigins))

	r.GET("/healthz", h.healthz)
	r.GET("/readyz", h.readyz)

	api := r.Group("/api")
	{
		content := api.Group("", OptionalAuth(d.Issuer))
		content.GET("/topics", h.listTopics)
		content.GET("/topics/:id", h.getTopic)
		content.GET("/learn", h.learnScreen)
		content.GET("/lessons/:id", h.getLesson)
		content.GET("/exercises", h.practiceScreen)
		content.GET("/exercises/:id", h.getExercise)

		me := api.Group("/me", RequireAuth(d.Issuer))
		me.GET("/home", h.home)
		me.GET("/progress", h.myProgress)
		me.POST("/lessons/:id/complete", h.completeLesson)
		me.POST("/exercises/:id/complete", h.completeExercise)
		if d.Hub != nil {
			me.GET("/events", h.events)
		}
	}

	return r
}
