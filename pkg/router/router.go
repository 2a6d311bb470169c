package router

import (
	"context"
	"net/http"

	"github.com/federation-of-frogs/backend/config"
	"github.com/federation-of-frogs/backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)
type MiddlewareFunc func(ctx context.Context) error

type Router struct {
	Inner gin.IRouter

	cfg    config.Configs
	log    logger.Logger
	db     *gorm.DB
	engine *gin.Engine

	befores []MiddlewareFunc
}

func New(db *gorm.DB, cfg config.Configs, log logger.Logger) *Router {
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Router{
		Inner:  engine,
		engine: engine,
		cfg:    cfg,
		log:    log,
		db:     db,
	}
}

// Branch returns a router sharing the same engine but with its own middleware
// chain. Middlewares registered on the branch do not affect the parent.
func (r *Router) Branch() *Router {
	befores := make([]MiddlewareFunc, len(r.befores))
	copy(befores, r.befores)

	return &Router{
		Inner:   r.Inner,
		engine:  r.engine,
		cfg:     r.cfg,
		log:     r.log,
		db:      r.db,
		befores: befores,
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}
