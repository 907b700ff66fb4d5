package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"postboard/internal/handler"
	"postboard/internal/middleware"
	"postboard/internal/observability"
	"postboard/internal/web"
)

// Options carries the cross-cutting pieces the router wires around handlers.
type Options struct {
	AllowedOrigins []string
	Metrics        *observability.Metrics
	Gatherer       prometheus.Gatherer
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(postH *handler.PostHandler, healthH *handler.HealthHandler, opts Options) (*gin.Engine, error) {
	r := gin.New()

	// Global middleware. Metrics and Logger wrap Recovery so recovered
	// panics are still counted and logged as 500s.
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Banner and health checks
	r.GET("/", healthH.Root)
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	posts := r.Group("/api/posts")
	posts.GET("", postH.List)
	posts.POST("/add", postH.CreateResized)
	posts.POST("/multer", postH.CreateStreamed)
	posts.DELETE("/:id", postH.Delete)

	if err := web.Register(r, "/ui"); err != nil {
		return nil, fmt.Errorf("mounting client: %w", err)
	}

	return r, nil
}
