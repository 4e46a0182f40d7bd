package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/cityroutes/pathfinder"
)

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	Finder *pathfinder.PathFinder
	// Metrics serves /metrics when non-nil.
	Metrics        http.Handler
	AllowedOrigins []string
	// RateLimit is requests per second across all clients; 0 disables it.
	RateLimit   float64
	RateBurst   int
	ServiceName string
}

// NewRouter wires the HTTP routes exposed by the API.
func NewRouter(logger *slog.Logger, deps RouterDependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if deps.ServiceName != "" {
		r.Use(otelgin.Middleware(deps.ServiceName))
	}
	r.Use(requestID(), accessLog(logger))
	if len(deps.AllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(deps.AllowedOrigins)))
	}

	h := &handlers{finder: deps.Finder, logger: logger}
	r.GET("/healthz", h.health)
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}
	r.GET("/debug/cache", h.cacheStats)

	api := r.Group("/api")
	if deps.RateLimit > 0 {
		api.Use(rateLimit(rate.NewLimiter(rate.Limit(deps.RateLimit), max(deps.RateBurst, 1))))
	}
	api.POST("/add_route", h.addRoute)
	api.POST("/update_route", h.updateRoute)
	api.POST("/remove_route", h.removeRoute)
	api.POST("/shortest_path", h.shortestPath)
	api.POST("/longest_path", h.longestPath)
	api.POST("/fewest_stops", h.fewestStops)
	api.POST("/reachable", h.reachable)
	api.POST("/multi_city_tour", h.multiCityTour)
	api.GET("/cheapest_network", h.cheapestNetwork)
	api.GET("/graph", h.graph)
	api.POST("/clear", h.clear)
	api.POST("/load_sample", h.loadSample)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", requestIDHeader}
	cfg.ExposeHeaders = []string{requestIDHeader}
	return cfg
}
