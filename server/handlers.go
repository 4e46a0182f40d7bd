package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/cityroutes/pathfinder"
	"github.com/katalvlaran/cityroutes/seed"
)

type handlers struct {
	finder *pathfinder.PathFinder
	logger *slog.Logger
}

type routeRequest struct {
	City1    string `json:"city1" binding:"required"`
	City2    string `json:"city2" binding:"required"`
	Distance *int64 `json:"distance" binding:"required"`
}

type pairRequest struct {
	City1 string `json:"city1" binding:"required"`
	City2 string `json:"city2" binding:"required"`
}

type endpointsRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type startRequest struct {
	Start string `json:"start" binding:"required"`
}

type tourRequest struct {
	Cities []string `json:"cities"`
}

// bind decodes the JSON body into req, answering 400 on failure.
func (h *handlers) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.DebugContext(c.Request.Context(), "invalid request body",
			"path", c.FullPath(), "error", err, "request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusBadRequest, pathfinder.OperationResult{Message: "Invalid request: " + err.Error()})
		return false
	}
	return true
}

func (h *handlers) addRoute(c *gin.Context) {
	var req routeRequest
	if !h.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.finder.AddRoute(c.Request.Context(), req.City1, req.City2, *req.Distance))
}

func (h *handlers) updateRoute(c *gin.Context) {
	var req routeRequest
	if !h.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.finder.UpdateRoute(c.Request.Context(), req.City1, req.City2, *req.Distance))
}

func (h *handlers) removeRoute(c *gin.Context) {
	var req pairRequest
	if !h.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.finder.RemoveRoute(c.Request.Context(), req.City1, req.City2))
}

func (h *handlers) shortestPath(c *gin.Context) {
	var req endpointsRequest
	if !h.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.finder.ShortestPath(c.Request.Context(), req.Start, req.End))
}

func (h *handlers) longestPath(c *gin.Context) {
	var req endpointsRequest
	if !h.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.finder.LongestPath(c.Request.Context(), req.Start, req.End))
}

func (h *handlers) fewestStops(c *gin.Context) {
	var req endpointsRequest
	if !h.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.finder.FewestStops(c.Request.Context(), req.Start, req.End))
}

func (h *handlers) reachable(c *gin.Context) {
	var req startRequest
	if !h.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.finder.ReachableCities(c.Request.Context(), req.Start))
}

func (h *handlers) multiCityTour(c *gin.Context) {
	var req tourRequest
	if !h.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.finder.PlanTour(c.Request.Context(), req.Cities))
}

func (h *handlers) cheapestNetwork(c *gin.Context) {
	c.JSON(http.StatusOK, h.finder.CheapestNetwork(c.Request.Context()))
}

func (h *handlers) graph(c *gin.Context) {
	c.JSON(http.StatusOK, h.finder.Snapshot())
}

func (h *handlers) clear(c *gin.Context) {
	c.JSON(http.StatusOK, h.finder.Clear(c.Request.Context()))
}

func (h *handlers) loadSample(c *gin.Context) {
	res, err := seed.Apply(c.Request.Context(), h.finder, seed.Sample(), true)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "load sample failed", "error", err)
		c.JSON(http.StatusInternalServerError, pathfinder.OperationResult{Message: err.Error()})
		return
	}
	if res.Success {
		res.Message = "Sample data loaded"
	}
	c.JSON(http.StatusOK, res)
}

func (h *handlers) health(c *gin.Context) {
	g := h.finder.Graph()
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"cities": g.CityCount(),
		"routes": g.RouteCount(),
		"epoch":  g.Epoch(),
	})
}

func (h *handlers) cacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.finder.CacheStats())
}
