package pathfinder

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/cityroutes/core"
	"github.com/katalvlaran/cityroutes/dfs"
	"github.com/katalvlaran/cityroutes/mst"
	"github.com/katalvlaran/cityroutes/tsp"
)

// OperationResult reports the outcome of a mutation.
type OperationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PathResult is returned by ShortestPath and LongestPath.
type PathResult struct {
	Found       bool     `json:"found"`
	Path        []string `json:"path"`
	TotalWeight int64    `json:"totalWeight"`
	Message     string   `json:"message"`
}

// StopsResult is returned by FewestStops.
type StopsResult struct {
	Found     bool     `json:"found"`
	Path      []string `json:"path"`
	StopCount int      `json:"stopCount"`
	Message   string   `json:"message"`
}

// ReachableResult is returned by ReachableCities.
type ReachableResult struct {
	Cities  []string `json:"cities"`
	Message string   `json:"message"`
}

// TourResult is returned by PlanTour. Stops is the visiting order of the
// requested cities; Path is the expanded city sequence.
type TourResult struct {
	Found         bool     `json:"found"`
	Path          []string `json:"path"`
	TotalDistance int64    `json:"totalDistance"`
	Message       string   `json:"message"`
	Stops         []string `json:"stops,omitempty"`
	Exact         bool     `json:"exact,omitempty"`
}

// NetworkResult is returned by CheapestNetwork.
type NetworkResult struct {
	Found      bool          `json:"found"`
	Edges      []NetworkEdge `json:"edges"`
	TotalCost  int64         `json:"totalCost"`
	Message    string        `json:"message"`
	Components int           `json:"components,omitempty"`
}

// NetworkEdge is one chosen route, serialized as a [city, city, weight] triple.
type NetworkEdge struct {
	From   string
	To     string
	Weight int64
}

// MarshalJSON encodes the edge as ["From","To",Weight].
func (e NetworkEdge) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.From, e.To, e.Weight})
}

// UnmarshalJSON decodes a [city, city, weight] triple.
func (e *NetworkEdge) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("pathfinder: network edge needs 3 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.From); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &e.To); err != nil {
		return err
	}
	return json.Unmarshal(raw[2], &e.Weight)
}

// GraphSnapshot lists every city and route.
type GraphSnapshot struct {
	Cities []string     `json:"cities"`
	Routes []core.Route `json:"routes"`
}

// Limits bounds the exponential queries.
type Limits struct {
	// QueryTimeout is the deadline applied to LongestPath and PlanTour.
	QueryTimeout time.Duration

	// LongestPathMaxCities is the component ceiling of LongestPath.
	LongestPathMaxCities int

	// TourExactLimit is the largest tour solved exactly.
	TourExactLimit int

	// MaxConcurrentSearches bounds simultaneous exponential searches.
	MaxConcurrentSearches int64

	// NetworkMethod selects mst.MethodKruskal or mst.MethodPrim.
	NetworkMethod string
}

// DefaultLimits returns the engine defaults.
func DefaultLimits() Limits {
	return Limits{
		QueryTimeout:          5 * time.Second,
		LongestPathMaxCities:  dfs.DefaultMaxCities,
		TourExactLimit:        tsp.DefaultExactLimit,
		MaxConcurrentSearches: 4,
		NetworkMethod:         mst.MethodKruskal,
	}
}

// Option configures a PathFinder.
type Option func(*PathFinder)

// WithLogger sets the structured logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(p *PathFinder) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithGraph uses an existing graph instead of an empty one.
func WithGraph(g *core.Graph) Option {
	return func(p *PathFinder) {
		if g != nil {
			p.graph = g
		}
	}
}

// WithLimits overrides the search limits. Zero fields keep their defaults.
func WithLimits(l Limits) Option {
	return func(p *PathFinder) {
		d := DefaultLimits()
		if l.QueryTimeout <= 0 {
			l.QueryTimeout = d.QueryTimeout
		}
		if l.LongestPathMaxCities <= 0 {
			l.LongestPathMaxCities = d.LongestPathMaxCities
		}
		if l.TourExactLimit < 2 {
			l.TourExactLimit = d.TourExactLimit
		}
		if l.MaxConcurrentSearches <= 0 {
			l.MaxConcurrentSearches = d.MaxConcurrentSearches
		}
		if l.NetworkMethod == "" {
			l.NetworkMethod = d.NetworkMethod
		}
		p.limits = l
	}
}

// WithCacheSize sets the query cache capacity; 0 disables caching.
func WithCacheSize(n int) Option {
	return func(p *PathFinder) { p.cacheSize = n }
}

// WithQueryTimeout sets the deadline of LongestPath and PlanTour.
func WithQueryTimeout(d time.Duration) Option {
	return func(p *PathFinder) {
		if d > 0 {
			p.limits.QueryTimeout = d
		}
	}
}

// WithMaxConcurrentSearches bounds how many exponential searches run at once.
func WithMaxConcurrentSearches(n int64) Option {
	return func(p *PathFinder) {
		if n > 0 {
			p.limits.MaxConcurrentSearches = n
		}
	}
}
