package core

import (
	"context"
	"errors"
)

// Path is an ordered sequence of cities with its total route weight.
// A path found by an engine never repeats a city.
type Path struct {
	Cities []string
	Weight int64
}

// Stops returns the number of hops in the path.
func (p Path) Stops() int {
	if len(p.Cities) == 0 {
		return 0
	}
	return len(p.Cities) - 1
}

// PathWeight sums the direct route weights along cities.
// It reports false if two consecutive cities are not directly connected.
func PathWeight(v *View, cities []string) (int64, bool) {
	var total int64
	for i := 1; i < len(cities); i++ {
		w, ok := v.Weight(cities[i-1], cities[i])
		if !ok {
			return 0, false
		}
		total += w
	}
	return total, true
}

// Kind classifies err into one of the stable error kind names used in
// results and logs. It returns "" for nil and "Internal" for unknown errors.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCityNotFound):
		return "CityNotFound"
	case errors.Is(err, ErrRouteNotFound):
		return "RouteNotFound"
	case errors.Is(err, ErrInvalidWeight):
		return "InvalidWeight"
	case errors.Is(err, ErrSelfLoop):
		return "SelfLoop"
	case errors.Is(err, ErrEmptyCityID):
		return "EmptyCityID"
	case errors.Is(err, ErrUnreachable):
		return "Unreachable"
	case errors.Is(err, ErrDisconnected):
		return "GraphDisconnected"
	case errors.Is(err, ErrEmptyGraph):
		return "EmptyGraph"
	case errors.Is(err, ErrInvalidTour):
		return "InvalidTourRequest"
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "Timeout"
	case errors.Is(err, ErrLimitExceeded):
		return "LimitExceeded"
	case errors.Is(err, context.Canceled):
		return "Canceled"
	default:
		return "Internal"
	}
}
