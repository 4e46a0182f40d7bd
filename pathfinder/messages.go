package pathfinder

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/cityroutes/core"
	"github.com/katalvlaran/cityroutes/dfs"
)

// mutationMessage maps a rejected mutation to the user-facing reason.
func mutationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrWeightTooLarge):
		return fmt.Sprintf("Distance must not exceed %d.", core.MaxWeight)
	case errors.Is(err, core.ErrInvalidWeight):
		return "Distance must be positive."
	case errors.Is(err, core.ErrSelfLoop):
		return "A route must connect two different cities."
	case errors.Is(err, core.ErrEmptyCityID):
		return "City names must not be empty."
	case errors.Is(err, core.ErrCityNotFound), errors.Is(err, core.ErrRouteNotFound):
		return "Route not found. Use 'Add Route' to create it."
	default:
		return failureMessage(err)
	}
}

// queryMessage maps a failed pairwise or whole-graph query to the user-facing reason.
func queryMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrCityNotFound):
		return "One or both cities not found."
	case errors.Is(err, dfs.ErrSameEndpoints):
		return "Start and destination are the same; a longest path needs at least one route."
	case errors.Is(err, core.ErrUnreachable):
		return "No path found."
	case errors.Is(err, core.ErrEmptyGraph):
		return "Graph is empty."
	case errors.Is(err, core.ErrDisconnected):
		return "Graph is not fully connected."
	default:
		return failureMessage(err)
	}
}

// tourMessage maps a failed tour request, naming the first unknown city.
func tourMessage(v *core.View, err error, cities []string) string {
	switch {
	case errors.Is(err, core.ErrInvalidTour):
		if len(cities) == 0 {
			return "No cities provided."
		}
		return "A tour needs at least two distinct cities."
	case errors.Is(err, core.ErrCityNotFound):
		for _, c := range cities {
			if !v.HasCity(c) {
				return "City '" + c + "' not found in graph."
			}
		}
		return "One or more cities not found."
	case errors.Is(err, core.ErrUnreachable):
		return "Could not find a path visiting all specified cities."
	default:
		return failureMessage(err)
	}
}

// failureMessage covers the kinds shared by every operation.
func failureMessage(err error) string {
	switch core.Kind(err) {
	case "Timeout":
		return "The search took too long and was stopped."
	case "LimitExceeded":
		return "The network is too large for this search."
	case "Canceled":
		return "The request was canceled."
	default:
		return "Internal error: " + err.Error()
	}
}
