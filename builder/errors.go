// SPDX-License-Identifier: MIT

package builder

import "errors"

// ErrTooFewCities indicates a size parameter below the constructor minimum.
var ErrTooFewCities = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates an edge probability outside [0, 1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor ran without WithSeed/WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a generic construction failure.
var ErrConstructFailed = errors.New("builder: construction failed")
