// Package route carries requests to an external optimal-path service and
// summarises the paths it returns. The search itself lives in the service.
package route

import (
	"context"
	"errors"
	"fmt"
)

// Algorithm names a search the service knows.
type Algorithm string

const (
	AStar     Algorithm = "astar"
	Dijkstra  Algorithm = "dijkstra"
	Greedy    Algorithm = "greedy"
	ThetaStar Algorithm = "theta_star"
)

// Algorithms lists every known algorithm in the order the viewer cycles them.
var Algorithms = []Algorithm{AStar, Dijkstra, Greedy, ThetaStar}

// ParseAlgorithm accepts the wire names; the empty string means AStar.
func ParseAlgorithm(name string) (Algorithm, error) {
	if name == "" {
		return AStar, nil
	}
	for _, a := range Algorithms {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("route: unknown algorithm %q", name)
}

// Next is the algorithm after a in Algorithms, wrapping around.
func (a Algorithm) Next() Algorithm {
	for i, b := range Algorithms {
		if a == b {
			return Algorithms[(i+1)%len(Algorithms)]
		}
	}
	return AStar
}

// Service defaults for constraints left unset.
const (
	DefaultMaxSlope = 100.0
	DefaultGridSize = 100
	DefaultMaxStep  = 10000.0
	DefaultMaxAngle = 180.0
	DefaultBuffer   = 10
)

// Constraints bound the search. Nil fields are not sent, so the service
// applies its own defaults.
type Constraints struct {
	MaxSlope               *float64
	MinElevation           *float64
	MaxElevation           *float64
	MaxAngle               *float64
	MaxStep                *float64
	GridSize               *int
	BoundingBufferDistance *int
}

// DefaultConstraints spells out the service defaults explicitly.
func DefaultConstraints() Constraints {
	slope, step, angle := DefaultMaxSlope, DefaultMaxStep, DefaultMaxAngle
	grid, buffer := DefaultGridSize, DefaultBuffer
	return Constraints{
		MaxSlope:               &slope,
		MaxAngle:               &angle,
		MaxStep:                &step,
		GridSize:               &grid,
		BoundingBufferDistance: &buffer,
	}
}

// Request asks for a path between two surface points.
type Request struct {
	Point1      [3]float64  `json:"point1"`
	Point2      [3]float64  `json:"point2"`
	Algorithm   Algorithm   `json:"-"`
	Constraints Constraints `json:"-"`
}

// Result is a path with its slope statistics. Slopes are rise over run.
type Result struct {
	Path              [][3]float64 `json:"path"`
	Length            float64      `json:"length"`
	AverageSlope      float64      `json:"averageSlope"`
	MinSlope          float64      `json:"minSlope"`
	MaxSlope          float64      `json:"maxSlope"`
	LocalAverageSlope float64      `json:"localAverageSlope"`
	LocalMinSlope     float64      `json:"localMinSlope"`
	LocalMaxSlope     float64      `json:"localMaxSlope"`
}

// ErrNoRoute is returned when the service answers without a path.
var ErrNoRoute = errors.New("route: no route found")

// Router finds paths between two points.
type Router interface {
	Route(ctx context.Context, req Request) (Result, error)
}
