package services

import (
	"errors"
	"math"

	"laundry/internal/core/domain/model/kernel"
)

// ErrNoStops is returned when there is nothing to plan.
var ErrNoStops = errors.New("no stops to plan")

// Stop is one address a driver must visit for an order.
type Stop struct {
	OrderID kernel.UUID
	Point   kernel.GeoPoint
}

// RoutePlanner orders a driver's stops with a nearest-neighbour walk starting at the
// driver's position.
//
// Selection rules:
//   - The next stop is always the one closest to the current position
//   - Ties keep input order
//   - Distances are great-circle kilometres
type RoutePlanner struct{}

func NewRoutePlanner() RoutePlanner {
	return RoutePlanner{}
}

// Plan returns stops in visiting order and the total distance in kilometres.
func (p RoutePlanner) Plan(start kernel.GeoPoint, stops []Stop) ([]Stop, float64, error) {
	if len(stops) == 0 {
		return nil, 0, ErrNoStops
	}
	if err := start.Validate(); err != nil {
		return nil, 0, err
	}

	remaining := append([]Stop(nil), stops...)
	planned := make([]Stop, 0, len(stops))
	current := start
	var total float64

	for len(remaining) > 0 {
		idx, dist, err := p.nearest(current, remaining)
		if err != nil {
			return nil, 0, err
		}
		next := remaining[idx]
		planned = append(planned, next)
		total += dist
		current = next.Point
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	return planned, total, nil
}

func (RoutePlanner) nearest(from kernel.GeoPoint, stops []Stop) (int, float64, error) {
	best, bestDist := -1, math.MaxFloat64
	for i, s := range stops {
		d, err := from.DistanceKm(s.Point)
		if err != nil {
			return 0, 0, err
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist, nil
}
