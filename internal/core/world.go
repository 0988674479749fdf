package core

import "math/rand"

// Obstacle blocks a grid cell.
type Obstacle struct {
	Type string // e.g. "debris"
	Pos  Cell
}

// World is the static terrain the fleet operates on: a bounded square grid
// with impassable obstacles and charging stations.
type World struct {
	Width, Height int
	Obstacles     []Obstacle
	Stations      []Cell
	Blocked       CellSet // Obstacle cells, for path planning
}

// DefaultStations are the charging pads on the standard 50x50 grid.
func DefaultStations() []Cell {
	return []Cell{{X: 5, Y: 5}, {X: 45, Y: 5}, {X: 25, Y: 45}}
}

// GenerateWorld builds a square world with the given stations and a fixed
// number of randomly placed obstacles. Obstacles never land on a station.
func GenerateWorld(rng *rand.Rand, size, obstacleCount int, stations []Cell) *World {
	stationSet := make(CellSet, len(stations))
	for _, s := range stations {
		stationSet.Add(s)
	}

	// Keep obstacle order stable under a fixed seed.
	blocked := make(CellSet, obstacleCount)
	obstacles := make([]Obstacle, 0, obstacleCount)
	for len(blocked) < obstacleCount {
		c := Cell{X: rng.Intn(size), Y: rng.Intn(size)}
		if stationSet.Has(c) || blocked.Has(c) {
			continue
		}
		blocked.Add(c)
		obstacles = append(obstacles, Obstacle{Type: "debris", Pos: c})
	}

	return &World{
		Width:     size,
		Height:    size,
		Obstacles: obstacles,
		Stations:  stations,
		Blocked:   blocked,
	}
}

// InBounds reports whether the cell lies on the grid.
func (w *World) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < w.Width && c.Y >= 0 && c.Y < w.Height
}

// IsStation reports whether the cell holds a charging station.
func (w *World) IsStation(c Cell) bool {
	for _, s := range w.Stations {
		if s == c {
			return true
		}
	}
	return false
}

// NearestStation returns the station with minimum Manhattan distance to c.
// Ties go to the first station in declaration order.
func (w *World) NearestStation(c Cell) Cell {
	best := w.Stations[0]
	bestDist := c.Manhattan(best)
	for _, s := range w.Stations[1:] {
		if d := c.Manhattan(s); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}

// RandomFreeCell picks a uniformly random cell that is neither blocked nor a
// station.
func (w *World) RandomFreeCell(rng *rand.Rand) Cell {
	for {
		c := Cell{X: rng.Intn(w.Width), Y: rng.Intn(w.Height)}
		if w.Blocked.Has(c) || w.IsStation(c) {
			continue
		}
		return c
	}
}
